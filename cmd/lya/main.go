// Command lya is the Lya language toolchain. Its required surface is
// "compile <file> [-d] [-o]"; run, emit, and repl are supplemental
// conveniences wired through subcommands the way the teacher's CLI does.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&compileCmd{}, "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&emitCmd{}, "")
	subcommands.Register(&replCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
