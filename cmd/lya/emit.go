package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"lya/codegen"
	"lya/internal/style"

	"github.com/google/subcommands"
)

type emitCmd struct {
	out string
}

func (*emitCmd) Name() string     { return "emit" }
func (*emitCmd) Synopsis() string { return "compile a Lya source file and dump its disassembly" }
func (*emitCmd) Usage() string {
	return "emit [-out file.dis] <file.lya>\n"
}
func (cmd *emitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.out, "out", "", "file to write the disassembly to (default: stdout)")
}

func (cmd *emitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, style.Errorf("no source file given"))
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, style.Errorf("failed to read %s: %v", args[0], err))
		return subcommands.ExitFailure
	}

	bc, errs := compile(string(data))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return subcommands.ExitFailure
	}

	var dump strings.Builder
	dump.WriteString(codegen.Disassemble(bc))
	dump.WriteString(fmt.Sprintf("\n; %d constants, %d heap strings\n", len(bc.ConstantsPool), len(bc.StringHeap)))

	if cmd.out == "" {
		fmt.Print(dump.String())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(cmd.out, []byte(dump.String()), 0644); err != nil {
		fmt.Fprintln(os.Stderr, style.Errorf("failed to write %s: %v", cmd.out, err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
