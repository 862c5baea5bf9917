package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lya/internal/style"
	"lya/vm"

	"github.com/google/subcommands"
)

type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "compile and execute a Lya source file" }
func (*runCmd) Usage() string {
	return "run <file.lya>\n"
}
func (*runCmd) SetFlags(f *flag.FlagSet) {}

func (*runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	machine := vm.New(os.Stdout, os.Stdin)
	if err := machine.Run(bc); err != nil {
		fmt.Fprintln(os.Stderr, style.Errorf("%v", err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
