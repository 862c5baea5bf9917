package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"lya/internal/style"
	"lya/vm"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
)

type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive Lya session" }
func (*replCmd) Usage() string {
	return "repl:\n  Read a whole program (terminated by a blank line), compile it, and run it.\n"
}
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (*replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println(style.Banner.Render("Lya"))
	fmt.Println("Enter a program, then a blank line to compile and run it. \"exit\" quits.")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          style.Prompt.Render(">>> "),
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, style.Errorf("failed to start readline: %v", err))
		return subcommands.ExitFailure
	}
	defer rl.Close()

	var buf strings.Builder
	for {
		if buf.Len() == 0 {
			rl.SetPrompt(style.Prompt.Render(">>> "))
		} else {
			rl.SetPrompt(style.Prompt.Render("... "))
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf.Reset()
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, style.Errorf("%v", err))
			return subcommands.ExitFailure
		}

		if strings.TrimSpace(line) == "exit" && buf.Len() == 0 {
			return subcommands.ExitSuccess
		}
		if strings.TrimSpace(line) == "" && buf.Len() > 0 {
			runSource(buf.String())
			buf.Reset()
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
}

func runSource(src string) {
	bc, errs := compile(src)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Println(e)
		}
		return
	}
	machine := vm.New(os.Stdout, os.Stdin)
	if err := machine.Run(bc); err != nil {
		fmt.Println(style.Errorf("%v", err))
	}
}
