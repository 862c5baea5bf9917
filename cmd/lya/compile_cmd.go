package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lya/codegen"
	"lya/internal/astprint"
	"lya/internal/style"
	"lya/lexer"
	"lya/parser"
	"lya/semantic"
	"lya/vm"

	"github.com/google/subcommands"
)

// compileCmd is the required CLI surface: compile <file> [-d] [-o].
type compileCmd struct {
	debug    bool
	codeOnly bool
}

func (*compileCmd) Name() string     { return "compile" }
func (*compileCmd) Synopsis() string { return "compile (and optionally run) a Lya source file" }
func (*compileCmd) Usage() string {
	return "compile [-d] [-o] <file.lya>\n"
}

func (c *compileCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.debug, "d", false, "dump the undecorated AST, decorated AST, and instruction list before executing")
	f.BoolVar(&c.codeOnly, "o", false, "dump the instruction list and do not execute")
}

func (c *compileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	lex := lexer.New(string(data))
	tokens, lerr := lex.Scan()
	if lerr != nil {
		fmt.Fprintln(os.Stderr, style.Errorf("lexing error: %v", lerr))
		return subcommands.ExitFailure
	}

	program, perr := parser.New(tokens).Parse()
	if perr != nil {
		fmt.Fprintln(os.Stderr, style.Errorf("parsing error: %v", perr))
		return subcommands.ExitFailure
	}

	if c.debug {
		fmt.Println(style.Banner.Render("undecorated AST"))
		fmt.Println(astprint.Dump(program))
	}

	if errs := semantic.New().Decorate(program); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, style.Errorf("%v", e))
		}
		return subcommands.ExitFailure
	}

	if c.debug {
		fmt.Println(style.Banner.Render("decorated AST"))
		fmt.Println(astprint.Dump(program))
	}

	bc, gerr := generate(program)
	if gerr != nil {
		fmt.Fprintln(os.Stderr, style.Errorf("%v", gerr))
		return subcommands.ExitFailure
	}

	if c.debug || c.codeOnly {
		fmt.Println(style.Banner.Render("instructions"))
		fmt.Println(codegen.Disassemble(bc))
	}
	if c.codeOnly {
		return subcommands.ExitSuccess
	}

	machine := vm.New(os.Stdout, os.Stdin)
	if rerr := machine.Run(bc); rerr != nil {
		fmt.Fprintln(os.Stderr, style.Errorf("%v", rerr))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
