package main

import (
	"fmt"

	"lya/ast"
	"lya/codegen"
	"lya/lexer"
	"lya/parser"
	"lya/semantic"

	"lya/internal/style"
)

// compile runs the full front end over src: lex, parse, decorate, and
// generate bytecode. It returns the first stage's errors formatted for
// stderr, stopping at the first stage that fails so later stages never
// run against a program known to be broken.
func compile(src string) (*codegen.Bytecode, []string) {
	lex := lexer.New(src)
	tokens, err := lex.Scan()
	if err != nil {
		return nil, []string{style.Errorf("lexing error: %v", err)}
	}

	p := parser.New(tokens)
	program, perr := p.Parse()
	if perr != nil {
		return nil, []string{style.Errorf("parsing error: %v", perr)}
	}

	errs := semantic.New().Decorate(program)
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = style.Errorf("%v", e)
		}
		return nil, msgs
	}

	bc, gerr := generate(program)
	if gerr != nil {
		return nil, []string{style.Errorf("%v", gerr)}
	}
	return bc, nil
}

// generate isolates codegen's panic-on-invariant-violation contract
// (DeveloperError) behind a normal error return, since a decorated
// program should never trigger one but the CLI should report it
// gracefully rather than crash if it ever does.
func generate(program *ast.Program) (bc *codegen.Bytecode, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return codegen.New().Generate(program), nil
}
