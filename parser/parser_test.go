package parser_test

import (
	"testing"

	"lya/ast"
	"lya/lexer"
	"lya/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexing %q: %v", src, err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	return program
}

func TestParseDeclarationStatement(t *testing.T) {
	program := parse(t, "dcl a, b int;")
	if len(program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*ast.DeclarationStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.DeclarationStatement", program.Statements[0])
	}
	if len(decl.Declarators) != 2 {
		t.Fatalf("got %d declarators, want 2", len(decl.Declarators))
	}
	if decl.Declarators[0].Name.Lexeme != "a" || decl.Declarators[1].Name.Lexeme != "b" {
		t.Errorf("declarator names = %q, %q, want a, b", decl.Declarators[0].Name.Lexeme, decl.Declarators[1].Name.Lexeme)
	}
}

func TestParseIfActionWithElsifAndElse(t *testing.T) {
	program := parse(t, "if a<1 then print(a); elsif a<2 then print(b); else print(c); fi;")
	ifAction, ok := program.Statements[0].(*ast.IfAction)
	if !ok {
		t.Fatalf("statement is %T, want *ast.IfAction", program.Statements[0])
	}
	if len(ifAction.ElsifConds) != 1 {
		t.Errorf("got %d elsif clauses, want 1", len(ifAction.ElsifConds))
	}
	if len(ifAction.Else) != 1 {
		t.Errorf("got %d else statements, want 1", len(ifAction.Else))
	}
}

func TestParseProcedureStatement(t *testing.T) {
	program := parse(t, "f: proc(n int) returns int; return n; end;")
	proc, ok := program.Statements[0].(*ast.ProcedureStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ProcedureStatement", program.Statements[0])
	}
	if proc.Name.Lexeme != "f" {
		t.Errorf("Name = %q, want f", proc.Name.Lexeme)
	}
	if len(proc.Parameters) != 1 || proc.Parameters[0].Name.Lexeme != "n" {
		t.Errorf("Parameters = %v, want one parameter named n", proc.Parameters)
	}
	if proc.ResultMode == nil {
		t.Error("expected a non-nil ResultMode")
	}
}

func TestParseDoForLoop(t *testing.T) {
	program := parse(t, "do for i=1 to 3; print(i); od;")
	doAction, ok := program.Statements[0].(*ast.DoAction)
	if !ok {
		t.Fatalf("statement is %T, want *ast.DoAction", program.Statements[0])
	}
	if doAction.Control == nil || doAction.Control.For == nil {
		t.Fatal("expected a StepEnumeration control part")
	}
	if doAction.Control.For.Counter.Lexeme != "i" {
		t.Errorf("Counter = %q, want i", doAction.Control.For.Counter.Lexeme)
	}
}

func TestParseLabelledLoopAndExit(t *testing.T) {
	program := parse(t, "outer: do while a<10; exit outer; od;")
	labelled, ok := program.Statements[0].(*ast.LabelledStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.LabelledStatement", program.Statements[0])
	}
	if labelled.Label.Lexeme != "outer" {
		t.Errorf("Label = %q, want outer", labelled.Label.Lexeme)
	}
	loop, ok := labelled.Inner.(*ast.DoAction)
	if !ok || len(loop.Body) != 1 {
		t.Fatalf("labelled statement holds %T, want a *ast.DoAction with one body statement", labelled.Inner)
	}
	exit, ok := loop.Body[0].(*ast.ExitAction)
	if !ok || exit.Label.Lexeme != "outer" {
		t.Errorf("loop body = %#v, want exit outer", loop.Body[0])
	}
}

func TestParseSyntaxErrorReturnsParseError(t *testing.T) {
	tokens, err := lexer.New("dcl a int").Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	_, perr := parser.New(tokens).Parse()
	if perr == nil {
		t.Fatal("expected a parse error for a missing ';'")
	}
	if _, ok := perr.(*parser.ParseError); !ok {
		t.Errorf("expected *parser.ParseError, got %T", perr)
	}
}
