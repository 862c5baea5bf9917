package semantic_test

import (
	"testing"

	"lya/lexer"
	"lya/parser"
	"lya/semantic"
)

func decorate(t *testing.T, src string) []error {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexing %q: %v", src, err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	return semantic.New().Decorate(program)
}

func TestBoolAssignedIntIsAModeMismatch(t *testing.T) {
	errs := decorate(t, "dcl a bool; a=1;")
	if len(errs) == 0 {
		t.Fatal("expected a semantic error assigning int to a bool variable")
	}
	se, ok := errs[0].(*semantic.Error)
	if !ok {
		t.Fatalf("expected *semantic.Error, got %T", errs[0])
	}
	if se.Kind != semantic.ModeMismatch {
		t.Errorf("Kind = %v, want ModeMismatch", se.Kind)
	}
	if se.Line != 1 {
		t.Errorf("Line = %d, want 1", se.Line)
	}
}

func TestUndeclaredIdentifierIsReported(t *testing.T) {
	errs := decorate(t, "print(missing);")
	if len(errs) == 0 {
		t.Fatal("expected an error referencing an undeclared identifier")
	}
	se, ok := errs[0].(*semantic.Error)
	if !ok {
		t.Fatalf("expected *semantic.Error, got %T", errs[0])
	}
	if se.Kind != semantic.UndeclaredIdentifier {
		t.Errorf("Kind = %v, want UndeclaredIdentifier", se.Kind)
	}
}

func TestRedeclarationIsReported(t *testing.T) {
	errs := decorate(t, "dcl a int; dcl a bool;")
	if len(errs) == 0 {
		t.Fatal("expected a redeclaration error")
	}
	found := false
	for _, e := range errs {
		if se, ok := e.(*semantic.Error); ok && se.Kind == semantic.Redeclaration {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a Redeclaration-kind error among %v", errs)
	}
}

func TestAccumulatesMultipleErrors(t *testing.T) {
	errs := decorate(t, "dcl a bool; a=1; print(missing);")
	if len(errs) < 2 {
		t.Fatalf("expected decoration to accumulate both errors instead of stopping at the first, got %d", len(errs))
	}
}

func TestWellTypedProgramHasNoErrors(t *testing.T) {
	errs := decorate(t, `dcl a,b int; a=10; b=20; a=a+b-5; print(a);`)
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestIfWithoutElseDoesNotSatisfyResultRequirement(t *testing.T) {
	src := `
f: proc(n int) returns int;
	dcl x int;
	if x>0 then
		return 1;
	fi;
end;
`
	errs := decorate(t, src)
	found := false
	for _, e := range errs {
		if se, ok := e.(*semantic.Error); ok && se.Kind == semantic.ProcedureSignature {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a ProcedureSignature error for a fall-through path, got %v", errs)
	}
}

func TestIfElseReturningOnBothBranchesSatisfiesResultRequirement(t *testing.T) {
	src := `
f: proc(n int) returns int;
	if n>0 then
		return 1;
	else
		return 0;
	fi;
end;
`
	errs := decorate(t, src)
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestElsifChainMissingReturnOnOneBranchIsReported(t *testing.T) {
	src := `
f: proc(n int) returns int;
	if n>0 then
		return 1;
	elsif n<0 then
		dcl y int;
	else
		return 0;
	fi;
end;
`
	errs := decorate(t, src)
	found := false
	for _, e := range errs {
		if se, ok := e.(*semantic.Error); ok && se.Kind == semantic.ProcedureSignature {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a ProcedureSignature error for the non-returning elsif branch, got %v", errs)
	}
}

func TestUnconditionalLoopWithReturnSatisfiesResultRequirement(t *testing.T) {
	src := `
f: proc(n int) returns int;
	do;
		return n;
	od;
end;
`
	errs := decorate(t, src)
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestWhileLoopReturnDoesNotSatisfyResultRequirement(t *testing.T) {
	src := `
f: proc(n int) returns int;
	do while n>0;
		return n;
	od;
end;
`
	errs := decorate(t, src)
	found := false
	for _, e := range errs {
		if se, ok := e.(*semantic.Error); ok && se.Kind == semantic.ProcedureSignature {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a ProcedureSignature error since a while loop may run zero times, got %v", errs)
	}
}
