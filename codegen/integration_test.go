package codegen_test

import (
	"bytes"
	"strings"
	"testing"

	"lya/codegen"
	"lya/lexer"
	"lya/parser"
	"lya/semantic"
	"lya/vm"
)

// generate lexes, parses and decorates src, then generates its bytecode
// without running it, for tests that inspect the emitted instructions.
func generate(t *testing.T, src string) *codegen.Bytecode {
	t.Helper()

	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexing %q: %v", src, err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	if errs := semantic.New().Decorate(program); len(errs) > 0 {
		t.Fatalf("decorating %q: %v", src, errs)
	}
	return codegen.New().Generate(program)
}

// runProgram lexes, parses, decorates and runs src end to end, feeding it
// input and returning whatever it wrote to standard output. It fails the
// test immediately on any front-end error, since every case here is
// expected to compile cleanly.
func runProgram(t *testing.T, src, input string) string {
	t.Helper()

	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexing %q: %v", src, err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	if errs := semantic.New().Decorate(program); len(errs) > 0 {
		t.Fatalf("decorating %q: %v", src, errs)
	}
	bc := codegen.New().Generate(program)

	var out bytes.Buffer
	m := vm.New(&out, strings.NewReader(input))
	if err := m.Run(bc); err != nil {
		t.Fatalf("running %q: %v", src, err)
	}
	return out.String()
}

func TestArithmeticAndVariables(t *testing.T) {
	got := runProgram(t, `dcl a,b int; a=10; b=20; a=a+b-5; print(a);`, "")
	if got != "25 " {
		t.Errorf("output = %q, want %q", got, "25 ")
	}
}

func TestWhileLoopSum(t *testing.T) {
	got := runProgram(t, `dcl i,n,s int; read(n); s=0; i=1; do while i<=n; s+=i; i+=1; od; print(s);`, "5")
	if got != "15 " {
		t.Errorf("output = %q, want %q", got, "15 ")
	}
}

func TestForStepSquares(t *testing.T) {
	got := runProgram(t, `dcl i int; do for i=1 to 3; print(i*i); od;`, "")
	if got != "1 4 9 " {
		t.Errorf("output = %q, want %q", got, "1 4 9 ")
	}
}

func TestStringLiteralsAndRead(t *testing.T) {
	got := runProgram(t, `dcl name chars[10]; print("Hi "); read(name); print(name);`, "Ada")
	if got != "Hi Ada" {
		t.Errorf("output = %q, want %q", got, "Hi Ada")
	}
}

func TestLocParameterMutatesCaller(t *testing.T) {
	src := `
incr: proc(loc x int);
	x = x+1;
end;
dcl n int;
n = 41;
incr(n);
print(n);
`
	got := runProgram(t, src, "")
	if got != "42 " {
		t.Errorf("output = %q, want %q", got, "42 ")
	}
}

func TestLocParameterSwap(t *testing.T) {
	src := `
swap: proc(loc a int, loc b int);
	dcl t int;
	t = a;
	a = b;
	b = t;
end;
dcl x,y int;
x = 1;
y = 2;
swap(x, y);
print(x);
print(y);
`
	got := runProgram(t, src, "")
	if got != "2 1 " {
		t.Errorf("output = %q, want %q", got, "2 1 ")
	}
}

func TestFoldedTrueConditionEmitsNoJof(t *testing.T) {
	bc := generate(t, `if 1<2 then print(1); else print(2); fi;`)
	for i := 0; i < len(bc.Instructions); i += codegen.Width(codegen.Opcode(bc.Instructions[i])) {
		if codegen.Opcode(bc.Instructions[i]) == codegen.JOF {
			t.Fatalf("unexpected jof in bytecode for a folded-true condition: %s", codegen.Disassemble(bc))
		}
	}
}

func TestFoldedConditionRunsOnlyLiveBranch(t *testing.T) {
	got := runProgram(t, `if 1<2 then print(1); else print(2); fi;`, "")
	if got != "1 " {
		t.Errorf("output = %q, want %q", got, "1 ")
	}
	got = runProgram(t, `if 1>2 then print(1); else print(2); fi;`, "")
	if got != "2 " {
		t.Errorf("output = %q, want %q", got, "2 ")
	}
}

func TestRecursiveFactorial(t *testing.T) {
	src := `
fact: proc(n int) returns int;
	if n<=1 then
		return 1;
	else
		return n*fact(n-1);
	fi;
end;
dcl n int;
read(n);
print(fact(n));
`
	got := runProgram(t, src, "5")
	if got != "120 " {
		t.Errorf("output = %q, want %q", got, "120 ")
	}
}
