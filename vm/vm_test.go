package vm

import (
	"bytes"
	"strings"
	"testing"

	"lya/codegen"
)

func TestRunArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		bc       *codegen.Bytecode
		expected int64
	}{
		{
			name: "add",
			bc: &codegen.Bytecode{
				Instructions: join(
					codegen.Make(codegen.LDC, 0),
					codegen.Make(codegen.LDC, 1),
					codegen.Make(codegen.ADD),
					codegen.Make(codegen.STV, 0, 0),
					codegen.Make(codegen.END),
				),
				ConstantsPool: []any{int64(2), int64(3)},
			},
			expected: 5,
		},
		{
			name: "mul then sub",
			bc: &codegen.Bytecode{
				Instructions: join(
					codegen.Make(codegen.LDC, 0),
					codegen.Make(codegen.LDC, 1),
					codegen.Make(codegen.MUL),
					codegen.Make(codegen.LDC, 2),
					codegen.Make(codegen.SUB),
					codegen.Make(codegen.STV, 0, 0),
					codegen.Make(codegen.END),
				),
				ConstantsPool: []any{int64(4), int64(5), int64(1)},
			},
			expected: 19,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(&bytes.Buffer{}, strings.NewReader(""))
			if err := m.Run(tt.bc); err != nil {
				t.Fatalf("Run: %v", err)
			}
			got, ok := m.memory[0].(int64)
			if !ok || got != tt.expected {
				t.Errorf("memory[0] = %v, want %d", m.memory[0], tt.expected)
			}
		})
	}
}

func TestRunStringConcat(t *testing.T) {
	bc := &codegen.Bytecode{
		Instructions: join(
			codegen.Make(codegen.LMV, 0),
			codegen.Make(codegen.LMV, 1),
			codegen.Make(codegen.ADD),
			codegen.Make(codegen.PRS),
			codegen.Make(codegen.END),
		),
		StringHeap: []string{"foo", "bar"},
	}

	var out bytes.Buffer
	m := New(&out, strings.NewReader(""))
	if err := m.Run(bc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "foobar" {
		t.Errorf("output = %q, want %q", out.String(), "foobar")
	}
}

func TestRunDivisionByZero(t *testing.T) {
	bc := &codegen.Bytecode{
		Instructions: join(
			codegen.Make(codegen.LDC, 0),
			codegen.Make(codegen.LDC, 1),
			codegen.Make(codegen.DIV),
			codegen.Make(codegen.END),
		),
		ConstantsPool: []any{int64(1), int64(0)},
	}

	m := New(&bytes.Buffer{}, strings.NewReader(""))
	err := m.Run(bc)
	if err == nil {
		t.Fatal("expected a RuntimeError, got nil")
	}
	if _, ok := err.(RuntimeError); !ok {
		t.Errorf("expected RuntimeError, got %T: %v", err, err)
	}
}

func TestRunJumpOnFalseSkipsBranch(t *testing.T) {
	// if false then memory[0] = 1 else memory[0] = 2
	var ins codegen.Instructions
	ins = append(ins, codegen.Make(codegen.LDC, 2)...) // condition constant (false)
	jofPos := len(ins)
	ins = append(ins, codegen.Make(codegen.JOF, 0)...) // patched below
	ins = append(ins, codegen.Make(codegen.LDC, 0)...)
	ins = append(ins, codegen.Make(codegen.STV, 0, 0)...)
	ins = append(ins, codegen.Make(codegen.END)...)

	elsePos := len(ins)
	ins = append(ins, codegen.Make(codegen.LDC, 1)...)
	ins = append(ins, codegen.Make(codegen.STV, 0, 0)...)
	ins = append(ins, codegen.Make(codegen.END)...)

	patch := codegen.Make(codegen.JOF, elsePos)
	copy(ins[jofPos:], patch)

	bc := &codegen.Bytecode{
		Instructions:  ins,
		ConstantsPool: []any{int64(1), int64(2), false},
	}

	m := New(&bytes.Buffer{}, strings.NewReader(""))
	if err := m.Run(bc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, ok := m.memory[0].(int64)
	if !ok || got != 2 {
		t.Errorf("memory[0] = %v, want 2 (else branch)", m.memory[0])
	}
}

func TestRunReadAndPrint(t *testing.T) {
	bc := &codegen.Bytecode{
		Instructions: join(
			codegen.Make(codegen.RDV),
			codegen.Make(codegen.PRV),
			codegen.Make(codegen.END),
		),
	}

	var out bytes.Buffer
	m := New(&out, strings.NewReader("42"))
	if err := m.Run(bc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "42 " {
		t.Errorf("output = %q, want %q", out.String(), "42 ")
	}
}

func TestSubstring(t *testing.T) {
	tests := []struct {
		s            string
		lower, upper int
		want         string
		wantErr      bool
	}{
		{"hello", 1, 3, "hel", false},
		{"hello", 2, 5, "ello", false},
		{"hello", 0, 3, "", true},
		{"hello", 3, 2, "", true},
		{"hello", 1, 10, "", true},
	}
	for _, tt := range tests {
		got, err := substring(tt.s, tt.lower, tt.upper)
		if tt.wantErr {
			if err == nil {
				t.Errorf("substring(%q,%d,%d): expected error", tt.s, tt.lower, tt.upper)
			}
			continue
		}
		if err != nil {
			t.Errorf("substring(%q,%d,%d): unexpected error %v", tt.s, tt.lower, tt.upper, err)
		}
		if got != tt.want {
			t.Errorf("substring(%q,%d,%d) = %q, want %q", tt.s, tt.lower, tt.upper, got, tt.want)
		}
	}
}

func join(chunks ...codegen.Instructions) codegen.Instructions {
	var out codegen.Instructions
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}
