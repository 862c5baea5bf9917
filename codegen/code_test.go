package codegen

import "testing"

func TestMakeEncodesOperandsBigEndianSigned(t *testing.T) {
	ins := Make(STV, -3, 2)
	if Opcode(ins[0]) != STV {
		t.Fatalf("opcode byte = %v, want STV", Opcode(ins[0]))
	}
	if got := ReadInt16(ins, 1); got != -3 {
		t.Errorf("first operand = %d, want -3", got)
	}
	if got := ReadInt16(ins, 3); got != 2 {
		t.Errorf("second operand = %d, want 2", got)
	}
}

func TestWidthMatchesOperandCount(t *testing.T) {
	if w := Width(END); w != 1 {
		t.Errorf("Width(END) = %d, want 1 (opcode byte only)", w)
	}
	if w := Width(LDC); w != 3 {
		t.Errorf("Width(LDC) = %d, want 3 (opcode + one uint16)", w)
	}
	if w := Width(RET); w != 5 {
		t.Errorf("Width(RET) = %d, want 5 (opcode + two uint16)", w)
	}
}

func TestDisassembleOneInstructionPerLine(t *testing.T) {
	bc := &Bytecode{
		Instructions: append(append(Make(LDC, 0), Make(LDC, 1)...), Make(ADD)...),
	}
	out := Disassemble(bc)
	lines := 0
	for _, c := range out {
		if c == '\n' {
			lines++
		}
	}
	if lines != 3 {
		t.Errorf("got %d lines, want 3", lines)
	}
}

func TestPatchJumpOverwritesOperand(t *testing.T) {
	g := New()
	pos := g.emit(Make(JMP, 0))
	g.emit(Make(END))
	g.patchJump(pos, 99)
	if got := ReadInt16(g.instructions, pos+1); got != 99 {
		t.Errorf("patched operand = %d, want 99", got)
	}
}
