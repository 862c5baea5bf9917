// Package codegen emits Lya bytecode from a decorated AST: a flat
// instruction stream, a constants pool, and a string heap,
// following the teacher's MakeInstruction/disassembly approach generalized
// to Lya's full opcode table.
package codegen

import (
	"encoding/binary"
	"fmt"
)

type Opcode byte

const (
	STP Opcode = iota // start the program: reset the stack pointer and display
	END               // halt the VM
	LDC               // push constant (operand: index into ConstantsPool)
	LDV               // push value of local/global at (scope, offset)
	LDR               // push the address of the slot at (scope, offset)
	STV               // store top of stack into local/global at (scope, offset)
	LRV               // push the value found through the address stored at (scope, offset)
	SRV               // store through a reference (assign via pointer)
	ADD
	SUB
	MUL
	DIV
	MOD
	NEG
	NOT
	ABS
	AND
	LOR
	LES
	LEQ
	GRT
	GRE
	EQU
	NEQ
	JMP // unconditional jump (operand: target pc)
	JOF // jump if top-of-stack false (operand: target pc)
	LBL // no-op label marker; never emitted, jumps are backpatched byte offsets
	ALC // allocate a new frame of N slots on the call stack
	DLC // deallocate N slots from the call stack
	CFU // call a procedure (operand: entry pc)
	ENF // enter frame: save display, push new display entry
	RET // return from a procedure, restoring the caller's display
	IDX // pop an index and add index*k to the address below it (bias already subtracted)
	GRC // replace the address on top of the stack with the value stored there
	LMV // load a fixed-length string's value from the heap
	SMV // pop an address, then a value, and store it (not emitted by this generator)
	SMR // pop an address, then a value, and store it (array element stores)
	STS // pop upper, lower and a string; push its 1-based inclusive substring
	RDV // read an integer from stdin onto the stack
	RDC // read a character from stdin onto the stack
	RDS // read a string from stdin onto the stack
	PRV // print an integer
	PRC // print a character
	PRS // print a string
)

var names = map[Opcode]string{
	STP: "stp", END: "end", LDC: "ldc", LDV: "ldv", LDR: "ldr", STV: "stv",
	LRV: "lrv", SRV: "srv", ADD: "add", SUB: "sub", MUL: "mul", DIV: "div",
	MOD: "mod", NEG: "neg", NOT: "not", ABS: "abs", AND: "and", LOR: "lor",
	LES: "les", LEQ: "leq", GRT: "grt", GRE: "gre", EQU: "equ", NEQ: "neq",
	JMP: "jmp", JOF: "jof", LBL: "lbl", ALC: "alc", DLC: "dlc", CFU: "cfu",
	ENF: "enf", RET: "ret", IDX: "idx", GRC: "grc", LMV: "lmv", SMV: "smv",
	SMR: "smr", STS: "sts", RDV: "rdv", RDC: "rdc", RDS: "rds",
	PRV: "prv", PRC: "prc", PRS: "prs",
}

func (op Opcode) String() string {
	if n, ok := names[op]; ok {
		return n
	}
	return fmt.Sprintf("Opcode(%d)", byte(op))
}

// OperandWidths gives each opcode's fixed operand layout, in bytes.
// Two-operand opcodes (LDV/STV/scoped access) encode (scope-levels,
// offset) as two uint16s; single-operand opcodes encode one uint16.
var operandWidths = map[Opcode][]int{
	LDC: {2}, LDV: {2, 2}, LDR: {2, 2}, STV: {2, 2}, LRV: {2, 2}, SRV: {2, 2},
	JMP: {2}, JOF: {2}, LBL: {2}, ALC: {2}, DLC: {2}, CFU: {2},
	ENF: {2}, RET: {2, 2}, IDX: {2}, SMR: {2}, SMV: {2}, LMV: {2},
}

// Instructions is the flat bytecode stream produced for one program.
type Instructions []byte

// Make encodes one instruction: its opcode byte followed by each operand
// in big-endian, signed 16-bit form. Operands are signed because frame
// offsets run negative below a procedure's base (parameters and the
// return-value slot, spec.md §4.3), not just non-negative like jump
// targets and display depths.
func Make(op Opcode, operands ...int) Instructions {
	widths := operandWidths[op]
	length := 1
	for _, w := range widths {
		length += w
	}
	instr := make(Instructions, length)
	instr[0] = byte(op)
	offset := 1
	for i, w := range widths {
		switch w {
		case 2:
			binary.BigEndian.PutUint16(instr[offset:], uint16(int16(operands[i])))
		}
		offset += w
	}
	return instr
}

// ReadUint16 decodes a raw big-endian uint16 operand at offset.
func ReadUint16(ins Instructions, offset int) uint16 {
	return binary.BigEndian.Uint16(ins[offset:])
}

// ReadInt16 decodes a big-endian operand at offset as a signed value,
// the form every frame-offset and jump-target operand is read back in.
func ReadInt16(ins Instructions, offset int) int {
	return int(int16(binary.BigEndian.Uint16(ins[offset:])))
}

// Width returns the total instruction width (opcode + operands) for op.
func Width(op Opcode) int {
	total := 1
	for _, w := range operandWidths[op] {
		total += w
	}
	return total
}

// Bytecode is the complete output handed to the VM: the instruction
// stream, the constants pool (int64/bool/rune/string literal values), and
// the interned string heap indexed by StringLiteral.HeapIndex.
type Bytecode struct {
	Instructions  Instructions
	ConstantsPool []any
	StringHeap    []string
}
