package codegen

import (
	"fmt"
	"strings"
)

// Disassemble renders a bytecode stream as human-readable text, one
// instruction per line, mirroring the teacher's DisassembleBytecode/.dnic
// dump format.
func Disassemble(bc *Bytecode) string {
	var out strings.Builder
	ins := bc.Instructions
	offset := 0
	for offset < len(ins) {
		op := Opcode(ins[offset])
		width := Width(op)
		fmt.Fprintf(&out, "%04d %s", offset, op)
		operandOffset := offset + 1
		for _, w := range operandWidths[op] {
			if w == 2 {
				fmt.Fprintf(&out, " %d", ReadInt16(ins, operandOffset))
			}
			operandOffset += w
		}
		out.WriteString("\n")
		if width == 0 {
			width = 1
		}
		offset += width
	}
	return out.String()
}
