package vm

import "fmt"

// RuntimeError reports a failure detected while executing bytecode: a
// missing input token, a bad opcode, a memory access out of range. It is
// always the VM's own diagnostic, never a compile-time one.
type RuntimeError struct {
	Message string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: %s", e.Message)
}
