// Package vm implements the stack machine that executes the bytecode
// codegen emits: a unified memory array doubling as both the operand
// stack and every live procedure frame, addressed through a Dijkstra
// display register, following the teacher's single-opcode dispatch loop
// generalized to Lya's full instruction set.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"lya/codegen"
)

// DisplaySize bounds how deeply procedures may nest lexically; the
// program and every enclosing procedure each claim one level.
const DisplaySize = 32

// InitialMemorySize is the starting capacity of the unified memory
// array; alc grows it on demand past this point.
const InitialMemorySize = 1024

// builtin pseudo-addresses a cfu may target instead of a real procedure
// entry, matching codegen's builtinEntry negative-address scheme.
const (
	builtinAsc = -1 - iota
	builtinUpper
	builtinLower
)

// VM is a single run's execution state. It is not safe for concurrent
// use; spec.md's concurrency model is one VM per program, run to
// completion before the next stage's output is even produced.
type VM struct {
	memory  []any
	display [DisplaySize]int
	sp      int
	pc      int

	constants  []any
	stringHeap []string

	out io.Writer
	in  *tokenReader
}

// New creates a VM that prints to out and reads read()'s input tokens
// from in.
func New(out io.Writer, in io.Reader) *VM {
	return &VM{
		memory: make([]any, InitialMemorySize),
		out:    out,
		in:     newTokenReader(bufio.NewScanner(in)),
	}
}

// Run executes bc to completion (an end instruction) or until a
// RuntimeError occurs. It returns after the first stp...end program;
// a fresh VM should be created per run rather than reused, matching the
// one-VM-per-execution model spec.md describes.
func (vm *VM) Run(bc *codegen.Bytecode) error {
	vm.constants = bc.ConstantsPool
	vm.stringHeap = bc.StringHeap
	vm.sp = -1
	vm.pc = 0
	ins := bc.Instructions

	for vm.pc < len(ins) {
		op := codegen.Opcode(ins[vm.pc])
		width := codegen.Width(op)

		switch op {
		case codegen.STP:
			vm.sp = -1
			for i := range vm.display {
				vm.display[i] = 0
			}

		case codegen.END:
			return nil

		case codegen.LDC:
			idx := vm.operand(ins, 0)
			vm.push(vm.constants[idx])

		case codegen.LDV:
			i, j := vm.operand(ins, 0), vm.operand(ins, 2)
			v, err := vm.at(vm.display[i] + j)
			if err != nil {
				return err
			}
			vm.push(v)

		case codegen.LDR:
			i, j := vm.operand(ins, 0), vm.operand(ins, 2)
			vm.push(vm.display[i] + j)

		case codegen.STV:
			i, j := vm.operand(ins, 0), vm.operand(ins, 2)
			v := vm.pop()
			if err := vm.set(vm.display[i]+j, v); err != nil {
				return err
			}

		case codegen.LRV:
			i, j := vm.operand(ins, 0), vm.operand(ins, 2)
			slot, err := vm.at(vm.display[i] + j)
			if err != nil {
				return err
			}
			addr, err := asAddress(slot)
			if err != nil {
				return err
			}
			v, err := vm.at(addr)
			if err != nil {
				return err
			}
			vm.push(v)

		case codegen.SRV:
			i, j := vm.operand(ins, 0), vm.operand(ins, 2)
			v := vm.pop()
			slot, err := vm.at(vm.display[i] + j)
			if err != nil {
				return err
			}
			addr, err := asAddress(slot)
			if err != nil {
				return err
			}
			if err := vm.set(addr, v); err != nil {
				return err
			}

		case codegen.ADD:
			if err := vm.binaryAddOrConcat(); err != nil {
				return err
			}
		case codegen.SUB:
			if err := vm.binaryInt(func(a, b int64) int64 { return a - b }); err != nil {
				return err
			}
		case codegen.MUL:
			if err := vm.binaryInt(func(a, b int64) int64 { return a * b }); err != nil {
				return err
			}
		case codegen.DIV:
			b, err := vm.popInt64()
			if err != nil {
				return err
			}
			a, err := vm.popInt64()
			if err != nil {
				return err
			}
			if b == 0 {
				return RuntimeError{Message: "division by zero"}
			}
			vm.push(a / b)
		case codegen.MOD:
			b, err := vm.popInt64()
			if err != nil {
				return err
			}
			a, err := vm.popInt64()
			if err != nil {
				return err
			}
			if b == 0 {
				return RuntimeError{Message: "modulus by zero"}
			}
			vm.push(a % b)

		case codegen.NEG:
			a, err := vm.popInt64()
			if err != nil {
				return err
			}
			vm.push(-a)
		case codegen.ABS:
			a, err := vm.popInt64()
			if err != nil {
				return err
			}
			if a < 0 {
				a = -a
			}
			vm.push(a)
		case codegen.NOT:
			a, ok := vm.pop().(bool)
			if !ok {
				return RuntimeError{Message: "not applied to a non-bool"}
			}
			vm.push(!a)

		case codegen.AND:
			b, ok1 := vm.pop().(bool)
			a, ok2 := vm.pop().(bool)
			if !ok1 || !ok2 {
				return RuntimeError{Message: "and applied to a non-bool"}
			}
			vm.push(a && b)
		case codegen.LOR:
			b, ok1 := vm.pop().(bool)
			a, ok2 := vm.pop().(bool)
			if !ok1 || !ok2 {
				return RuntimeError{Message: "or applied to a non-bool"}
			}
			vm.push(a || b)

		case codegen.LES:
			if err := vm.relational(func(a, b int64) bool { return a < b }); err != nil {
				return err
			}
		case codegen.LEQ:
			if err := vm.relational(func(a, b int64) bool { return a <= b }); err != nil {
				return err
			}
		case codegen.GRT:
			if err := vm.relational(func(a, b int64) bool { return a > b }); err != nil {
				return err
			}
		case codegen.GRE:
			if err := vm.relational(func(a, b int64) bool { return a >= b }); err != nil {
				return err
			}
		case codegen.EQU:
			b, a := vm.pop(), vm.pop()
			vm.push(a == b)
		case codegen.NEQ:
			b, a := vm.pop(), vm.pop()
			vm.push(a != b)

		case codegen.JMP:
			vm.pc = vm.operand(ins, 0)
			continue
		case codegen.JOF:
			cond, ok := vm.pop().(bool)
			if !ok {
				return RuntimeError{Message: "jof condition is not a bool"}
			}
			if !cond {
				vm.pc = vm.operand(ins, 0)
				continue
			}

		case codegen.LBL:
			// no-op: codegen backpatches jump targets directly and never
			// emits lbl, this case exists only for instruction-set parity.

		case codegen.ALC:
			vm.sp += vm.operand(ins, 0)
			vm.ensure(vm.sp)
		case codegen.DLC:
			vm.sp -= vm.operand(ins, 0)

		case codegen.CFU:
			target := vm.operand(ins, 0)
			if target < 0 {
				if err := vm.callBuiltin(target); err != nil {
					return err
				}
			} else {
				vm.push(vm.pc + width)
				vm.pc = target
				continue
			}

		case codegen.ENF:
			k := vm.operand(ins, 0)
			vm.push(vm.display[k])
			vm.display[k] = vm.sp + 1

		case codegen.RET:
			k, n := vm.operand(ins, 0), vm.operand(ins, 2)
			savedDisplay, err := asAddress(vm.pop())
			if err != nil {
				return err
			}
			savedPC, err := asAddress(vm.pop())
			if err != nil {
				return err
			}
			vm.sp -= n
			vm.display[k] = savedDisplay
			vm.pc = savedPC
			continue

		case codegen.IDX:
			k := vm.operand(ins, 0)
			index, err := vm.popInt64()
			if err != nil {
				return err
			}
			addr, err := asAddress(vm.pop())
			if err != nil {
				return err
			}
			vm.push(addr + int(index)*k)

		case codegen.GRC:
			addr, err := asAddress(vm.pop())
			if err != nil {
				return err
			}
			v, err := vm.at(addr)
			if err != nil {
				return err
			}
			vm.push(v)

		case codegen.SMR:
			addr, err := asAddress(vm.pop())
			if err != nil {
				return err
			}
			v := vm.pop()
			if err := vm.set(addr, v); err != nil {
				return err
			}

		case codegen.SMV:
			// unused by this generator (composite locals are laid out
			// inline and written through smr instead); kept so the
			// instruction set matches spec.md in full.
			addr, err := asAddress(vm.pop())
			if err != nil {
				return err
			}
			v := vm.pop()
			if err := vm.set(addr, v); err != nil {
				return err
			}

		case codegen.LMV:
			idx := vm.operand(ins, 0)
			if idx < 0 || idx >= len(vm.stringHeap) {
				return RuntimeError{Message: fmt.Sprintf("string heap index %d out of range", idx)}
			}
			vm.push(vm.stringHeap[idx])

		case codegen.STS:
			upper, err := vm.popInt64()
			if err != nil {
				return err
			}
			lower, err := vm.popInt64()
			if err != nil {
				return err
			}
			s, ok := vm.pop().(string)
			if !ok {
				return RuntimeError{Message: "sts applied to a non-string"}
			}
			sub, err := substring(s, int(lower), int(upper))
			if err != nil {
				return err
			}
			vm.push(sub)

		case codegen.RDV:
			tok, ok := vm.in.next()
			if !ok {
				return RuntimeError{Message: "read: no more input"}
			}
			n, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return RuntimeError{Message: fmt.Sprintf("read: %q is not an integer", tok)}
			}
			vm.push(n)
		case codegen.RDC:
			tok, ok := vm.in.next()
			if !ok || len(tok) == 0 {
				return RuntimeError{Message: "read: no more input"}
			}
			vm.push([]rune(tok)[0])
		case codegen.RDS:
			tok, ok := vm.in.next()
			if !ok {
				return RuntimeError{Message: "read: no more input"}
			}
			vm.push(tok)

		case codegen.PRV:
			n, err := vm.popInt64()
			if err != nil {
				return err
			}
			fmt.Fprintf(vm.out, "%d ", n)
		case codegen.PRC:
			r, ok := vm.pop().(rune)
			if !ok {
				return RuntimeError{Message: "prc applied to a non-char"}
			}
			fmt.Fprintf(vm.out, "%c", r)
		case codegen.PRS:
			s, ok := vm.pop().(string)
			if !ok {
				return RuntimeError{Message: "prs applied to a non-string"}
			}
			fmt.Fprint(vm.out, s)

		default:
			return RuntimeError{Message: fmt.Sprintf("unknown opcode %v at pc %d", op, vm.pc)}
		}

		vm.pc += width
	}
	return nil
}

// operand reads the int16-encoded operand at byte offset delta past the
// current instruction's opcode byte.
func (vm *VM) operand(ins codegen.Instructions, delta int) int {
	return codegen.ReadInt16(ins, vm.pc+1+delta)
}

func (vm *VM) push(v any) {
	vm.sp++
	vm.ensure(vm.sp)
	vm.memory[vm.sp] = v
}

func (vm *VM) pop() any {
	v := vm.memory[vm.sp]
	vm.sp--
	return v
}

// ensure grows memory so index addr is valid, extending with nil slots.
func (vm *VM) ensure(addr int) {
	if addr < len(vm.memory) {
		return
	}
	grown := make([]any, addr+1)
	copy(grown, vm.memory)
	vm.memory = grown
}

func (vm *VM) at(addr int) (any, error) {
	if addr < 0 || addr >= len(vm.memory) {
		return nil, RuntimeError{Message: fmt.Sprintf("memory access out of range: %d", addr)}
	}
	return vm.memory[addr], nil
}

func (vm *VM) set(addr int, v any) error {
	vm.ensure(addr)
	vm.memory[addr] = v
	return nil
}

// asAddress narrows a memory value that is expected to hold an address
// (pushed by ldr, a saved display, a saved pc) back to an int.
func asAddress(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	}
	return 0, RuntimeError{Message: fmt.Sprintf("expected an address, got %v (%T)", v, v)}
}

func (vm *VM) popInt64() (int64, error) {
	switch x := vm.pop().(type) {
	case int64:
		return x, nil
	case rune:
		return int64(x), nil
	}
	return 0, RuntimeError{Message: "expected an integer operand"}
}

func (vm *VM) binaryInt(f func(a, b int64) int64) error {
	b, err := vm.popInt64()
	if err != nil {
		return err
	}
	a, err := vm.popInt64()
	if err != nil {
		return err
	}
	vm.push(f(a, b))
	return nil
}

// binaryAddOrConcat implements add, which the code generator emits for
// both int "+" and string "+" (concatenation) since both modes admit the
// same dyadic token and there is no separate concat opcode.
func (vm *VM) binaryAddOrConcat() error {
	b, a := vm.pop(), vm.pop()
	as, aIsString := a.(string)
	bs, bIsString := b.(string)
	if aIsString && bIsString {
		vm.push(as + bs)
		return nil
	}
	ai, aErr := asInt64(a)
	bi, bErr := asInt64(b)
	if aErr != nil || bErr != nil {
		return RuntimeError{Message: "add applied to incompatible operands"}
	}
	vm.push(ai + bi)
	return nil
}

func asInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case rune:
		return int64(x), nil
	}
	return 0, RuntimeError{Message: "expected an integer operand"}
}

// relational implements les/leq/grt/gre, which compare either two ints or
// two chars (both represented as integer-like Go values).
func (vm *VM) relational(f func(a, b int64) bool) error {
	b, err := vm.popInt64()
	if err != nil {
		return err
	}
	a, err := vm.popInt64()
	if err != nil {
		return err
	}
	vm.push(f(a, b))
	return nil
}

// callBuiltin executes one of the native single-argument builtins
// codegen addresses by a negative pseudo-entry instead of a dedicated
// opcode, per emitBuiltin's cfu dispatch.
func (vm *VM) callBuiltin(target int) error {
	if target == builtinAsc {
		n, err := vm.popInt64()
		if err != nil {
			return err
		}
		vm.push(rune(n))
		return nil
	}
	r, ok := vm.pop().(rune)
	if !ok {
		return RuntimeError{Message: "builtin applied to a non-char"}
	}
	switch target {
	case builtinUpper:
		vm.push(upperRune(r))
	case builtinLower:
		vm.push(lowerRune(r))
	default:
		return RuntimeError{Message: fmt.Sprintf("unknown builtin entry %d", target)}
	}
	return nil
}

func upperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func lowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// substring extracts Lya's 1-based inclusive [lower:upper] slice from a
// string stored as a whole Go value.
func substring(s string, lower, upper int) (string, error) {
	runes := []rune(s)
	lo, hi := lower-1, upper
	if lo < 0 || hi > len(runes) || lower > upper {
		return "", RuntimeError{Message: fmt.Sprintf("string slice [%d:%d] out of range", lower, upper)}
	}
	return string(runes[lo:hi]), nil
}
