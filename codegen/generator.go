package codegen

import (
	"fmt"

	"lya/ast"
)

// DeveloperError signals an internal code generator invariant violation —
// a bug in the generator itself, never a user-facing diagnostic. Decorated
// programs should never trigger one; if they do, semantic analysis missed
// a check.
type DeveloperError struct {
	Message string
}

func (e *DeveloperError) Error() string {
	return fmt.Sprintf("🤖 DeveloperError: %s", e.Message)
}

// Generator walks a decorated AST and emits bytecode. It assumes
// semantic.Decorate has already run successfully (no errors) over the
// program; it does not re-check modes.
type Generator struct {
	instructions Instructions
	constants    []any
	stringHeap   []string
	procEntries   map[string]int
	procInfo      map[string]*ast.ProcedureStatement
	exitTargets   map[string][]int
	loopLabels    []string
	labelOverride string

	// currentFrame is the display depth declarations and loop counters
	// land in right now: 0 at the program's top level, or the enclosing
	// procedure's FrameDepth while its body is being generated.
	currentFrame int
	// currentProc is the procedure whose body is being generated, or nil
	// at the top level; VisitReturnAction reads its frame layout.
	currentProc *ast.ProcedureStatement
}

// New creates a Generator with empty output buffers.
func New() *Generator {
	return &Generator{
		procEntries: map[string]int{},
		procInfo:    map[string]*ast.ProcedureStatement{},
		exitTargets: map[string][]int{},
	}
}

// Generate emits bytecode for an entire decorated program: an stp to
// initialise the VM, one alc reserving every top-level local's slot up
// front (so a top-level dcl inside a loop body never re-grows memory on
// each dynamic iteration), the program's statements, and a closing end.
func (g *Generator) Generate(program *ast.Program) *Bytecode {
	g.emit(Make(STP))
	if program.GlobalSize > 0 {
		g.emit(Make(ALC, program.GlobalSize))
	}
	for _, stmt := range program.Statements {
		stmt.Accept(g)
	}
	g.emit(Make(END))
	return &Bytecode{Instructions: g.instructions, ConstantsPool: g.constants, StringHeap: g.stringHeap}
}

func (g *Generator) emit(instr Instructions) int {
	pos := len(g.instructions)
	g.instructions = append(g.instructions, instr...)
	return pos
}

func (g *Generator) here() int { return len(g.instructions) }

// patchJump overwrites the 2-byte operand of the jump instruction whose
// opcode byte sits at pos with target, the
// teacher's backpatch-after-codegen pattern generalized to every forward
// jump Lya emits (jof, jmp, exit targets).
func (g *Generator) patchJump(pos int, target int) {
	op := Opcode(g.instructions[pos])
	widths := operandWidths[op]
	if len(widths) == 0 {
		panic(&DeveloperError{Message: "patchJump called on an opcode with no operand"})
	}
	copy(g.instructions[pos+1:pos+1+widths[0]], Make(op, target)[1:])
}

// constBoolValue reports the compile-time value of a boolean expression
// the decorator folded to a constant, so if/conditional codegen can emit
// only the branch that is statically known to be taken.
func constBoolValue(expr ast.Expression) (bool, bool) {
	annotated, ok := expr.(ast.Annotated)
	if !ok {
		return false, false
	}
	dec := annotated.Decorate()
	if !dec.IsConstant {
		return false, false
	}
	value, ok := dec.Value.(bool)
	return value, ok
}

func (g *Generator) addConstant(v any) int {
	g.constants = append(g.constants, v)
	return len(g.constants) - 1
}

func (g *Generator) internString(heapIndex int, value string) {
	for len(g.stringHeap) <= heapIndex {
		g.stringHeap = append(g.stringHeap, "")
	}
	g.stringHeap[heapIndex] = value
}
