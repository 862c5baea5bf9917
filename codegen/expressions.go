package codegen

import (
	"lya/ast"
	"lya/mode"
	"lya/token"
)

func (g *Generator) VisitIntegerLiteral(n *ast.IntegerLiteral) any {
	idx := g.addConstant(n.Value)
	g.emit(Make(LDC, idx))
	return nil
}

func (g *Generator) VisitBooleanLiteral(n *ast.BooleanLiteral) any {
	idx := g.addConstant(n.Value)
	g.emit(Make(LDC, idx))
	return nil
}

func (g *Generator) VisitCharacterLiteral(n *ast.CharacterLiteral) any {
	idx := g.addConstant(n.Value)
	g.emit(Make(LDC, idx))
	return nil
}

// VisitStringLiteral interns the literal's text at its heap index and
// emits a single lmv naming that index directly: under the whole-string
// value representation, lmv's job is "push stringHeap[k]", not a
// slot-width move, so no separate ldc is needed.
func (g *Generator) VisitStringLiteral(n *ast.StringLiteral) any {
	g.internString(n.Decoration.HeapIndex, n.Value)
	g.emit(Make(LMV, n.Decoration.HeapIndex))
	return nil
}

func (g *Generator) VisitEmptyLiteral(n *ast.EmptyLiteral) any {
	idx := g.addConstant(nil)
	g.emit(Make(LDC, idx))
	return nil
}

func (g *Generator) VisitLocationExpression(n *ast.LocationExpression) any {
	n.Loc.Accept(g)
	return nil
}

// VisitReferencedLocation emits "&loc": the address of a static
// location, not its value.
func (g *Generator) VisitReferencedLocation(n *ast.ReferencedLocation) any {
	addr := g.locationAddress(n.Loc)
	g.emit(Make(LDR, addr.scope, addr.offset))
	return nil
}

func (g *Generator) VisitUnaryExpression(n *ast.UnaryExpression) any {
	n.Operand.Accept(g)
	switch n.Operator.Kind {
	case token.MINUS:
		g.emit(Make(NEG))
	case token.BANG:
		g.emit(Make(NOT))
	case token.ABS:
		g.emit(Make(ABS))
	}
	return nil
}

func (g *Generator) VisitBinaryExpression(n *ast.BinaryExpression) any {
	n.Left.Accept(g)
	n.Right.Accept(g)
	switch n.Operator.Kind {
	case token.PLUS:
		g.emit(Make(ADD))
	case token.MINUS:
		g.emit(Make(SUB))
	case token.STAR:
		g.emit(Make(MUL))
	case token.SLASH:
		g.emit(Make(DIV))
	case token.PERCENT:
		g.emit(Make(MOD))
	}
	return nil
}

func (g *Generator) VisitRelMemExpression(n *ast.RelMemExpression) any {
	n.Left.Accept(g)
	n.Right.Accept(g)
	switch n.Operator.Kind {
	case token.LESS:
		g.emit(Make(LES))
	case token.LESS_EQUAL:
		g.emit(Make(LEQ))
	case token.GREATER:
		g.emit(Make(GRT))
	case token.GREATER_EQUAL:
		g.emit(Make(GRE))
	case token.EQUAL:
		g.emit(Make(EQU))
	case token.NOT_EQUAL:
		g.emit(Make(NEQ))
	case token.AND:
		g.emit(Make(AND))
	case token.OR:
		g.emit(Make(LOR))
	}
	return nil
}

// VisitConditionalExpression emits the same if/elsif/else-as-jumps shape
// as IfAction, but each branch leaves its value on the stack instead of
// executing a statement list.
func (g *Generator) VisitConditionalExpression(n *ast.ConditionalExpression) any {
	var endJumps []int

	conds := append([]ast.Expression{n.Condition}, n.ElsifConds...)
	thens := append([]ast.Expression{n.Then}, n.ElsifThens...)

	for i, cond := range conds {
		if value, ok := constBoolValue(cond); ok {
			if value {
				thens[i].Accept(g)
				for _, pos := range endJumps {
					g.patchJump(pos, g.here())
				}
				return nil
			}
			continue
		}
		cond.Accept(g)
		jof := g.emit(Make(JOF, 0))
		thens[i].Accept(g)
		endJumps = append(endJumps, g.emit(Make(JMP, 0)))
		g.patchJump(jof, g.here())
	}

	n.Else.Accept(g)

	for _, pos := range endJumps {
		g.patchJump(pos, g.here())
	}
	return nil
}

func (g *Generator) VisitProcedureCallExpression(n *ast.ProcedureCall) any {
	g.emitCall(n.Name.Lexeme, n.Arguments)
	return nil
}

func (g *Generator) VisitBuiltinCallExpression(n *ast.BuiltinCall) any {
	g.emitBuiltin(n.Name, n.Arguments)
	return nil
}

// emitCall reserves the return-value slot (if the callee yields one),
// pushes every argument, then emits a CFU to the callee's entry point,
// which must already have been generated (Lya requires procedures to be
// declared before use, like Pascal). The reserved slot sits directly
// below the arguments, exactly where the callee's ret leaves it after
// popping its own frame, so the call's result surfaces at the new stack
// top with no further instructions needed at the call site.
func (g *Generator) emitCall(name string, args []ast.Expression) {
	proc := g.procInfo[name]
	if proc != nil && proc.HasResult {
		idx := g.addConstant(nil)
		g.emit(Make(LDC, idx))
	}
	for i, arg := range args {
		if proc != nil && i < len(proc.Parameters) && proc.Parameters[i].Loc {
			locExpr, ok := arg.(*ast.LocationExpression)
			if !ok {
				panic(&DeveloperError{Message: "loc argument is not a location reached codegen"})
			}
			addr := g.locationAddress(locExpr.Loc)
			g.emit(Make(LDR, addr.scope, addr.offset))
			continue
		}
		arg.Accept(g)
	}
	entry, ok := g.procEntries[name]
	if !ok {
		panic(&DeveloperError{Message: "call to undeclared procedure '" + name + "' reached codegen"})
	}
	g.emit(Make(CFU, entry))
}

func (g *Generator) emitBuiltin(name token.Token, args []ast.Expression) {
	switch name.Kind {
	case token.ABS:
		args[0].Accept(g)
		g.emit(Make(ABS))
	case token.NUM:
		// num is a no-op at the bit level: char/bool already occupy an
		// int-sized VM value.
		args[0].Accept(g)
	case token.LENGTH:
		// length is resolved entirely from the argument's mode, known at
		// compile time, so it folds to a constant rather than evaluating
		// the argument at all.
		g.emit(Make(LDC, g.addConstant(int64(lengthOf(argDecoration(args[0]))))))
	case token.ASC, token.UPPER, token.LOWER:
		// single-argument builtins with no VM-level effect beyond what the
		// argument already computed are represented as a native call the
		// VM's dispatch loop recognizes by its negative pseudo-address
		// (see vm.callBuiltin).
		args[0].Accept(g)
		g.emit(Make(CFU, g.builtinEntry(name.Kind)))
	}
}

// lengthOf resolves length() against a mode's statically-known bounds:
// an array's element count, or a chars mode's fixed length.
func lengthOf(m *mode.Mode) int {
	if m == nil {
		return 0
	}
	switch m.Tag {
	case mode.Array:
		return m.Upper - m.Lower + 1
	case mode.String:
		return m.Length
	}
	return 0
}

// builtinEntry maps a builtin token kind to a well-known negative pseudo
// address the VM's dispatch loop recognizes as a native call rather than a
// user procedure, avoiding a dedicated opcode per builtin.
func (g *Generator) builtinEntry(kind token.Kind) int {
	switch kind {
	case token.ASC:
		return -1
	case token.UPPER:
		return -2
	case token.LOWER:
		return -3
	}
	return 0
}

type address struct {
	scope  int
	offset int
	// byValue is true when this slot already holds the base address
	// directly (a "loc" array parameter), so loading it needs a plain
	// LDV rather than an LDR computing the address of the slot itself.
	byValue bool
}

// locationAddress resolves the (scope-levels, offset) pair codegen needs
// to emit an LDV/STV/LRV for a location, without pushing anything.
func (g *Generator) locationAddress(loc ast.Location) address {
	if id, ok := loc.(*ast.IdentifierLocation); ok {
		return address{scope: id.Decoration.Scope, offset: id.Decoration.Offset, byValue: id.Decoration.AutoDeref}
	}
	return address{}
}

// emitBaseAddress pushes an array/string location's base address: LDV
// when the location's own slot already holds that address (a "loc"
// parameter), LDR when the location's slot range IS the storage and the
// address is simply the slot's own position.
func (g *Generator) emitBaseAddress(addr address) {
	if addr.byValue {
		g.emit(Make(LDV, addr.scope, addr.offset))
	} else {
		g.emit(Make(LDR, addr.scope, addr.offset))
	}
}
