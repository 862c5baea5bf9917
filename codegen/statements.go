package codegen

import (
	"lya/ast"
	"lya/mode"
	"lya/token"
)

// argDecoration returns the resolved mode an expression node was decorated
// with, or nil if the node carries no Decoration.
func argDecoration(e ast.Expression) *mode.Mode {
	if a, ok := e.(ast.Annotated); ok {
		return a.Decorate().Mode
	}
	return nil
}

// VisitDeclarationStatement emits each initializer's store, if any, into
// the slot the decorator assigned. It allocates nothing itself: the slots
// of every declared name, initialized or not, are reserved up front by the
// alc of the enclosing program or procedure frame.
func (g *Generator) VisitDeclarationStatement(n *ast.DeclarationStatement) any {
	for i := range n.Declarators {
		decl := &n.Declarators[i]
		if decl.Init != nil {
			decl.Init.Accept(g)
			g.emit(Make(STV, g.currentFrame, decl.Offset))
		}
	}
	return nil
}

// VisitSynonymStatement emits nothing: a synonym is always a folded
// compile-time constant substituted directly at each use site by the
// decorator, never backed by a frame slot.
func (g *Generator) VisitSynonymStatement(n *ast.SynonymStatement) any { return nil }

// VisitNewmodeStatement emits nothing: a mode alias is purely a
// compile-time concept resolved during decoration.
func (g *Generator) VisitNewmodeStatement(n *ast.NewmodeStatement) any { return nil }

// VisitProcedureStatement emits the procedure body out of line: a jmp
// skips over the body at the declaration site, the body is generated at
// the jump's target (the procedure's real entry point, recorded in
// procEntries so call sites can resolve it), followed by an implicit
// return and an END marker, per spec.md §4.4's emission pattern.
func (g *Generator) VisitProcedureStatement(n *ast.ProcedureStatement) any {
	g.procInfo[n.Name.Lexeme] = n

	skip := g.emit(Make(JMP, 0))
	entry := g.here()
	g.procEntries[n.Name.Lexeme] = entry

	outerFrame, outerProc := g.currentFrame, g.currentProc
	g.currentFrame, g.currentProc = n.FrameDepth, n

	g.emit(Make(ENF, n.FrameDepth))
	if n.LocalSize > 0 {
		g.emit(Make(ALC, n.LocalSize))
	}
	for _, stmt := range n.Body {
		stmt.Accept(g)
	}
	g.emitReturn(n, nil)
	g.emit(Make(END))

	g.currentFrame, g.currentProc = outerFrame, outerProc
	g.patchJump(skip, g.here())
	return nil
}

// emitReturn deallocates the procedure's local slots, if any, and emits
// its ret k n — k the display level enf pushed, n the parameter space
// ret pops along with the saved display and return pc. A value already
// written to the return-value slot (below the popped region, spec.md
// §4.3) survives the pop at the new stack top.
func (g *Generator) emitReturn(proc *ast.ProcedureStatement, value ast.Expression) {
	if value != nil {
		value.Accept(g)
		g.emit(Make(STV, proc.FrameDepth, proc.ReturnOffset))
	}
	if proc.LocalSize > 0 {
		g.emit(Make(DLC, proc.LocalSize))
	}
	g.emit(Make(RET, proc.FrameDepth, proc.ParameterSpace))
}

// VisitAssignmentAction evaluates the right-hand side (reading the
// target's current value first, through its own Accept, for a compound
// "op=") and then stores it back through whichever store form the
// target location needs: a direct STV for a plain identifier (SRV for a
// loc parameter), emitReferenceStore for a dereferenced reference, or an
// element address computed on the stack followed by SMR for an array
// element.
func (g *Generator) VisitAssignmentAction(n *ast.AssignmentAction) any {
	if n.Operator.Kind != token.ASSIGN {
		n.Target.Accept(g)
		n.Value.Accept(g)
		switch n.Operator.Kind {
		case token.PLUS_ASSIGN:
			g.emit(Make(ADD))
		case token.MINUS_ASSIGN:
			g.emit(Make(SUB))
		case token.STAR_ASSIGN:
			g.emit(Make(MUL))
		case token.SLASH_ASSIGN:
			g.emit(Make(DIV))
		case token.PERCENT_ASSIGN:
			g.emit(Make(MOD))
		}
	} else {
		n.Value.Accept(g)
	}

	switch target := n.Target.(type) {
	case *ast.IdentifierLocation:
		if target.Decoration.AutoDeref {
			g.emit(Make(SRV, target.Decoration.Scope, target.Decoration.Offset))
		} else {
			g.emit(Make(STV, target.Decoration.Scope, target.Decoration.Offset))
		}
	case *ast.DereferencedReference:
		g.emitReferenceStore(target)
	case *ast.ArrayElement:
		g.emitArrayStore(target)
	default:
		addr := g.locationAddress(n.Target)
		g.emit(Make(STV, addr.scope, addr.offset))
	}
	return nil
}

// emitArrayStore computes the element's address on the stack (base
// address, index, lower-bound bias) after the value to store is already
// sitting below it, then stores through a computed reference with SMR.
func (g *Generator) emitArrayStore(elem *ast.ArrayElement) {
	addr := g.locationAddress(elem.Array)
	g.emitBaseAddress(addr)
	elem.Index.Accept(g)
	if elem.Decoration.LowerBound != 0 {
		g.emit(Make(LDC, g.addConstant(int64(elem.Decoration.LowerBound))))
		g.emit(Make(SUB))
	}
	g.emit(Make(IDX, 1))
	g.emit(Make(SMR, 1))
}

// emitReferenceStore stores through the reference value held at a known
// (scope, offset), the value to store already sitting on the stack.
func (g *Generator) emitReferenceStore(ref *ast.DereferencedReference) {
	addr := g.locationAddress(ref.Loc)
	g.emit(Make(SRV, addr.scope, addr.offset))
}

// VisitIfAction emits the classic "condition, jof, then, [jmp, elsif...],
// else" shape: every branch but the last ends with an unconditional jump
// to the statement following the whole if, and every jof lands on the
// next candidate branch.
func (g *Generator) VisitIfAction(n *ast.IfAction) any {
	var endJumps []int

	conds := append([]ast.Expression{n.Condition}, n.ElsifConds...)
	blocks := append([][]ast.Statement{n.Then}, n.ElsifThens...)

	for i, cond := range conds {
		if value, ok := constBoolValue(cond); ok {
			if value {
				// Condition is unconditionally true: this branch is the
				// only one reachable, and everything after it is dead.
				g.emitBlock(blocks[i])
				for _, pos := range endJumps {
					g.patchJump(pos, g.here())
				}
				return nil
			}
			// Condition is unconditionally false: this branch never
			// runs, so skip it without emitting a jof at all.
			continue
		}
		cond.Accept(g)
		jof := g.emit(Make(JOF, 0))
		g.emitBlock(blocks[i])
		endJumps = append(endJumps, g.emit(Make(JMP, 0)))
		g.patchJump(jof, g.here())
	}

	if n.Else != nil {
		g.emitBlock(n.Else)
	}

	for _, pos := range endJumps {
		g.patchJump(pos, g.here())
	}
	return nil
}

func (g *Generator) emitBlock(stmts []ast.Statement) {
	for _, stmt := range stmts {
		stmt.Accept(g)
	}
}

// VisitDoAction emits one of three loop shapes:
//   - unconditional: loop back to the top unconditionally, exited only via
//     exit/return.
//   - while: condition checked at the top, jof out when false.
//   - for (step or range): lowered to a while loop over the counter bound,
//     with the counter increment appended as the loop's last instructions
//     before jumping back to the top — the same splice spec.md §4.4
//     describes for step-for loops, reused for range-for per
//     SPEC_FULL.md's for-range supplement.
func (g *Generator) VisitDoAction(n *ast.DoAction) any {
	label := ""
	if lbl, ok := g.currentLabel(n); ok {
		label = lbl
	}
	g.exitTargets[label] = nil
	g.loopLabels = append(g.loopLabels, label)
	defer func() { g.loopLabels = g.loopLabels[:len(g.loopLabels)-1] }()

	switch {
	case n.Control != nil && n.Control.For != nil:
		g.emitStepForLoop(n, label)
	case n.Control != nil && n.Control.Range != nil:
		g.emitRangeForLoop(n, label)
	default:
		g.emitConditionalLoop(n, label)
	}

	for _, pos := range g.exitTargets[label] {
		g.patchJump(pos, g.here())
	}
	delete(g.exitTargets, label)
	return nil
}

// currentLabel is a placeholder hook: label attachment is handled by
// VisitLabelledStatement, which sets the active label before delegating to
// the inner DoAction via labelOverride.
func (g *Generator) currentLabel(n *ast.DoAction) (string, bool) {
	if g.labelOverride != "" {
		l := g.labelOverride
		g.labelOverride = ""
		return l, true
	}
	return "", false
}

func (g *Generator) emitConditionalLoop(n *ast.DoAction, label string) {
	top := g.here()
	var jof int
	hasCondition := n.Control != nil && n.Control.While != nil
	if hasCondition {
		n.Control.While.Accept(g)
		jof = g.emit(Make(JOF, 0))
	}
	g.emitBlock(n.Body)
	g.emit(Make(JMP, top))
	if hasCondition {
		g.patchJump(jof, g.here())
	}
}

// emitStepForLoop lowers "for i = start to end [by step]" into an
// initializing store, a top-of-loop bound check, the body, and an
// appended increment-and-jump-back splice.
func (g *Generator) emitStepForLoop(n *ast.DoAction, label string) {
	step := n.Control.For
	counterAddr := address{scope: step.CounterScope, offset: step.CounterOffset}

	step.Start.Accept(g)
	g.emit(Make(STV, counterAddr.scope, counterAddr.offset))

	top := g.here()
	g.emit(Make(LDV, counterAddr.scope, counterAddr.offset))
	step.End.Accept(g)
	g.emit(Make(LEQ))
	jof := g.emit(Make(JOF, 0))

	if n.Control.While != nil {
		n.Control.While.Accept(g)
		whileJof := g.emit(Make(JOF, 0))
		g.emitBlock(n.Body)
		g.patchJump(whileJof, g.here())
	} else {
		g.emitBlock(n.Body)
	}

	g.emit(Make(LDV, counterAddr.scope, counterAddr.offset))
	if step.Step != nil {
		step.Step.Accept(g)
	} else {
		idx := g.addConstant(int64(1))
		g.emit(Make(LDC, idx))
	}
	g.emit(Make(ADD))
	g.emit(Make(STV, counterAddr.scope, counterAddr.offset))
	g.emit(Make(JMP, top))
	g.patchJump(jof, g.here())
}

// emitRangeForLoop lowers "for i mode" the same way as a step-for loop,
// with the mode's resolved Lower/Upper standing in for the start/end
// expressions and a constant step of 1 — SPEC_FULL.md's for-range
// supplement, emitted with the teacher's step-loop shape rather than a
// new opcode.
func (g *Generator) emitRangeForLoop(n *ast.DoAction, label string) {
	rng := n.Control.Range
	counterAddr := address{scope: rng.CounterScope, offset: rng.CounterOffset}

	lowerIdx := g.addConstant(int64(rng.Lower))
	g.emit(Make(LDC, lowerIdx))
	g.emit(Make(STV, counterAddr.scope, counterAddr.offset))

	top := g.here()
	g.emit(Make(LDV, counterAddr.scope, counterAddr.offset))
	upperIdx := g.addConstant(int64(rng.Upper))
	g.emit(Make(LDC, upperIdx))
	g.emit(Make(LEQ))
	jof := g.emit(Make(JOF, 0))

	if n.Control.While != nil {
		n.Control.While.Accept(g)
		whileJof := g.emit(Make(JOF, 0))
		g.emitBlock(n.Body)
		g.patchJump(whileJof, g.here())
	} else {
		g.emitBlock(n.Body)
	}

	g.emit(Make(LDV, counterAddr.scope, counterAddr.offset))
	oneIdx := g.addConstant(int64(1))
	g.emit(Make(LDC, oneIdx))
	g.emit(Make(ADD))
	g.emit(Make(STV, counterAddr.scope, counterAddr.offset))
	g.emit(Make(JMP, top))
	g.patchJump(jof, g.here())
}

func (g *Generator) VisitLabelledStatement(n *ast.LabelledStatement) any {
	g.labelOverride = n.Label.Lexeme
	n.Inner.Accept(g)
	return nil
}

func (g *Generator) VisitExitAction(n *ast.ExitAction) any {
	pos := g.emit(Make(JMP, 0))
	g.exitTargets[n.Label.Lexeme] = append(g.exitTargets[n.Label.Lexeme], pos)
	return nil
}

func (g *Generator) VisitReturnAction(n *ast.ReturnAction) any {
	if g.currentProc == nil {
		panic(&DeveloperError{Message: "return outside a procedure body reached codegen"})
	}
	g.emitReturn(g.currentProc, n.Value)
	return nil
}

func (g *Generator) VisitResultAction(n *ast.ResultAction) any {
	n.Value.Accept(g)
	return nil
}

func (g *Generator) VisitProcedureCallStatement(n *ast.ProcedureCallStatement) any {
	g.emitCall(n.Name.Lexeme, n.Arguments)
	return nil
}

func (g *Generator) VisitBuiltinCallStatement(n *ast.BuiltinCallStatement) any {
	switch n.Name.Kind {
	case token.PRINT:
		for _, arg := range n.Arguments {
			g.emitPrint(arg)
		}
	case token.READ:
		for _, arg := range n.Arguments {
			g.emitRead(arg)
		}
	default:
		g.emitBuiltin(n.Name, n.Arguments)
	}
	return nil
}

func (g *Generator) emitPrint(arg ast.Expression) {
	arg.Accept(g)
	m := argDecoration(arg)
	switch {
	case m != nil && m.Tag == mode.Char:
		g.emit(Make(PRC))
	case m != nil && m.Tag == mode.String:
		g.emit(Make(PRS))
	default:
		g.emit(Make(PRV))
	}
}

func (g *Generator) emitRead(arg ast.Expression) {
	loc, ok := arg.(*ast.LocationExpression)
	if !ok {
		panic(&DeveloperError{Message: "read() argument is not a location"})
	}
	addr := g.locationAddress(loc.Loc)
	m := argDecoration(arg)
	switch {
	case m != nil && m.Tag == mode.Char:
		g.emit(Make(RDC))
	case m != nil && m.Tag == mode.String:
		g.emit(Make(RDS))
	default:
		g.emit(Make(RDV))
	}
	g.emit(Make(STV, addr.scope, addr.offset))
}
