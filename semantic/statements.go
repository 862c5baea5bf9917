package semantic

import (
	"lya/ast"
	"lya/mode"
	"lya/scope"
	"lya/token"
)

// decorateStatement decorates a single statement and reports whether it
// is guaranteed to execute a matching "return" on every path through it,
// the unit the procedure-body return check (VisitProcedureStatement)
// composes across a statement list.
func (d *Decorator) decorateStatement(s ast.Statement) bool {
	returns, _ := s.Accept(d).(bool)
	return returns
}

// decorateBody decorates a statement sequence and reports whether the
// sequence as a whole is guaranteed to return: true as soon as any
// statement in it does, since everything sequentially after a guaranteed
// return is unreachable regardless of its own shape.
func (d *Decorator) decorateBody(stmts []ast.Statement) bool {
	returns := false
	for _, stmt := range stmts {
		if d.decorateStatement(stmt) {
			returns = true
		}
	}
	return returns
}

func (d *Decorator) VisitDeclarationStatement(n *ast.DeclarationStatement) any {
	for i := range n.Declarators {
		decl := &n.Declarators[i]
		m := d.resolveMode(decl.Mode)
		if decl.Init != nil {
			initMode := d.decorateExpression(decl.Init)
			if !mode.Equal(m, initMode) {
				d.errorf(ModeMismatch, n.Line(), "initializer for '%s' has mode %s, expected %s", decl.Name.Lexeme, initMode, m)
			}
		}
		sym := &scope.Symbol{Name: decl.Name.Lexeme, Kind: scope.KindVariable, Mode: m, IsLoc: decl.Loc}
		if !d.scopes.Current().Declare(sym) {
			d.errorf(Redeclaration, n.Line(), "'%s' is already declared in this scope", decl.Name.Lexeme)
		}
		decl.Offset = sym.Offset
	}
	return nil
}

func (d *Decorator) VisitSynonymStatement(n *ast.SynonymStatement) any {
	for i := range n.Declarators {
		decl := &n.Declarators[i]
		initMode := d.decorateExpression(decl.Init)
		dec, ok := decl.Init.(ast.Annotated)
		if !ok || !dec.Decorate().IsConstant {
			d.errorf(ConstantFoldingError, n.Line(), "synonym '%s' initializer must be a compile-time constant", decl.Name.Lexeme)
		}
		m := initMode
		if decl.Mode != nil {
			m = d.resolveMode(decl.Mode)
			if !mode.Equal(m, initMode) {
				d.errorf(ModeMismatch, n.Line(), "synonym '%s' initializer has mode %s, expected %s", decl.Name.Lexeme, initMode, m)
			}
		}
		var value any
		if ok {
			value = dec.Decorate().Value
		}
		sym := &scope.Symbol{Name: decl.Name.Lexeme, Kind: scope.KindSynonym, Mode: m, ConstValue: value}
		if !d.scopes.Current().Declare(sym) {
			d.errorf(Redeclaration, n.Line(), "'%s' is already declared in this scope", decl.Name.Lexeme)
		}
	}
	return nil
}

func (d *Decorator) VisitNewmodeStatement(n *ast.NewmodeStatement) any {
	for _, decl := range n.Declarators {
		resolved := d.resolveMode(decl.Mode)
		if _, exists := d.modeAlias[decl.Name.Lexeme]; exists {
			d.errorf(Redeclaration, n.Line(), "mode '%s' is already declared", decl.Name.Lexeme)
			continue
		}
		d.modeAlias[decl.Name.Lexeme] = resolved
	}
	return nil
}

// VisitProcedureStatement decorates a procedure declaration: it resolves
// the parameter and result modes, lays parameters out at negative frame
// offsets (spec.md §4.4's call-frame layout), pushes a fresh scope and
// ProcedureContext for the body, and checks that a declared non-void
// result spec is satisfied by a guaranteed "return" on every path.
func (d *Decorator) VisitProcedureStatement(n *ast.ProcedureStatement) any {
	resultMode := d.resolveMode(n.ResultMode)

	paramModes := make([]*mode.Mode, len(n.Parameters))
	for i, param := range n.Parameters {
		paramModes[i] = d.resolveMode(param.Mode)
	}

	sym := &scope.Symbol{Name: n.Name.Lexeme, Kind: scope.KindProcedure, Mode: resultMode, Procedure: n}
	if !d.scopes.Current().Declare(sym) {
		d.errorf(Redeclaration, n.Line(), "'%s' is already declared in this scope", n.Name.Lexeme)
	}

	bodyScope := d.scopes.PushFrame()

	parameterSpace := 0
	for _, m := range paramModes {
		parameterSpace += frameSlots(m)
	}
	hasResult := resultMode != nil && resultMode.Tag != mode.Void
	n.HasResult = hasResult
	if hasResult {
		n.ReturnOffset = -2 - parameterSpace - 1
	}
	offset := -2 - parameterSpace
	for i, param := range n.Parameters {
		psym := &scope.Symbol{Name: param.Name.Lexeme, Kind: scope.KindVariable, Mode: paramModes[i], IsParameter: true, IsLoc: param.Loc}
		bodyScope.DeclareAt(psym, offset)
		offset += frameSlots(paramModes[i])
	}

	ctx := &scope.ProcedureContext{Name: n.Name.Lexeme, ResultMode: resultMode, ResultLoc: n.ResultLoc, ScopeDepth: bodyScope.Depth, ParameterSpace: parameterSpace}
	d.procedures.Push(ctx)

	bodyReturns := d.decorateBody(n.Body)

	if hasResult && !bodyReturns {
		d.errorf(ProcedureSignature, n.Line(), "procedure '%s' declares a result but does not return on every path", n.Name.Lexeme)
	}

	n.FrameDepth = bodyScope.Depth
	n.ParameterSpace = parameterSpace
	n.LocalSize = bodyScope.FrameSize()

	d.procedures.Pop()
	d.scopes.Pop()
	return nil
}

// frameSlots is the number of VM frame slots a parameter of mode m
// occupies. Composite modes (array, string) still occupy a single slot
// holding a reference to their storage; only the reference/value
// distinction in spec.md §4.4's parameter_space accounting matters here.
func frameSlots(m *mode.Mode) int {
	if m == nil {
		return 1
	}
	return 1
}

func (d *Decorator) VisitAssignmentAction(n *ast.AssignmentAction) any {
	targetMode := d.decorateLocation(n.Target)
	valueMode := d.decorateExpression(n.Value)

	if id, ok := n.Target.(*ast.IdentifierLocation); ok {
		if sym, _, found := d.scopes.Lookup(id.Name.Lexeme); found && sym.Kind == scope.KindSynonym {
			d.errorf(InvalidLocation, n.Line(), "cannot assign to synonym '%s'", id.Name.Lexeme)
		}
	}

	if n.Operator.Kind == token.ASSIGN {
		if !mode.Equal(targetMode, valueMode) {
			d.errorf(ModeMismatch, n.Line(), "cannot assign %s to location of mode %s", valueMode, targetMode)
		}
		return false
	}
	if !mode.ClosedDyadicAllowed(targetMode, n.Operator.Kind) {
		d.errorf(UnsupportedOperator, n.Line(), "operator '%s' is not defined for mode %s", n.Operator.Lexeme, targetMode)
	}
	if !mode.Equal(targetMode, valueMode) {
		d.errorf(ModeMismatch, n.Line(), "cannot apply '%s' with operand of mode %s to location of mode %s", n.Operator.Lexeme, valueMode, targetMode)
	}
	return false
}

// VisitIfAction decorates every branch and reports whether the whole
// statement is guaranteed to return: only when an "else" is present and
// every branch, including each "elsif", returns on its own.
func (d *Decorator) VisitIfAction(n *ast.IfAction) any {
	condMode := d.decorateExpression(n.Condition)
	if condMode != nil && condMode.Tag != mode.Bool {
		d.errorf(ModeMismatch, n.Line(), "if condition must be bool, got %s", condMode)
	}
	allReturn := d.decorateBlock(n.Then)
	for i, ec := range n.ElsifConds {
		ecMode := d.decorateExpression(ec)
		if ecMode != nil && ecMode.Tag != mode.Bool {
			d.errorf(ModeMismatch, ec.Line(), "elsif condition must be bool, got %s", ecMode)
		}
		if !d.decorateBlock(n.ElsifThens[i]) {
			allReturn = false
		}
	}
	if n.Else != nil {
		if !d.decorateBlock(n.Else) {
			allReturn = false
		}
	} else {
		allReturn = false
	}
	return allReturn
}

func (d *Decorator) decorateBlock(stmts []ast.Statement) bool {
	d.scopes.Push()
	returns := d.decorateBody(stmts)
	d.scopes.Pop()
	return returns
}

// VisitDoAction decorates the loop's control clause and body. Only a
// truly unconditional loop (no while/for/range control) is guaranteed to
// execute its body at least once, so that is the only shape whose return
// guarantee can propagate to the loop as a whole.
func (d *Decorator) VisitDoAction(n *ast.DoAction) any {
	d.scopes.Push()
	if n.Control != nil {
		switch {
		case n.Control.For != nil:
			step := n.Control.For
			startMode := d.decorateExpression(step.Start)
			d.decorateExpression(step.End)
			if step.Step != nil {
				d.decorateExpression(step.Step)
			}
			sym := &scope.Symbol{Name: step.Counter.Lexeme, Kind: scope.KindVariable, Mode: startMode}
			if !d.scopes.Current().Declare(sym) {
				d.errorf(Redeclaration, n.Line(), "'%s' is already declared in this scope", step.Counter.Lexeme)
			}
			step.CounterScope = d.scopes.Current().Depth
			step.CounterOffset = sym.Offset
		case n.Control.Range != nil:
			rng := n.Control.Range
			m := d.resolveMode(rng.RangeOf)
			sym := &scope.Symbol{Name: rng.Counter.Lexeme, Kind: scope.KindVariable, Mode: m}
			if !d.scopes.Current().Declare(sym) {
				d.errorf(Redeclaration, n.Line(), "'%s' is already declared in this scope", rng.Counter.Lexeme)
			}
			rng.CounterScope = d.scopes.Current().Depth
			rng.CounterOffset = sym.Offset
			if m != nil {
				rng.Lower, rng.Upper = m.Lower, m.Upper
			}
		}
		if n.Control.While != nil {
			whileMode := d.decorateExpression(n.Control.While)
			if whileMode != nil && whileMode.Tag != mode.Bool {
				d.errorf(ModeMismatch, n.Line(), "while condition must be bool, got %s", whileMode)
			}
		}
	}
	bodyReturns := d.decorateBody(n.Body)
	d.scopes.Pop()
	return n.Control == nil && bodyReturns
}

func (d *Decorator) VisitLabelledStatement(n *ast.LabelledStatement) any {
	if !d.scopes.Current().DeclareLabel(n.Label.Lexeme) {
		d.errorf(Redeclaration, n.Line(), "label '%s' is already declared in this scope", n.Label.Lexeme)
	}
	return d.decorateStatement(n.Inner)
}

func (d *Decorator) VisitExitAction(n *ast.ExitAction) any {
	if !d.scopes.LookupLabel(n.Label.Lexeme) {
		d.errorf(UndeclaredIdentifier, n.Line(), "exit targets undeclared label '%s'", n.Label.Lexeme)
	}
	return nil
}

func (d *Decorator) VisitReturnAction(n *ast.ReturnAction) any {
	ctx := d.procedures.Current()
	if ctx == nil {
		d.errorf(InvalidLocation, n.Line(), "'return' outside a procedure")
		return false
	}
	if n.Value == nil {
		if ctx.ResultMode != nil && ctx.ResultMode.Tag != mode.Void {
			d.errorf(ProcedureSignature, n.Line(), "procedure '%s' must return a value of mode %s", ctx.Name, ctx.ResultMode)
		}
	} else {
		valueMode := d.decorateExpression(n.Value)
		if ctx.ResultMode == nil || ctx.ResultMode.Tag == mode.Void {
			d.errorf(ProcedureSignature, n.Line(), "procedure '%s' is void and cannot return a value", ctx.Name)
		} else if !mode.Equal(ctx.ResultMode, valueMode) {
			d.errorf(ProcedureSignature, n.Line(), "procedure '%s' returns %s, expected %s", ctx.Name, valueMode, ctx.ResultMode)
		}
	}
	return true
}

func (d *Decorator) VisitResultAction(n *ast.ResultAction) any {
	d.decorateExpression(n.Value)
	return false
}

func (d *Decorator) decorateArguments(args []ast.Expression) []*mode.Mode {
	modes := make([]*mode.Mode, len(args))
	for i, arg := range args {
		modes[i] = d.decorateExpression(arg)
	}
	return modes
}

// decorateProcedureCall resolves a call target, checks arity and
// parameter-mode compatibility (and that "loc" parameters only ever
// receive lvalue arguments), and returns the callee's result mode.
func (d *Decorator) decorateProcedureCall(name token.Token, args []ast.Expression, line int) *mode.Mode {
	argModes := d.decorateArguments(args)
	sym, _, ok := d.scopes.Lookup(name.Lexeme)
	if !ok || sym.Kind != scope.KindProcedure {
		d.errorf(UndeclaredIdentifier, line, "undeclared procedure '%s'", name.Lexeme)
		return mode.VoidMode
	}
	proc := sym.Procedure
	if len(proc.Parameters) != len(args) {
		d.errorf(ProcedureSignature, line, "'%s' expects %d arguments, got %d", name.Lexeme, len(proc.Parameters), len(args))
		return sym.Mode
	}
	for i, param := range proc.Parameters {
		expected := d.resolveMode(param.Mode)
		if !mode.Equal(expected, argModes[i]) {
			d.errorf(ProcedureSignature, line, "argument %d of '%s' has mode %s, expected %s", i+1, name.Lexeme, argModes[i], expected)
		}
		if param.Loc {
			if _, isLoc := args[i].(*ast.LocationExpression); !isLoc {
				d.errorf(InvalidLocation, line, "argument %d of '%s' must be a location (declared 'loc')", i+1, name.Lexeme)
			}
		}
	}
	return sym.Mode
}

func (d *Decorator) VisitProcedureCallStatement(n *ast.ProcedureCallStatement) any {
	d.decorateProcedureCall(n.Name, n.Arguments, n.Line())
	return nil
}

// decorateBuiltinCall checks argument count/modes for the predeclared
// builtins and returns the builtin's result mode.
func (d *Decorator) decorateBuiltinCall(name token.Token, args []ast.Expression) *mode.Mode {
	argModes := d.decorateArguments(args)
	switch name.Kind {
	case token.PRINT:
		return mode.VoidMode
	case token.READ:
		return mode.VoidMode
	case token.ABS:
		if len(argModes) != 1 || argModes[0] == nil || argModes[0].Tag != mode.Int {
			d.errorf(ProcedureSignature, name.Line, "'abs' expects one int argument")
		}
		return mode.IntMode
	case token.NUM:
		if len(argModes) != 1 {
			d.errorf(ProcedureSignature, name.Line, "'num' expects one argument")
		}
		return mode.IntMode
	case token.ASC:
		if len(argModes) != 1 || argModes[0] == nil || argModes[0].Tag != mode.Int {
			d.errorf(ProcedureSignature, name.Line, "'asc' expects one int argument")
		}
		return mode.CharMode
	case token.UPPER, token.LOWER:
		if len(argModes) != 1 || argModes[0] == nil || argModes[0].Tag != mode.Char {
			d.errorf(ProcedureSignature, name.Line, "'%s' expects one char argument", name.Lexeme)
		}
		return mode.CharMode
	case token.LENGTH:
		if len(argModes) != 1 {
			d.errorf(ProcedureSignature, name.Line, "'length' expects one argument")
		}
		return mode.IntMode
	}
	return mode.VoidMode
}

func (d *Decorator) VisitBuiltinCallStatement(n *ast.BuiltinCallStatement) any {
	d.decorateBuiltinCall(n.Name, n.Arguments)
	return nil
}
