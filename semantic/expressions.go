package semantic

import (
	"lya/ast"
	"lya/mode"
	"lya/token"
)

func (d *Decorator) VisitIntegerLiteral(n *ast.IntegerLiteral) any {
	dec := n.Decorate()
	dec.Mode = mode.IntMode
	dec.IsConstant = true
	dec.Value = n.Value
	return mode.IntMode
}

func (d *Decorator) VisitBooleanLiteral(n *ast.BooleanLiteral) any {
	dec := n.Decorate()
	dec.Mode = mode.BoolMode
	dec.IsConstant = true
	dec.Value = n.Value
	return mode.BoolMode
}

func (d *Decorator) VisitCharacterLiteral(n *ast.CharacterLiteral) any {
	dec := n.Decorate()
	dec.Mode = mode.CharMode
	dec.IsConstant = true
	dec.Value = n.Value
	return mode.CharMode
}

// VisitStringLiteral interns the literal into the VM's immutable string
// heap by assigning it the next heap index, per spec.md's heap_index
// decoration field.
func (d *Decorator) VisitStringLiteral(n *ast.StringLiteral) any {
	dec := n.Decorate()
	m := mode.NewStringMode(len(n.Value))
	dec.Mode = m
	dec.IsConstant = true
	dec.Value = n.Value
	dec.HeapIndex = d.nextHeap
	d.nextHeap++
	return m
}

func (d *Decorator) VisitEmptyLiteral(n *ast.EmptyLiteral) any {
	dec := n.Decorate()
	dec.Mode = mode.NewReferenceMode(mode.VoidMode)
	dec.IsConstant = true
	dec.Value = nil
	return dec.Mode
}

func (d *Decorator) VisitLocationExpression(n *ast.LocationExpression) any {
	m := d.decorateLocation(n.Loc)
	dec := n.Decorate()
	dec.Mode = m
	if locDec, ok := n.Loc.(ast.Annotated); ok {
		inner := locDec.Decorate()
		dec.IsConstant = inner.IsConstant
		dec.Value = inner.Value
	}
	return m
}

func (d *Decorator) VisitReferencedLocation(n *ast.ReferencedLocation) any {
	m := d.decorateLocation(n.Loc)
	result := mode.NewReferenceMode(m)
	n.Decorate().Mode = result
	return result
}

func (d *Decorator) VisitUnaryExpression(n *ast.UnaryExpression) any {
	operandMode := d.decorateExpression(n.Operand)
	dec := n.Decorate()

	if !mode.UnaryAllowed(operandMode, n.Operator.Kind) {
		d.errorf(UnsupportedOperator, n.Line(), "operator '%s' is not defined for mode %s", n.Operator.Lexeme, operandMode)
		dec.Mode = operandMode
		return operandMode
	}
	dec.Mode = operandMode

	if operandDec, ok := n.Operand.(ast.Annotated); ok {
		inner := operandDec.Decorate()
		if inner.IsConstant {
			dec.IsConstant = true
			dec.Value = foldUnary(n.Operator.Kind, inner.Value)
		}
	}
	return operandMode
}

func foldUnary(op token.Kind, v any) any {
	switch op {
	case token.MINUS:
		return -v.(int64)
	case token.ABS:
		x := v.(int64)
		if x < 0 {
			return -x
		}
		return x
	case token.BANG:
		return !v.(bool)
	}
	return v
}

func (d *Decorator) VisitBinaryExpression(n *ast.BinaryExpression) any {
	leftMode := d.decorateExpression(n.Left)
	rightMode := d.decorateExpression(n.Right)
	dec := n.Decorate()

	if !mode.Equal(leftMode, rightMode) {
		d.errorf(ModeMismatch, n.Line(), "operands of '%s' have differing modes %s and %s", n.Operator.Lexeme, leftMode, rightMode)
		dec.Mode = leftMode
		return leftMode
	}
	if !mode.BinaryAllowed(leftMode, n.Operator.Kind) {
		d.errorf(UnsupportedOperator, n.Line(), "operator '%s' is not defined for mode %s", n.Operator.Lexeme, leftMode)
		dec.Mode = leftMode
		return leftMode
	}
	dec.Mode = leftMode

	leftDec, lok := n.Left.(ast.Annotated)
	rightDec, rok := n.Right.(ast.Annotated)
	if lok && rok {
		ld, rd := leftDec.Decorate(), rightDec.Decorate()
		if ld.IsConstant && rd.IsConstant {
			value, err := foldBinary(n.Operator.Kind, ld.Value, rd.Value)
			if err != nil {
				d.errorf(ConstantFoldingError, n.Line(), "%s", err)
			} else {
				dec.IsConstant = true
				dec.Value = value
			}
		}
	}
	return leftMode
}

func foldBinary(op token.Kind, l, r any) (any, error) {
	if ls, ok := l.(string); ok {
		rs := r.(string)
		switch op {
		case token.PLUS:
			return ls + rs, nil
		}
	}
	li, rLi := l.(int64), r.(int64)
	switch op {
	case token.PLUS:
		return li + rLi, nil
	case token.MINUS:
		return li - rLi, nil
	case token.STAR:
		return li * rLi, nil
	case token.SLASH:
		if rLi == 0 {
			return nil, rangeErrorDivideByZero
		}
		return li / rLi, nil
	case token.PERCENT:
		if rLi == 0 {
			return nil, rangeErrorDivideByZero
		}
		return li % rLi, nil
	}
	return nil, nil
}

func (d *Decorator) VisitRelMemExpression(n *ast.RelMemExpression) any {
	leftMode := d.decorateExpression(n.Left)
	rightMode := d.decorateExpression(n.Right)
	dec := n.Decorate()
	dec.Mode = mode.BoolMode

	if !mode.Equal(leftMode, rightMode) {
		d.errorf(ModeMismatch, n.Line(), "operands of '%s' have differing modes %s and %s", n.Operator.Lexeme, leftMode, rightMode)
		return mode.BoolMode
	}
	if !mode.RelationalAllowed(leftMode, n.Operator.Kind) {
		d.errorf(UnsupportedOperator, n.Line(), "operator '%s' is not defined for mode %s", n.Operator.Lexeme, leftMode)
		return mode.BoolMode
	}

	leftDec, lok := n.Left.(ast.Annotated)
	rightDec, rok := n.Right.(ast.Annotated)
	if lok && rok {
		ld, rd := leftDec.Decorate(), rightDec.Decorate()
		if ld.IsConstant && rd.IsConstant {
			if value, ok := foldRel(n.Operator.Kind, ld.Value, rd.Value); ok {
				dec.IsConstant = true
				dec.Value = value
			}
		}
	}
	return mode.BoolMode
}

// foldRel evaluates a relational or logical (&&, ||) operator over two
// compile-time-constant operands, mirroring foldBinary.
func foldRel(op token.Kind, l, r any) (bool, bool) {
	switch op {
	case token.AND:
		return l.(bool) && r.(bool), true
	case token.OR:
		return l.(bool) || r.(bool), true
	case token.EQUAL:
		return l == r, true
	case token.NOT_EQUAL:
		return l != r, true
	}

	switch lv := l.(type) {
	case int64:
		rv := r.(int64)
		switch op {
		case token.LESS:
			return lv < rv, true
		case token.LESS_EQUAL:
			return lv <= rv, true
		case token.GREATER:
			return lv > rv, true
		case token.GREATER_EQUAL:
			return lv >= rv, true
		}
	case rune:
		rv := r.(rune)
		switch op {
		case token.LESS:
			return lv < rv, true
		case token.LESS_EQUAL:
			return lv <= rv, true
		case token.GREATER:
			return lv > rv, true
		case token.GREATER_EQUAL:
			return lv >= rv, true
		}
	}
	return false, false
}

func (d *Decorator) VisitConditionalExpression(n *ast.ConditionalExpression) any {
	condMode := d.decorateExpression(n.Condition)
	if condMode != nil && condMode.Tag != mode.Bool {
		d.errorf(ModeMismatch, n.Line(), "conditional expression condition must be bool, got %s", condMode)
	}
	thenMode := d.decorateExpression(n.Then)
	for i, ec := range n.ElsifConds {
		ecMode := d.decorateExpression(ec)
		if ecMode != nil && ecMode.Tag != mode.Bool {
			d.errorf(ModeMismatch, ec.Line(), "elsif condition must be bool, got %s", ecMode)
		}
		d.decorateExpression(n.ElsifThens[i])
	}
	elseMode := d.decorateExpression(n.Else)
	if !mode.Equal(thenMode, elseMode) {
		d.errorf(ModeMismatch, n.Line(), "conditional expression branches have differing modes %s and %s", thenMode, elseMode)
	}
	n.Decorate().Mode = thenMode
	return thenMode
}

func (d *Decorator) VisitProcedureCallExpression(n *ast.ProcedureCall) any {
	m := d.decorateProcedureCall(n.Name, n.Arguments, n.Line())
	n.Decorate().Mode = m
	return m
}

func (d *Decorator) VisitBuiltinCallExpression(n *ast.BuiltinCall) any {
	m := d.decorateBuiltinCall(n.Name, n.Arguments)
	n.Decorate().Mode = m
	return m
}
