package semantic

import (
	"lya/ast"
	"lya/mode"
	"lya/scope"
)

func (d *Decorator) VisitIdentifierLocation(n *ast.IdentifierLocation) any {
	dec := n.Decorate()
	sym, levels, ok := d.scopes.Lookup(n.Name.Lexeme)
	if !ok {
		d.errorf(UndeclaredIdentifier, n.Line(), "undeclared identifier '%s'", n.Name.Lexeme)
		return mode.VoidMode
	}
	dec.Mode = sym.Mode
	dec.Offset = sym.Offset
	dec.Scope = levels
	dec.IsReference = sym.Mode != nil && sym.Mode.Tag == mode.Reference
	dec.AutoDeref = sym.IsLoc && sym.IsParameter
	if sym.Kind == scope.KindSynonym {
		dec.IsConstant = true
		dec.Value = sym.ConstValue
	}
	return sym.Mode
}

func (d *Decorator) VisitArrayElement(n *ast.ArrayElement) any {
	arrayMode := d.decorateLocation(n.Array)
	indexMode := d.decorateExpression(n.Index)
	dec := n.Decorate()

	switch {
	case arrayMode == nil:
		return mode.VoidMode
	case arrayMode.Tag == mode.Array:
		if indexMode != nil && indexMode.Tag != mode.Int {
			d.errorf(ModeMismatch, n.Line(), "array index must be int, got %s", indexMode)
		}
		dec.Mode = arrayMode.Element
		dec.LowerBound = arrayMode.Lower
		dec.UpperBound = arrayMode.Upper
		return arrayMode.Element
	case arrayMode.Tag == mode.String:
		if indexMode != nil && indexMode.Tag != mode.Int {
			d.errorf(ModeMismatch, n.Line(), "string index must be int, got %s", indexMode)
		}
		dec.Mode = mode.CharMode
		return mode.CharMode
	default:
		d.errorf(InvalidLocation, n.Line(), "cannot index a value of mode %s", arrayMode)
		return mode.VoidMode
	}
}

func (d *Decorator) VisitArraySlice(n *ast.ArraySlice) any {
	arrayMode := d.decorateLocation(n.Array)
	d.decorateExpression(n.Lower)
	d.decorateExpression(n.Upper)
	dec := n.Decorate()

	if arrayMode == nil {
		return mode.VoidMode
	}
	switch arrayMode.Tag {
	case mode.Array:
		dec.Mode = arrayMode
		return arrayMode
	case mode.String:
		dec.Mode = arrayMode
		return arrayMode
	default:
		d.errorf(InvalidLocation, n.Line(), "cannot slice a value of mode %s", arrayMode)
		return mode.VoidMode
	}
}

func (d *Decorator) VisitDereferencedReference(n *ast.DereferencedReference) any {
	refMode := d.decorateLocation(n.Loc)
	dec := n.Decorate()
	if refMode == nil || refMode.Tag != mode.Reference {
		d.errorf(ModeMismatch, n.Line(), "cannot dereference a value of mode %s", refMode)
		return mode.VoidMode
	}
	dec.Mode = refMode.Element
	return refMode.Element
}
