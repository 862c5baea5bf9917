package codegen

import "lya/ast"

// VisitIdentifierLocation emits a read of a scalar local/global: LDV loads
// the value at (scope-levels, offset) through the VM's display register.
// A "loc" parameter's slot holds the caller's address rather than the
// value itself, so reading it auto-dereferences through LRV instead.
func (g *Generator) VisitIdentifierLocation(n *ast.IdentifierLocation) any {
	if n.Decoration.AutoDeref {
		g.emit(Make(LRV, n.Decoration.Scope, n.Decoration.Offset))
	} else {
		g.emit(Make(LDV, n.Decoration.Scope, n.Decoration.Offset))
	}
	return nil
}

// VisitArrayElement emits the array's base address (ldv if it arrived as
// a "loc" parameter holding the caller's address, ldr if the array's own
// slot range is the storage), biases the index by the array's lower
// bound when non-zero, an idx to land on the element's address, then a
// grc to dereference it.
func (g *Generator) VisitArrayElement(n *ast.ArrayElement) any {
	addr := g.locationAddress(n.Array)
	g.emitBaseAddress(addr)
	n.Index.Accept(g)
	if n.Decoration.LowerBound != 0 {
		g.emit(Make(LDC, g.addConstant(int64(n.Decoration.LowerBound))))
		g.emit(Make(SUB))
	}
	g.emit(Make(IDX, 1))
	g.emit(Make(GRC))
	return nil
}

// VisitArraySlice handles the chars-mode case: the base location's
// current (whole-string) value, followed by the bounds, reduced to a
// substring by STS. Slicing a non-string array is out of scope.
func (g *Generator) VisitArraySlice(n *ast.ArraySlice) any {
	addr := g.locationAddress(n.Array)
	if addr.byValue {
		g.emit(Make(LRV, addr.scope, addr.offset))
	} else {
		g.emit(Make(LDV, addr.scope, addr.offset))
	}
	n.Lower.Accept(g)
	n.Upper.Accept(g)
	g.emit(Make(STS))
	return nil
}

// VisitDereferencedReference reads through a reference value stored at a
// known (scope, offset): LRV folds the load-the-address and
// load-through-it steps into one instruction.
func (g *Generator) VisitDereferencedReference(n *ast.DereferencedReference) any {
	addr := g.locationAddress(n.Loc)
	g.emit(Make(LRV, addr.scope, addr.offset))
	return nil
}
