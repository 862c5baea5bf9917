package ast

import "lya/token"

// IdentifierLocation is a plain name reference; resolution against the
// scope table happens during decoration.
type IdentifierLocation struct {
	Decorated
	Name token.Token
	line int
}

func NewIdentifierLocation(name token.Token, line int) *IdentifierLocation {
	return &IdentifierLocation{Name: name, line: line}
}
func (n *IdentifierLocation) Line() int       { return n.line }
func (n *IdentifierLocation) locationNode()   {}
func (n *IdentifierLocation) Accept(v LocationVisitor) any {
	return v.VisitIdentifierLocation(n)
}

// ArrayElement is "a[i]", an indexing location.
type ArrayElement struct {
	Decorated
	Array Location
	Index Expression
	line  int
}

func NewArrayElement(array Location, index Expression, line int) *ArrayElement {
	return &ArrayElement{Array: array, Index: index, line: line}
}
func (n *ArrayElement) Line() int     { return n.line }
func (n *ArrayElement) locationNode() {}
func (n *ArrayElement) Accept(v LocationVisitor) any {
	return v.VisitArrayElement(n)
}

// ArraySlice is "a[lo:hi]".
type ArraySlice struct {
	Decorated
	Array Location
	Lower Expression
	Upper Expression
	line  int
}

func NewArraySlice(array Location, lower, upper Expression, line int) *ArraySlice {
	return &ArraySlice{Array: array, Lower: lower, Upper: upper, line: line}
}
func (n *ArraySlice) Line() int     { return n.line }
func (n *ArraySlice) locationNode() {}
func (n *ArraySlice) Accept(v LocationVisitor) any {
	return v.VisitArraySlice(n)
}

// DereferencedReference is "loc->", reading through a reference-mode
// location to the location it points at.
type DereferencedReference struct {
	Decorated
	Loc  Location
	line int
}

func NewDereferencedReference(loc Location, line int) *DereferencedReference {
	return &DereferencedReference{Loc: loc, line: line}
}
func (n *DereferencedReference) Line() int     { return n.line }
func (n *DereferencedReference) locationNode() {}
func (n *DereferencedReference) Accept(v LocationVisitor) any {
	return v.VisitDereferencedReference(n)
}
