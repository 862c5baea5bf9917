package astprint

import "lya/ast"

func (p printer) VisitIdentifierLocation(n *ast.IdentifierLocation) any {
	return node("IdentifierLocation", n, map[string]any{
		"name": n.Name.Lexeme, "scope": n.Decoration.Scope, "offset": n.Decoration.Offset,
	})
}
func (p printer) VisitArrayElement(n *ast.ArrayElement) any {
	return node("ArrayElement", n, map[string]any{"array": n.Array.Accept(p), "index": n.Index.Accept(p)})
}
func (p printer) VisitArraySlice(n *ast.ArraySlice) any {
	return node("ArraySlice", n, map[string]any{
		"array": n.Array.Accept(p), "lower": n.Lower.Accept(p), "upper": n.Upper.Accept(p),
	})
}
func (p printer) VisitDereferencedReference(n *ast.DereferencedReference) any {
	return node("DereferencedReference", n, map[string]any{"location": n.Loc.Accept(p)})
}
