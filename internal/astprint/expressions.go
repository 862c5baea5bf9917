package astprint

import "lya/ast"

func (p printer) VisitIntegerLiteral(n *ast.IntegerLiteral) any {
	return node("IntegerLiteral", n, map[string]any{"value": n.Value})
}
func (p printer) VisitBooleanLiteral(n *ast.BooleanLiteral) any {
	return node("BooleanLiteral", n, map[string]any{"value": n.Value})
}
func (p printer) VisitCharacterLiteral(n *ast.CharacterLiteral) any {
	return node("CharacterLiteral", n, map[string]any{"value": string(n.Value)})
}
func (p printer) VisitStringLiteral(n *ast.StringLiteral) any {
	return node("StringLiteral", n, map[string]any{"value": n.Value, "heapIndex": n.Decoration.HeapIndex})
}
func (p printer) VisitEmptyLiteral(n *ast.EmptyLiteral) any {
	return node("EmptyLiteral", n, nil)
}
func (p printer) VisitLocationExpression(n *ast.LocationExpression) any {
	return node("LocationExpression", n, map[string]any{"location": n.Loc.Accept(p)})
}
func (p printer) VisitReferencedLocation(n *ast.ReferencedLocation) any {
	return node("ReferencedLocation", n, map[string]any{"location": n.Loc.Accept(p)})
}
func (p printer) VisitUnaryExpression(n *ast.UnaryExpression) any {
	return node("UnaryExpression", n, map[string]any{
		"operator": n.Operator.Lexeme,
		"operand":  n.Operand.Accept(p),
	})
}
func (p printer) VisitBinaryExpression(n *ast.BinaryExpression) any {
	return node("BinaryExpression", n, map[string]any{
		"left": n.Left.Accept(p), "operator": n.Operator.Lexeme, "right": n.Right.Accept(p),
	})
}
func (p printer) VisitRelMemExpression(n *ast.RelMemExpression) any {
	return node("RelMemExpression", n, map[string]any{
		"left": n.Left.Accept(p), "operator": n.Operator.Lexeme, "right": n.Right.Accept(p),
	})
}
func (p printer) VisitConditionalExpression(n *ast.ConditionalExpression) any {
	elsifs := make([]any, len(n.ElsifConds))
	for i := range n.ElsifConds {
		elsifs[i] = map[string]any{"condition": n.ElsifConds[i].Accept(p), "then": n.ElsifThens[i].Accept(p)}
	}
	return node("ConditionalExpression", n, map[string]any{
		"condition": n.Condition.Accept(p),
		"then":      n.Then.Accept(p),
		"elsif":     elsifs,
		"else":      n.Else.Accept(p),
	})
}
func (p printer) VisitProcedureCallExpression(n *ast.ProcedureCall) any {
	return node("ProcedureCall", n, map[string]any{"name": n.Name.Lexeme, "arguments": exprList(p, n.Arguments)})
}
func (p printer) VisitBuiltinCallExpression(n *ast.BuiltinCall) any {
	return node("BuiltinCall", n, map[string]any{"name": n.Name.Lexeme, "arguments": exprList(p, n.Arguments)})
}

func exprList(p printer, exprs []ast.Expression) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = e.Accept(p)
	}
	return out
}

// node wraps a rendered AST node in its type tag, source line, and
// (once decoration has run) its resolved mode/value.
func node(kind string, n ast.Annotated, fields map[string]any) map[string]any {
	out := map[string]any{"type": kind}
	if line, ok := n.(ast.Node); ok {
		out["line"] = line.Line()
	}
	if d := decoration(n); d != nil {
		out["decoration"] = d
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}
