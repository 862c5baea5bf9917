package astprint

import (
	"strconv"

	"lya/ast"
)

// modePrinter renders an as-written ast.Mode node back to Lya surface
// syntax, used wherever a statement or declarator names a mode.
type modePrinter struct{}

func exprString(e ast.Expression) string {
	if e == nil {
		return ""
	}
	return e.Accept(exprPrinter{}).(string)
}

type exprPrinter struct{}

func (exprPrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) any     { return strconv.FormatInt(n.Value, 10) }
func (exprPrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) any     { return strconv.FormatBool(n.Value) }
func (exprPrinter) VisitCharacterLiteral(n *ast.CharacterLiteral) any { return string(n.Value) }
func (exprPrinter) VisitStringLiteral(n *ast.StringLiteral) any       { return n.Value }
func (exprPrinter) VisitEmptyLiteral(n *ast.EmptyLiteral) any         { return "null" }
func (exprPrinter) VisitLocationExpression(n *ast.LocationExpression) any {
	return n.Loc.Accept(nameOnly{})
}
func (exprPrinter) VisitReferencedLocation(n *ast.ReferencedLocation) any {
	return "->" + exprString(ast.NewLocationExpression(n.Loc, n.Line()))
}
func (exprPrinter) VisitUnaryExpression(n *ast.UnaryExpression) any {
	return n.Operator.Lexeme + exprString(n.Operand)
}
func (exprPrinter) VisitBinaryExpression(n *ast.BinaryExpression) any {
	return exprString(n.Left) + " " + n.Operator.Lexeme + " " + exprString(n.Right)
}
func (exprPrinter) VisitRelMemExpression(n *ast.RelMemExpression) any {
	return exprString(n.Left) + " " + n.Operator.Lexeme + " " + exprString(n.Right)
}
func (exprPrinter) VisitConditionalExpression(n *ast.ConditionalExpression) any {
	return "if " + exprString(n.Condition) + " then " + exprString(n.Then) + " ... fi"
}
func (exprPrinter) VisitProcedureCallExpression(n *ast.ProcedureCall) any {
	return n.Name.Lexeme + "(...)"
}
func (exprPrinter) VisitBuiltinCallExpression(n *ast.BuiltinCall) any {
	return n.Name.Lexeme + "(...)"
}

// nameOnly renders a location down to its leading identifier, enough for
// an expression summary without recursing through the full tree twice.
type nameOnly struct{}

func (nameOnly) VisitIdentifierLocation(n *ast.IdentifierLocation) any { return n.Name.Lexeme }
func (nameOnly) VisitArrayElement(n *ast.ArrayElement) any            { return n.Array.Accept(nameOnly{}).(string) + "[...]" }
func (nameOnly) VisitArraySlice(n *ast.ArraySlice) any {
	return n.Array.Accept(nameOnly{}).(string) + "[...:...]"
}
func (nameOnly) VisitDereferencedReference(n *ast.DereferencedReference) any {
	return n.Loc.Accept(nameOnly{}).(string) + "->"
}

func (modePrinter) VisitIntegerMode(*ast.IntegerMode) any     { return "int" }
func (modePrinter) VisitBooleanMode(*ast.BooleanMode) any     { return "bool" }
func (modePrinter) VisitCharacterMode(*ast.CharacterMode) any { return "char" }
func (modePrinter) VisitStringMode(n *ast.StringMode) any {
	return "chars[" + exprString(n.Length) + "]"
}
func (p modePrinter) VisitArrayMode(n *ast.ArrayMode) any {
	return "array[" + exprString(n.Lower) + ":" + exprString(n.Upper) + "] " + modeString(n.Element)
}
func (p modePrinter) VisitReferenceMode(n *ast.ReferenceMode) any {
	return "ref " + modeString(n.Referenced)
}
func (p modePrinter) VisitDiscreteRangeMode(n *ast.DiscreteRangeMode) any {
	return "[" + exprString(n.Lower) + ":" + exprString(n.Upper) + "] " + modeString(n.Discrete)
}
func (modePrinter) VisitModeName(n *ast.ModeName) any { return n.Name.Lexeme }
