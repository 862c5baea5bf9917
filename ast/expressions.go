package ast

import "lya/token"

// IntegerLiteral is a literal integer value, e.g. "42".
type IntegerLiteral struct {
	Decorated
	Value int64
	line  int
}

func NewIntegerLiteral(value int64, line int) *IntegerLiteral {
	return &IntegerLiteral{Value: value, line: line}
}
func (n *IntegerLiteral) Line() int { return n.line }
func (n *IntegerLiteral) Accept(v ExpressionVisitor) any {
	return v.VisitIntegerLiteral(n)
}

// BooleanLiteral is "true" or "false".
type BooleanLiteral struct {
	Decorated
	Value bool
	line  int
}

func NewBooleanLiteral(value bool, line int) *BooleanLiteral {
	return &BooleanLiteral{Value: value, line: line}
}
func (n *BooleanLiteral) Line() int { return n.line }
func (n *BooleanLiteral) Accept(v ExpressionVisitor) any {
	return v.VisitBooleanLiteral(n)
}

// CharacterLiteral is a single-rune literal, e.g. 'a'.
type CharacterLiteral struct {
	Decorated
	Value rune
	line  int
}

func NewCharacterLiteral(value rune, line int) *CharacterLiteral {
	return &CharacterLiteral{Value: value, line: line}
}
func (n *CharacterLiteral) Line() int { return n.line }
func (n *CharacterLiteral) Accept(v ExpressionVisitor) any {
	return v.VisitCharacterLiteral(n)
}

// StringLiteral is a fixed-length character-string literal. Its heap index
// is assigned during decoration, when it is interned into the VM's
// immutable string heap.
type StringLiteral struct {
	Decorated
	Value string
	line  int
}

func NewStringLiteral(value string, line int) *StringLiteral {
	return &StringLiteral{Value: value, line: line}
}
func (n *StringLiteral) Line() int { return n.line }
func (n *StringLiteral) Accept(v ExpressionVisitor) any {
	return v.VisitStringLiteral(n)
}

// EmptyLiteral is the "null" literal, admissible only where a reference
// mode is expected.
type EmptyLiteral struct {
	Decorated
	line int
}

func NewEmptyLiteral(line int) *EmptyLiteral { return &EmptyLiteral{line: line} }
func (n *EmptyLiteral) Line() int            { return n.line }
func (n *EmptyLiteral) Accept(v ExpressionVisitor) any {
	return v.VisitEmptyLiteral(n)
}

// LocationExpression lifts a Location into expression position, i.e. reads
// the value currently held at that location.
type LocationExpression struct {
	Decorated
	Loc  Location
	line int
}

func NewLocationExpression(loc Location, line int) *LocationExpression {
	return &LocationExpression{Loc: loc, line: line}
}
func (n *LocationExpression) Line() int { return n.line }
func (n *LocationExpression) Accept(v ExpressionVisitor) any {
	return v.VisitLocationExpression(n)
}

// ReferencedLocation is "->loc": takes the reference to a location rather
// than reading its value.
type ReferencedLocation struct {
	Decorated
	Loc  Location
	line int
}

func NewReferencedLocation(loc Location, line int) *ReferencedLocation {
	return &ReferencedLocation{Loc: loc, line: line}
}
func (n *ReferencedLocation) Line() int { return n.line }
func (n *ReferencedLocation) Accept(v ExpressionVisitor) any {
	return v.VisitReferencedLocation(n)
}

// UnaryExpression is a monadic operator applied to an operand: "-x", "!b",
// "abs x".
type UnaryExpression struct {
	Decorated
	Operator token.Token
	Operand  Expression
	line     int
}

func NewUnaryExpression(op token.Token, operand Expression, line int) *UnaryExpression {
	return &UnaryExpression{Operator: op, Operand: operand, line: line}
}
func (n *UnaryExpression) Line() int { return n.line }
func (n *UnaryExpression) Accept(v ExpressionVisitor) any {
	return v.VisitUnaryExpression(n)
}

// BinaryExpression is a dyadic arithmetic/string operator: "a + b".
type BinaryExpression struct {
	Decorated
	Left     Expression
	Operator token.Token
	Right    Expression
	line     int
}

func NewBinaryExpression(left Expression, op token.Token, right Expression, line int) *BinaryExpression {
	return &BinaryExpression{Left: left, Operator: op, Right: right, line: line}
}
func (n *BinaryExpression) Line() int { return n.line }
func (n *BinaryExpression) Accept(v ExpressionVisitor) any {
	return v.VisitBinaryExpression(n)
}

// RelMemExpression is a relational or logical (&&, ||) comparison: "a < b".
type RelMemExpression struct {
	Decorated
	Left     Expression
	Operator token.Token
	Right    Expression
	line     int
}

func NewRelMemExpression(left Expression, op token.Token, right Expression, line int) *RelMemExpression {
	return &RelMemExpression{Left: left, Operator: op, Right: right, line: line}
}
func (n *RelMemExpression) Line() int { return n.line }
func (n *RelMemExpression) Accept(v ExpressionVisitor) any {
	return v.VisitRelMemExpression(n)
}

// ConditionalExpression is "if cond then e1 [elsif cond then ei]... else eN fi"
// used in expression position.
type ConditionalExpression struct {
	Decorated
	Condition  Expression
	Then       Expression
	ElsifConds []Expression
	ElsifThens []Expression
	Else       Expression
	line       int
}

func NewConditionalExpression(cond, then Expression, elsifConds, elsifThens []Expression, els Expression, line int) *ConditionalExpression {
	return &ConditionalExpression{Condition: cond, Then: then, ElsifConds: elsifConds, ElsifThens: elsifThens, Else: els, line: line}
}
func (n *ConditionalExpression) Line() int { return n.line }
func (n *ConditionalExpression) Accept(v ExpressionVisitor) any {
	return v.VisitConditionalExpression(n)
}

// ProcedureCall is a call used in expression position, i.e. the callee must
// have a non-void result spec.
type ProcedureCall struct {
	Decorated
	Name      token.Token
	Arguments []Expression
	line      int
}

func NewProcedureCall(name token.Token, args []Expression, line int) *ProcedureCall {
	return &ProcedureCall{Name: name, Arguments: args, line: line}
}
func (n *ProcedureCall) Line() int { return n.line }
func (n *ProcedureCall) Accept(v ExpressionVisitor) any {
	return v.VisitProcedureCallExpression(n)
}

// BuiltinCall invokes one of the predeclared builtins (abs, num, asc,
// upper, lower, length) in expression position.
type BuiltinCall struct {
	Decorated
	Name      token.Token
	Arguments []Expression
	line      int
}

func NewBuiltinCall(name token.Token, args []Expression, line int) *BuiltinCall {
	return &BuiltinCall{Name: name, Arguments: args, line: line}
}
func (n *BuiltinCall) Line() int { return n.line }
func (n *BuiltinCall) Accept(v ExpressionVisitor) any {
	return v.VisitBuiltinCallExpression(n)
}
