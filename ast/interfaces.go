// Package ast defines the Lya abstract syntax tree: tagged node variants for
// expressions, locations, modes and statements, dispatched through the
// visitor pattern so that the semantic decorator and the code generator can
// each walk the tree without the node types knowing about either.
package ast

// Expression is any node that produces a value: literals, locations,
// binary/unary operators, conditional expressions and references.
type Expression interface {
	Node
	Accept(v ExpressionVisitor) any
}

// Location is any node that denotes an addressable place: a plain
// identifier, an array element/slice (also used for strings), or a
// dereferenced reference.
type Location interface {
	Node
	Accept(v LocationVisitor) any
	locationNode()
}

// Mode is any node that denotes a type: primitive modes, array modes,
// reference modes, discrete-range modes and mode names (aliases).
type Mode interface {
	Node
	Accept(v ModeVisitor) any
	modeNode()
}

// Statement is any node that performs an action rather than producing a
// value: assignments, control flow, procedure calls, declarations.
type Statement interface {
	Node
	Accept(v StatementVisitor) any
}

// Node is embedded by every AST node so the decorator can attach a source
// line for diagnostics without every visitor needing a type switch for it.
type Node interface {
	Line() int
}

// ExpressionVisitor dispatches over every Expression variant.
type ExpressionVisitor interface {
	VisitIntegerLiteral(n *IntegerLiteral) any
	VisitBooleanLiteral(n *BooleanLiteral) any
	VisitCharacterLiteral(n *CharacterLiteral) any
	VisitStringLiteral(n *StringLiteral) any
	VisitEmptyLiteral(n *EmptyLiteral) any
	VisitLocationExpression(n *LocationExpression) any
	VisitReferencedLocation(n *ReferencedLocation) any
	VisitUnaryExpression(n *UnaryExpression) any
	VisitBinaryExpression(n *BinaryExpression) any
	VisitRelMemExpression(n *RelMemExpression) any
	VisitConditionalExpression(n *ConditionalExpression) any
	VisitProcedureCallExpression(n *ProcedureCall) any
	VisitBuiltinCallExpression(n *BuiltinCall) any
}

// LocationVisitor dispatches over every Location variant.
type LocationVisitor interface {
	VisitIdentifierLocation(n *IdentifierLocation) any
	VisitArrayElement(n *ArrayElement) any
	VisitArraySlice(n *ArraySlice) any
	VisitDereferencedReference(n *DereferencedReference) any
}

// ModeVisitor dispatches over every Mode variant.
type ModeVisitor interface {
	VisitIntegerMode(n *IntegerMode) any
	VisitBooleanMode(n *BooleanMode) any
	VisitCharacterMode(n *CharacterMode) any
	VisitStringMode(n *StringMode) any
	VisitArrayMode(n *ArrayMode) any
	VisitReferenceMode(n *ReferenceMode) any
	VisitDiscreteRangeMode(n *DiscreteRangeMode) any
	VisitModeName(n *ModeName) any
}

// StatementVisitor dispatches over every Statement variant.
type StatementVisitor interface {
	VisitDeclarationStatement(n *DeclarationStatement) any
	VisitSynonymStatement(n *SynonymStatement) any
	VisitNewmodeStatement(n *NewmodeStatement) any
	VisitProcedureStatement(n *ProcedureStatement) any
	VisitAssignmentAction(n *AssignmentAction) any
	VisitIfAction(n *IfAction) any
	VisitDoAction(n *DoAction) any
	VisitExitAction(n *ExitAction) any
	VisitReturnAction(n *ReturnAction) any
	VisitResultAction(n *ResultAction) any
	VisitProcedureCallStatement(n *ProcedureCallStatement) any
	VisitBuiltinCallStatement(n *BuiltinCallStatement) any
	VisitLabelledStatement(n *LabelledStatement) any
}

// Program is the root of a parsed compilation unit.
type Program struct {
	Statements []Statement
	line       int

	// GlobalSize is the number of frame slots the top-level scope (display
	// level 0) uses, filled in by the decorator and consumed by codegen's
	// top-level alc right after stp.
	GlobalSize int
}

func NewProgram(stmts []Statement, line int) *Program { return &Program{Statements: stmts, line: line} }
func (p *Program) Line() int                          { return p.line }
