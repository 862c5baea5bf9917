package ast

import "lya/token"

// IntegerMode is the "int" primitive mode.
type IntegerMode struct {
	line int
}

func NewIntegerMode(line int) *IntegerMode { return &IntegerMode{line: line} }
func (n *IntegerMode) Line() int           { return n.line }
func (n *IntegerMode) modeNode()           {}
func (n *IntegerMode) Accept(v ModeVisitor) any {
	return v.VisitIntegerMode(n)
}

// BooleanMode is the "bool" primitive mode.
type BooleanMode struct {
	line int
}

func NewBooleanMode(line int) *BooleanMode { return &BooleanMode{line: line} }
func (n *BooleanMode) Line() int           { return n.line }
func (n *BooleanMode) modeNode()           {}
func (n *BooleanMode) Accept(v ModeVisitor) any {
	return v.VisitBooleanMode(n)
}

// CharacterMode is the "char" primitive mode.
type CharacterMode struct {
	line int
}

func NewCharacterMode(line int) *CharacterMode { return &CharacterMode{line: line} }
func (n *CharacterMode) Line() int             { return n.line }
func (n *CharacterMode) modeNode()             {}
func (n *CharacterMode) Accept(v ModeVisitor) any {
	return v.VisitCharacterMode(n)
}

// StringMode is "chars[N]", a fixed-length character string.
type StringMode struct {
	Length Expression
	line   int
}

func NewStringMode(length Expression, line int) *StringMode {
	return &StringMode{Length: length, line: line}
}
func (n *StringMode) Line() int { return n.line }
func (n *StringMode) modeNode() {}
func (n *StringMode) Accept(v ModeVisitor) any {
	return v.VisitStringMode(n)
}

// ArrayMode is "array[lo:hi] mode", a fixed-bounds composite mode.
type ArrayMode struct {
	Lower   Expression
	Upper   Expression
	Element Mode
	line    int
}

func NewArrayMode(lower, upper Expression, element Mode, line int) *ArrayMode {
	return &ArrayMode{Lower: lower, Upper: upper, Element: element, line: line}
}
func (n *ArrayMode) Line() int { return n.line }
func (n *ArrayMode) modeNode() {}
func (n *ArrayMode) Accept(v ModeVisitor) any {
	return v.VisitArrayMode(n)
}

// ReferenceMode is "ref mode", the mode of a value that holds a reference
// to a location of the referenced mode.
type ReferenceMode struct {
	Referenced Mode
	line       int
}

func NewReferenceMode(referenced Mode, line int) *ReferenceMode {
	return &ReferenceMode{Referenced: referenced, line: line}
}
func (n *ReferenceMode) Line() int { return n.line }
func (n *ReferenceMode) modeNode() {}
func (n *ReferenceMode) Accept(v ModeVisitor) any {
	return v.VisitReferenceMode(n)
}

// DiscreteRangeMode restricts a discrete mode to a literal [lower:upper]
// range, used for loop counters and range-checked declarations.
type DiscreteRangeMode struct {
	Discrete Mode
	Lower    Expression
	Upper    Expression
	line     int
}

func NewDiscreteRangeMode(discrete Mode, lower, upper Expression, line int) *DiscreteRangeMode {
	return &DiscreteRangeMode{Discrete: discrete, Lower: lower, Upper: upper, line: line}
}
func (n *DiscreteRangeMode) Line() int { return n.line }
func (n *DiscreteRangeMode) modeNode() {}
func (n *DiscreteRangeMode) Accept(v ModeVisitor) any {
	return v.VisitDiscreteRangeMode(n)
}

// ModeName is a reference to a mode declared by a "mode" (alias) statement.
// It is resolved to its underlying Mode during decoration and never
// re-decorated once bound, per the original Lya-Compiler's alias handling.
type ModeName struct {
	Name     token.Token
	Resolved Mode
	line     int
}

func NewModeName(name token.Token, line int) *ModeName { return &ModeName{Name: name, line: line} }
func (n *ModeName) Line() int                          { return n.line }
func (n *ModeName) modeNode()                          {}
func (n *ModeName) Accept(v ModeVisitor) any {
	return v.VisitModeName(n)
}
