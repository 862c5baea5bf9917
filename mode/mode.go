// Package mode implements Lya's type system: the primitive and composite
// modes, and the operator tables each mode publishes to decide which
// unary, binary and relational operators it admits.
package mode

import (
	"fmt"

	"lya/token"
)

// Tag identifies the shape of a mode without needing a full type switch
// everywhere equality is checked.
type Tag int

const (
	Int Tag = iota
	Bool
	Char
	String
	Void
	Array
	Reference
	DiscreteRange
)

// Mode is the runtime (post-decoration) representation of a Lya type,
// distinct from ast.Mode which is the as-written syntax tree node. The
// decorator resolves every ast.Mode into one of these.
type Mode struct {
	Tag     Tag
	Element *Mode // Array: element mode; Reference: referenced mode; DiscreteRange: underlying discrete mode
	Lower   int   // Array, DiscreteRange: inclusive lower bound
	Upper   int   // Array, DiscreteRange: inclusive upper bound
	Length  int   // String: fixed length
}

var (
	IntMode  = &Mode{Tag: Int}
	BoolMode = &Mode{Tag: Bool}
	CharMode = &Mode{Tag: Char}
	VoidMode = &Mode{Tag: Void}
)

func NewStringMode(length int) *Mode { return &Mode{Tag: String, Length: length} }
func NewArrayMode(lower, upper int, element *Mode) *Mode {
	return &Mode{Tag: Array, Lower: lower, Upper: upper, Element: element}
}
func NewReferenceMode(referenced *Mode) *Mode { return &Mode{Tag: Reference, Element: referenced} }
func NewDiscreteRangeMode(lower, upper int, underlying *Mode) *Mode {
	return &Mode{Tag: DiscreteRange, Lower: lower, Upper: upper, Element: underlying}
}

func (m *Mode) String() string {
	switch m.Tag {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case String:
		return fmt.Sprintf("chars[%d]", m.Length)
	case Void:
		return "void"
	case Array:
		return fmt.Sprintf("array[%d:%d] %s", m.Lower, m.Upper, m.Element)
	case Reference:
		return fmt.Sprintf("ref %s", m.Element)
	case DiscreteRange:
		return fmt.Sprintf("[%d:%d] %s", m.Lower, m.Upper, m.Element)
	}
	return "?"
}

// Equal reports structural equality between two modes, following
// reference/array component modes recursively.
func Equal(a, b *Mode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case Array:
		return a.Lower == b.Lower && a.Upper == b.Upper && Equal(a.Element, b.Element)
	case Reference:
		return Equal(a.Element, b.Element)
	case String:
		return a.Length == b.Length
	case DiscreteRange:
		return a.Lower == b.Lower && a.Upper == b.Upper && Equal(a.Element, b.Element)
	}
	return true
}

// Slots is the number of VM frame slots a value of mode m occupies when
// declared as a local: an array lays its elements out inline, one slot
// each, directly following the variable's own base slot; every other
// mode (including chars, represented as a single Go string value) fits
// in one slot.
func Slots(m *Mode) int {
	if m == nil {
		return 1
	}
	if m.Tag == Array {
		return m.Upper - m.Lower + 1
	}
	return 1
}

// Discrete reports whether a mode is valid as a loop counter / array index
// mode: int, bool, char, or a discrete range over one of those.
func (m *Mode) Discrete() bool {
	switch m.Tag {
	case Int, Bool, Char:
		return true
	case DiscreteRange:
		return m.Element.Discrete()
	}
	return false
}

// unaryTable lists, per mode Tag, the unary operator tokens that mode
// admits, per spec.md's operator-compatibility table.
var unaryTable = map[Tag]map[token.Kind]bool{
	Int:  {token.MINUS: true, token.ABS: true},
	Bool: {token.BANG: true},
}

// UnaryAllowed reports whether operator op may be applied monadically to a
// value of mode m.
func UnaryAllowed(m *Mode, op token.Kind) bool {
	if m == nil {
		return false
	}
	return unaryTable[m.Tag][op]
}

// binaryTable lists the dyadic arithmetic/string operators each mode
// admits between two operands of that mode.
var binaryTable = map[Tag]map[token.Kind]bool{
	Int:    {token.PLUS: true, token.MINUS: true, token.STAR: true, token.SLASH: true, token.PERCENT: true},
	String: {token.PLUS: true},
}

// BinaryAllowed reports whether operator op may combine two operands of
// mode m.
func BinaryAllowed(m *Mode, op token.Kind) bool {
	if m == nil {
		return false
	}
	return binaryTable[m.Tag][op]
}

// relationalTable lists the relational/equality operators each mode
// admits.
var relationalTable = map[Tag]map[token.Kind]bool{
	Int:    {token.LESS: true, token.LESS_EQUAL: true, token.GREATER: true, token.GREATER_EQUAL: true, token.EQUAL: true, token.NOT_EQUAL: true},
	Char:   {token.LESS: true, token.LESS_EQUAL: true, token.GREATER: true, token.GREATER_EQUAL: true, token.EQUAL: true, token.NOT_EQUAL: true},
	Bool:   {token.EQUAL: true, token.NOT_EQUAL: true, token.AND: true, token.OR: true},
	String: {token.EQUAL: true, token.NOT_EQUAL: true},
}

// RelationalAllowed reports whether operator op may relate two operands of
// mode m.
func RelationalAllowed(m *Mode, op token.Kind) bool {
	if m == nil {
		return false
	}
	return relationalTable[m.Tag][op]
}

// closedDyadicTable lists the operators admitted by "op=" compound
// assignment, a subset of the binary table restricted to modes that
// support in-place update.
var closedDyadicTable = map[Tag]map[token.Kind]bool{
	Int:    {token.PLUS_ASSIGN: true, token.MINUS_ASSIGN: true, token.STAR_ASSIGN: true, token.SLASH_ASSIGN: true, token.PERCENT_ASSIGN: true},
	String: {token.PLUS_ASSIGN: true},
}

// ClosedDyadicAllowed reports whether compound-assignment operator op
// applies to mode m.
func ClosedDyadicAllowed(m *Mode, op token.Kind) bool {
	if m == nil {
		return false
	}
	return closedDyadicTable[m.Tag][op]
}
