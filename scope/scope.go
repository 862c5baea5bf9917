// Package scope implements the lexical scope table the semantic decorator
// uses to resolve identifiers and labels, and the per-scope slot offset
// bookkeeping the code generator relies on to lay out VM frames.
package scope

import (
	"lya/ast"
	"lya/mode"
)

// Kind distinguishes what a declared name denotes: an ordinary
// variable/parameter, a synonym (compile-time constant), a procedure, or a
// label.
// Synonyms and mode aliases share the variable namespace in the original
// language, but labels are deliberately kept separate (spec.md §3's
// invariant that label resolution never shadows a variable of the same
// name).
type Kind int

const (
	KindVariable Kind = iota
	KindSynonym
	KindProcedure
	KindLabel
)

// Symbol is one entry of a scope: a declared name together with its
// resolved mode, its frame-relative offset, and (for synonyms) its folded
// constant value.
type Symbol struct {
	Name        string
	Kind        Kind
	Mode        *mode.Mode
	Offset      int
	IsParameter bool
	IsLoc       bool
	ConstValue  any

	// Procedure is attached to function-kind symbols so callers can check
	// arity/parameter modes against the actual declaration.
	Procedure *ast.ProcedureStatement
}

// Scope is a single lexical level: a flat map of symbols plus the running
// offset counter code generation uses to place the next local in the
// frame.
//
// Depth is the *display* level this scope's declarations live at: the
// absolute index the code generator bakes into every ldv/stv pair and the
// one enf/ret restore. Only a scope opened with PushFrame (a procedure or
// the program body) gets a new display level and a fresh offset counter —
// if/elsif/while/do bodies open a block scope that shares its enclosing
// frame's Depth and continues its offset counter, because codegen never
// emits a matching enf for them. Block-scope declarations are therefore
// still laid out in the one runtime frame their lexical parent occupies.
type Scope struct {
	Parent   *Scope
	Depth    int
	IsFrame  bool
	symbols  map[string]*Symbol
	labels   map[string]bool
	nextSlot int
}

// Table is the stack of active scopes, mirroring the display register's
// nesting: Table.Current() is always the innermost scope.
type Table struct {
	current *Scope
}

// NewTable creates a scope table seeded with the global (depth 0) scope,
// which occupies display[0] for the lifetime of the run.
func NewTable() *Table {
	return &Table{current: &Scope{Depth: 0, IsFrame: true, symbols: map[string]*Symbol{}, labels: map[string]bool{}}}
}

// Push opens a block scope (if/elsif/else/while/do body): a fresh
// shadowing namespace that shares its parent's display level and offset
// counter, since no enf is ever emitted for it.
func (t *Table) Push() *Scope {
	s := &Scope{Parent: t.current, Depth: t.current.Depth, symbols: map[string]*Symbol{}, labels: map[string]bool{}, nextSlot: t.current.nextSlot}
	t.current = s
	return s
}

// PushFrame opens a procedure body scope: a new display level with its
// own offset counter starting at 0, matching the fresh runtime frame
// codegen's enf/ret pair establishes for it.
func (t *Table) PushFrame() *Scope {
	s := &Scope{Parent: t.current, Depth: t.current.Depth + 1, IsFrame: true, symbols: map[string]*Symbol{}, labels: map[string]bool{}}
	t.current = s
	return s
}

// Pop leaves the current scope, returning to its parent. Leaving a block
// scope propagates its offset counter upward so later siblings in the
// same frame never reuse a slot a closed block already claimed.
func (t *Table) Pop() {
	if t.current.Parent == nil {
		return
	}
	if !t.current.IsFrame && t.current.nextSlot > t.current.Parent.nextSlot {
		t.current.Parent.nextSlot = t.current.nextSlot
	}
	t.current = t.current.Parent
}

// Current returns the innermost active scope.
func (t *Table) Current() *Scope { return t.current }

// Declare adds a new symbol to the current scope. It returns false if a
// symbol of the same name is already declared in this (not an enclosing)
// scope, which the caller reports as a redeclaration error.
func (s *Scope) Declare(sym *Symbol) bool {
	if _, exists := s.symbols[sym.Name]; exists {
		return false
	}
	sym.Offset = s.nextSlot
	s.nextSlot += mode.Slots(sym.Mode)
	s.symbols[sym.Name] = sym
	return true
}

// DeclareAt adds a new symbol at an explicit offset (used for parameters,
// which occupy negative offsets below the frame base per spec.md §4.4).
func (s *Scope) DeclareAt(sym *Symbol, offset int) bool {
	if _, exists := s.symbols[sym.Name]; exists {
		return false
	}
	sym.Offset = offset
	s.symbols[sym.Name] = sym
	return true
}

// FrameSize is the number of local slots allocated in this scope so far.
func (s *Scope) FrameSize() int { return s.nextSlot }

// DeclareLabel records a label name in this scope's label namespace.
// Returns false if the label is already declared at this depth.
func (s *Scope) DeclareLabel(name string) bool {
	if s.labels[name] {
		return false
	}
	s.labels[name] = true
	return true
}

// Lookup resolves name against the current scope and its ancestors,
// returning the symbol and the absolute display depth of the frame that
// owns it — the value codegen emits directly as an ldv/stv/ldr scope
// operand, since block scopes share their frame's Depth this is already
// the right display index with no further adjustment at the use site.
func (t *Table) Lookup(name string) (*Symbol, int, bool) {
	for s := t.current; s != nil; s = s.Parent {
		if sym, ok := s.symbols[name]; ok {
			return sym, s.Depth, true
		}
	}
	return nil, 0, false
}

// LookupLabel searches the label namespace from the current scope
// outward, used to validate "exit label;" targets.
func (t *Table) LookupLabel(name string) bool {
	for s := t.current; s != nil; s = s.Parent {
		if s.labels[name] {
			return true
		}
	}
	return false
}
