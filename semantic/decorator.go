// Package semantic implements Lya's decorator: identifier resolution, mode
// checking, constant folding, and the declaration-and-use rules spec.md §4.3
// and §7 describe. Decorate walks the whole program, accumulating every
// error it finds rather than stopping at the first one.
package semantic

import (
	"lya/ast"
	"lya/mode"
	"lya/scope"
)

// Decorator carries the mutable state of one decoration pass: the active
// scope table, the procedure-analysis parallel stack, the heap index
// counter for interned string literals, and the accumulated error list.
type Decorator struct {
	scopes     *scope.Table
	procedures scope.ProcedureStack
	modeAlias  map[string]*mode.Mode
	nextHeap   int
	errors     []error
}

// New creates a Decorator with a fresh global scope.
func New() *Decorator {
	return &Decorator{scopes: scope.NewTable(), modeAlias: map[string]*mode.Mode{}}
}

// Decorate annotates every node of program in place and returns the list of
// semantic errors found, empty if the program is well-formed.
func (d *Decorator) Decorate(program *ast.Program) []error {
	for _, stmt := range program.Statements {
		d.decorateStatement(stmt)
	}
	program.GlobalSize = d.scopes.Current().FrameSize()
	return d.errors
}

func (d *Decorator) errorf(kind Kind, line int, format string, args ...any) {
	d.errors = append(d.errors, newError(kind, line, format, args...))
}

// resolveMode turns a parsed ast.Mode into the runtime mode.Mode the rest
// of decoration, codegen and the VM operate on.
func (d *Decorator) resolveMode(m ast.Mode) *mode.Mode {
	if m == nil {
		return nil
	}
	switch n := m.(type) {
	case *ast.IntegerMode:
		return mode.IntMode
	case *ast.BooleanMode:
		return mode.BoolMode
	case *ast.CharacterMode:
		return mode.CharMode
	case *ast.StringMode:
		length := d.constantInt(n.Length)
		return mode.NewStringMode(length)
	case *ast.ArrayMode:
		lower := d.constantInt(n.Lower)
		upper := d.constantInt(n.Upper)
		elem := d.resolveMode(n.Element)
		return mode.NewArrayMode(lower, upper, elem)
	case *ast.ReferenceMode:
		return mode.NewReferenceMode(d.resolveMode(n.Referenced))
	case *ast.DiscreteRangeMode:
		lower := d.constantInt(n.Lower)
		upper := d.constantInt(n.Upper)
		return mode.NewDiscreteRangeMode(lower, upper, d.resolveMode(n.Discrete))
	case *ast.ModeName:
		if resolved, ok := d.modeAlias[n.Name.Lexeme]; ok {
			n.Resolved = n // leave the alias node as-is; resolution lives in modeAlias
			return resolved
		}
		d.errorf(UndeclaredIdentifier, n.Line(), "undeclared mode '%s'", n.Name.Lexeme)
		return mode.VoidMode
	}
	return mode.VoidMode
}

// constantInt evaluates a bound expression that must fold to a compile-time
// integer constant (array/string-mode bounds).
func (d *Decorator) constantInt(e ast.Expression) int {
	if e == nil {
		return 0
	}
	d.decorateExpression(e)
	dec := e.(ast.Annotated).Decorate()
	if !dec.IsConstant {
		d.errorf(ConstantFoldingError, e.Line(), "bound must be a compile-time constant")
		return 0
	}
	if v, ok := dec.Value.(int64); ok {
		return int(v)
	}
	return 0
}

// decorateExpression dispatches e through the visitor and returns its
// resolved mode; the node's own Decoration is also filled in as a side
// effect via Accept.
func (d *Decorator) decorateExpression(e ast.Expression) *mode.Mode {
	result := e.Accept(d)
	m, _ := result.(*mode.Mode)
	return m
}

func (d *Decorator) decorateLocation(l ast.Location) *mode.Mode {
	result := l.Accept(d)
	m, _ := result.(*mode.Mode)
	return m
}
