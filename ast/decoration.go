package ast

import "lya/mode"

// Decoration holds the mutable attributes the semantic analyser attaches to
// a node during decoration. Parser-produced nodes start with a zero
// Decoration; semantic.Decorate fills it in. codegen and vm never read a
// node's Decoration before semantic.Decorate has run over it.
//
// Mode is the resolved runtime mode (mode.Mode), never the as-written
// ast.Mode syntax node that produced it — that distinction is spec.md §3's
// raw_type vs. the parse tree's own mode syntax.
type Decoration struct {
	Mode        *mode.Mode // resolved mode of this node, nil until decorated
	Value       any        // folded compile-time constant, nil if not constant
	IsConstant  bool       // true once Value has been folded successfully
	Scope       int        // display depth of the enclosing frame
	Offset      int        // frame-relative slot offset, meaningful for locations
	HeapIndex   int        // index into the VM string heap, for string literals
	IsReference bool       // true if this location's mode is a reference mode
	AutoDeref   bool       // true for a "loc" parameter: transparently indirect through the address the caller passed, with no explicit "->" at the use site
	LowerBound  int        // resolved lower bound, for array-mode locations
	UpperBound  int        // resolved upper bound, for array-mode locations
}

// Decorated is embedded by every node that semantic analysis annotates.
type Decorated struct {
	Decoration
}

// Decorate returns a pointer to this node's Decoration so semantic.Decorate
// can fill it in without a type switch over every concrete node type.
func (d *Decorated) Decorate() *Decoration { return &d.Decoration }

// Annotated is implemented by every node embedding Decorated.
type Annotated interface {
	Decorate() *Decoration
}
