// Package astprint renders a Lya AST as indented JSON, the same
// map-building visitor shape as the teacher's parser/printer.go, used by
// the CLI's -d debug dump to show the tree both before and after
// decoration (the Decoration fields are simply zero-valued the first
// time around).
package astprint

import (
	"encoding/json"

	"lya/ast"
)

// Dump renders every top-level statement of program as indented JSON.
func Dump(program *ast.Program) string {
	p := printer{}
	stmts := make([]any, 0, len(program.Statements))
	for _, s := range program.Statements {
		stmts = append(stmts, s.Accept(p))
	}
	out, err := json.MarshalIndent(map[string]any{"program": stmts}, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(out)
}

type printer struct{}

// decoration renders a node's resolved mode/value once decoration has
// run, or nil beforehand — a node with neither a mode nor a value yet
// (every node of the undecorated dump) gets no "decoration" key at all.
func decoration(n ast.Annotated) map[string]any {
	d := n.Decorate()
	if d.Mode == nil && d.Value == nil {
		return nil
	}
	m := map[string]any{}
	if d.Mode != nil {
		m["mode"] = d.Mode.String()
	}
	if d.Value != nil {
		m["value"] = d.Value
	}
	return m
}

func modeString(m ast.Mode) string {
	if m == nil {
		return ""
	}
	return m.Accept(modePrinter{}).(string)
}
