package scope

import (
	"testing"

	"lya/mode"
)

func TestDeclareAndLookup(t *testing.T) {
	tbl := NewTable()
	sym := &Symbol{Name: "x", Mode: mode.IntMode}
	if !tbl.Current().Declare(sym) {
		t.Fatal("expected first declaration of x to succeed")
	}
	if tbl.Current().Declare(&Symbol{Name: "x", Mode: mode.IntMode}) {
		t.Error("expected redeclaration of x in the same scope to fail")
	}

	got, depth, ok := tbl.Lookup("x")
	if !ok || got != sym || depth != 0 {
		t.Errorf("Lookup(x) = %v, %d, %v; want %v, 0, true", got, depth, ok, sym)
	}

	if _, _, ok := tbl.Lookup("y"); ok {
		t.Error("expected lookup of undeclared y to fail")
	}
}

func TestDeclareAdvancesSlotsByModeSize(t *testing.T) {
	tbl := NewTable()
	s := tbl.Current()

	a := &Symbol{Name: "a", Mode: mode.IntMode}
	s.Declare(a)
	if a.Offset != 0 {
		t.Errorf("a.Offset = %d, want 0", a.Offset)
	}

	b := &Symbol{Name: "b", Mode: mode.NewArrayMode(1, 5, mode.IntMode)}
	s.Declare(b)
	if b.Offset != 1 {
		t.Errorf("b.Offset = %d, want 1", b.Offset)
	}

	c := &Symbol{Name: "c", Mode: mode.IntMode}
	s.Declare(c)
	if c.Offset != 6 {
		t.Errorf("c.Offset = %d, want 6 (after a 5-element array starting at slot 1)", c.Offset)
	}
	if s.FrameSize() != 7 {
		t.Errorf("FrameSize() = %d, want 7", s.FrameSize())
	}
}

func TestPushFrameStartsFreshOffsets(t *testing.T) {
	tbl := NewTable()
	tbl.Current().Declare(&Symbol{Name: "g", Mode: mode.IntMode})

	frame := tbl.PushFrame()
	if frame.Depth != 1 {
		t.Errorf("frame.Depth = %d, want 1", frame.Depth)
	}
	p := &Symbol{Name: "p", Mode: mode.IntMode}
	frame.Declare(p)
	if p.Offset != 0 {
		t.Errorf("p.Offset = %d, want 0 in a fresh frame", p.Offset)
	}

	tbl.Pop()
	if tbl.Current().Depth != 0 {
		t.Error("expected Pop to return to the global frame")
	}
}

func TestPushBlockSharesFrameDepthAndPropagatesOffset(t *testing.T) {
	tbl := NewTable()
	tbl.Current().Declare(&Symbol{Name: "g", Mode: mode.IntMode})

	block := tbl.Push()
	if block.Depth != 0 {
		t.Errorf("block.Depth = %d, want 0 (shares enclosing frame)", block.Depth)
	}
	block.Declare(&Symbol{Name: "local", Mode: mode.IntMode})
	if block.FrameSize() != 2 {
		t.Errorf("block.FrameSize() = %d, want 2", block.FrameSize())
	}

	tbl.Pop()
	if tbl.Current().FrameSize() != 2 {
		t.Errorf("after Pop, outer FrameSize() = %d, want 2 (block's slot usage propagates up)", tbl.Current().FrameSize())
	}
}

func TestDeclareAtUsesExplicitOffset(t *testing.T) {
	s := NewTable().Current()
	p := &Symbol{Name: "param", Mode: mode.IntMode, IsParameter: true}
	if !s.DeclareAt(p, -3) {
		t.Fatal("expected DeclareAt to succeed")
	}
	if p.Offset != -3 {
		t.Errorf("p.Offset = %d, want -3", p.Offset)
	}
	if s.DeclareAt(&Symbol{Name: "param"}, -4) {
		t.Error("expected redeclaration at a different offset to still fail")
	}
}

func TestLabels(t *testing.T) {
	tbl := NewTable()
	if !tbl.Current().DeclareLabel("outer") {
		t.Fatal("expected first label declaration to succeed")
	}
	if tbl.Current().DeclareLabel("outer") {
		t.Error("expected redeclaring the same label to fail")
	}

	block := tbl.Push()
	if !tbl.LookupLabel("outer") {
		t.Error("expected label lookup to see an enclosing scope's label")
	}
	block.DeclareLabel("inner")
	if !tbl.LookupLabel("inner") {
		t.Error("expected label lookup to find a label declared in the current scope")
	}

	tbl.Pop()
	if tbl.LookupLabel("inner") {
		t.Error("expected inner's label to go out of scope after Pop")
	}
}
