package mode

import (
	"testing"

	"lya/token"
)

func TestSlots(t *testing.T) {
	tests := []struct {
		name string
		m    *Mode
		want int
	}{
		{"nil", nil, 1},
		{"int", IntMode, 1},
		{"char", CharMode, 1},
		{"string", NewStringMode(10), 1},
		{"array 1..10", NewArrayMode(1, 10, IntMode), 10},
		{"array -3..3", NewArrayMode(-3, 3, IntMode), 7},
		{"reference", NewReferenceMode(IntMode), 1},
	}
	for _, tt := range tests {
		if got := Slots(tt.m); got != tt.want {
			t.Errorf("Slots(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	a := NewArrayMode(1, 5, IntMode)
	b := NewArrayMode(1, 5, IntMode)
	c := NewArrayMode(1, 6, IntMode)
	d := NewArrayMode(1, 5, CharMode)

	if !Equal(a, b) {
		t.Error("expected equal array modes to compare equal")
	}
	if Equal(a, c) {
		t.Error("expected differing bounds to compare unequal")
	}
	if Equal(a, d) {
		t.Error("expected differing element modes to compare unequal")
	}
	if !Equal(nil, nil) {
		t.Error("expected nil == nil")
	}
	if Equal(a, nil) {
		t.Error("expected non-nil != nil")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		m    *Mode
		want string
	}{
		{IntMode, "int"},
		{BoolMode, "bool"},
		{CharMode, "char"},
		{NewStringMode(8), "chars[8]"},
		{NewArrayMode(1, 10, IntMode), "array[1:10] int"},
		{NewReferenceMode(IntMode), "ref int"},
		{NewDiscreteRangeMode(1, 3, IntMode), "[1:3] int"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDiscrete(t *testing.T) {
	if !IntMode.Discrete() {
		t.Error("int should be discrete")
	}
	if !BoolMode.Discrete() {
		t.Error("bool should be discrete")
	}
	if !CharMode.Discrete() {
		t.Error("char should be discrete")
	}
	if NewStringMode(1).Discrete() {
		t.Error("chars[n] should not be discrete")
	}
	if !NewDiscreteRangeMode(1, 10, IntMode).Discrete() {
		t.Error("a discrete range over int should be discrete")
	}
}

func TestOperatorTables(t *testing.T) {
	if !BinaryAllowed(IntMode, token.PLUS) {
		t.Error("int should admit +")
	}
	if !BinaryAllowed(NewStringMode(5), token.PLUS) {
		t.Error("chars[n] should admit + (concatenation)")
	}
	if BinaryAllowed(BoolMode, token.PLUS) {
		t.Error("bool should not admit +")
	}
	if !UnaryAllowed(BoolMode, token.BANG) {
		t.Error("bool should admit !")
	}
	if UnaryAllowed(IntMode, token.BANG) {
		t.Error("int should not admit !")
	}
	if !RelationalAllowed(CharMode, token.LESS) {
		t.Error("char should admit <")
	}
	if !ClosedDyadicAllowed(IntMode, token.PLUS_ASSIGN) {
		t.Error("int should admit +=")
	}
	if ClosedDyadicAllowed(BoolMode, token.PLUS_ASSIGN) {
		t.Error("bool should not admit +=")
	}
	if BinaryAllowed(nil, token.PLUS) || UnaryAllowed(nil, token.MINUS) || RelationalAllowed(nil, token.LESS) {
		t.Error("nil mode should admit no operators")
	}
}
