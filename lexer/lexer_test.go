package lexer

import (
	"testing"

	"lya/token"
)

func TestScanKeywordsAndOperators(t *testing.T) {
	tokens, err := New(`dcl a,b int; a+=1; if a<=b then print(a); fi;`).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []token.Kind{
		token.DCL, token.IDENTIFIER, token.COMMA, token.IDENTIFIER, token.INT, token.SEMICOLON,
		token.IDENTIFIER, token.PLUS_ASSIGN, token.INT_LITERAL, token.SEMICOLON,
		token.IF, token.IDENTIFIER, token.LESS_EQUAL, token.IDENTIFIER, token.THEN,
		token.PRINT, token.LPAREN, token.IDENTIFIER, token.RPAREN, token.SEMICOLON,
		token.FI, token.SEMICOLON, token.EOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, tokens[i].Kind, k)
		}
	}
}

func TestScanIntegerLiteralValue(t *testing.T) {
	tokens, err := New("42").Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if tokens[0].Literal != int64(42) {
		t.Errorf("Literal = %v, want int64(42)", tokens[0].Literal)
	}
}

func TestScanStringLiteralTranslatesNewlineEscape(t *testing.T) {
	tokens, err := New(`"hi\nthere"`).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if tokens[0].Literal != "hi\nthere" {
		t.Errorf("Literal = %q, want %q", tokens[0].Literal, "hi\nthere")
	}
}

func TestScanCharLiteral(t *testing.T) {
	tokens, err := New(`'x'`).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if tokens[0].Kind != token.CHAR_LITERAL || tokens[0].Literal != 'x' {
		t.Errorf("got %v %v, want CHAR_LITERAL 'x'", tokens[0].Kind, tokens[0].Literal)
	}
}

func TestScanUnclosedStringIsAnError(t *testing.T) {
	if _, err := New(`"unterminated`).Scan(); err == nil {
		t.Error("expected an error for an unclosed string literal")
	}
}

func TestScanUnknownCharacterIsAnError(t *testing.T) {
	if _, err := New("@").Scan(); err == nil {
		t.Error("expected an error for an unrecognised character")
	}
}

func TestScanSkipsCommentsToEndOfLine(t *testing.T) {
	tokens, err := New("dcl a int; # this is a comment\nprint(a);").Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	for _, tok := range tokens {
		if tok.Kind == token.IDENTIFIER && tok.Lexeme == "this" {
			t.Fatal("comment text should not be tokenized")
		}
	}
}
