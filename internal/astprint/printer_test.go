package astprint_test

import (
	"encoding/json"
	"strings"
	"testing"

	"lya/internal/astprint"
	"lya/lexer"
	"lya/parser"
	"lya/semantic"
)

func TestDumpProducesValidJSON(t *testing.T) {
	tokens, err := lexer.New(`dcl a,b int; a=10; b=20; a=a+b-5; print(a);`).Scan()
	if err != nil {
		t.Fatalf("lexing: %v", err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}

	undecorated := astprint.Dump(program)
	var tree map[string]any
	if err := json.Unmarshal([]byte(undecorated), &tree); err != nil {
		t.Fatalf("undecorated dump is not valid JSON: %v\n%s", err, undecorated)
	}
	if strings.Contains(undecorated, `"decoration"`) {
		t.Error("undecorated dump should carry no decoration info yet")
	}

	if errs := semantic.New().Decorate(program); len(errs) != 0 {
		t.Fatalf("decorate: %v", errs)
	}

	decorated := astprint.Dump(program)
	if err := json.Unmarshal([]byte(decorated), &tree); err != nil {
		t.Fatalf("decorated dump is not valid JSON: %v\n%s", err, decorated)
	}
	if !strings.Contains(decorated, `"decoration"`) {
		t.Error("decorated dump should carry resolved mode/value info")
	}
}
