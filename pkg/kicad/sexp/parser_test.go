package sexp

import (
	"errors"
	"testing"
)

func TestParseTree(t *testing.T) {
	root, err := Parse(`(footprint "R_0603" (layer "F.Cu") (at 1.5 -2))`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	list, ok := root.(*List)
	if !ok {
		t.Fatalf("root is %T, want *List", root)
	}
	if list.Tag() != "footprint" {
		t.Errorf("root tag = %q, want footprint", list.Tag())
	}
	if list.Len() != 4 {
		t.Fatalf("root has %d children, want 4", list.Len())
	}

	name, ok := list.Get(1).(Atom)
	if !ok || name.Kind != AtomString || name.Text != "R_0603" {
		t.Errorf("child 1 = %#v, want string atom R_0603", list.Get(1))
	}

	at, ok := list.Get(3).(*List)
	if !ok || at.Tag() != "at" {
		t.Fatalf("child 3 = %#v, want (at ...)", list.Get(3))
	}
	x, ok := at.Get(1).(Atom)
	if !ok || x.Kind != AtomNumber || x.Text != "1.5" {
		t.Errorf("at x = %#v, want number atom 1.5", at.Get(1))
	}
	y, ok := at.Get(2).(Atom)
	if !ok || y.Kind != AtomNumber || y.Text != "-2" {
		t.Errorf("at y = %#v, want number atom -2", at.Get(2))
	}
}

func TestParseDeepNesting(t *testing.T) {
	input := ""
	const depth = 500
	for i := 0; i < depth; i++ {
		input += "(a "
	}
	input += "x"
	for i := 0; i < depth; i++ {
		input += ")"
	}

	root, err := Parse(input)
	if err != nil {
		t.Fatalf("deep nesting rejected: %v", err)
	}

	n := root
	for i := 0; i < depth-1; i++ {
		list, ok := n.(*List)
		if !ok || list.Len() != 2 {
			t.Fatalf("level %d: unexpected shape %#v", i, n)
		}
		n = list.Get(1)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"only whitespace", "   \n"},
		{"unclosed list", "(footprint (pad"},
		{"stray close", ")"},
		{"close inside list", "(a ) )"},
		{"trailing tokens", "(a b) extra"},
		{"two roots", "(a) (b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("got %T (%v), want *ParseError", err, err)
			}
			if parseErr.Expected == "" || parseErr.Found == "" {
				t.Errorf("error lacks expected/found description: %v", parseErr)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("(a b) junk")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if parseErr.Pos.Offset != 6 {
		t.Errorf("offset = %d, want 6", parseErr.Pos.Offset)
	}
	if parseErr.Found != `atom "junk"` {
		t.Errorf("found = %q", parseErr.Found)
	}
}

func TestParsePassesThroughLexError(t *testing.T) {
	_, err := Parse(`(descr "unterminated`)
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("got %T (%v), want *LexError", err, err)
	}
}

func TestClassifyAtom(t *testing.T) {
	tests := []struct {
		text string
		want AtomKind
	}{
		{"0", AtomNumber},
		{"-1.5", AtomNumber},
		{"+0.25", AtomNumber},
		{"20240108", AtomNumber},
		{"thru_hole", AtomSymbol},
		{"F.Cu", AtomSymbol},
		{"1.2.3", AtomSymbol},
		{"1e5", AtomSymbol},
		{"-", AtomSymbol},
		{".", AtomSymbol},
	}
	for _, tt := range tests {
		if got := classifyAtom(tt.text); got != tt.want {
			t.Errorf("classifyAtom(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
