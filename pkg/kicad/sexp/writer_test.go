package sexp

import "testing"

func TestWriteFlatList(t *testing.T) {
	n := NewList(Sym("at"), Num(FromFloat(1.5)), Num(FromInt(-2)))
	if got := Write(n); got != "(at 1.5 -2)" {
		t.Errorf("got %q", got)
	}
}

func TestWriteNested(t *testing.T) {
	n := NewList(
		Sym("fp_line"),
		NewList(Sym("start"), Num(FromInt(0)), Num(FromInt(0))),
		NewList(Sym("end"), Num(FromInt(1)), Num(FromInt(1))),
		NewList(Sym("layer"), Str("F.Cu")),
	)

	want := "(fp_line\n" +
		"\t(start 0 0)\n" +
		"\t(end 1 1)\n" +
		"\t(layer \"F.Cu\")\n" +
		")"
	if got := Write(n); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteLeadingAtoms(t *testing.T) {
	n := NewList(
		Sym("pad"), Str("1"), Sym("smd"), Sym("rect"),
		NewList(Sym("at"), Num(FromInt(0)), Num(FromInt(0))),
	)

	want := "(pad \"1\" smd rect\n" +
		"\t(at 0 0)\n" +
		")"
	if got := Write(n); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteStringEscapes(t *testing.T) {
	n := NewList(Sym("descr"), Str(`say "hi"`+"\n"+`back\slash`))
	want := `(descr "say \"hi\"\nback\\slash")`
	if got := Write(n); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteParseStable(t *testing.T) {
	const input = `(footprint "X" (layer "F.Cu") (pad "1" smd rect (at 0.5 0) (size 1 1) (layers "F.Cu")))`

	root, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	once := Write(root)

	again, err := Parse(once)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	twice := Write(again)

	if once != twice {
		t.Errorf("write not stable:\n%s\n---\n%s", once, twice)
	}
}
