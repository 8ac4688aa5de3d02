package sexp

import "strings"

// Write renders a node tree in the canonical KiCad formatting style:
// tab indentation per nesting depth, lists of atoms on a single line,
// and lists containing sublists broken across lines with the closing
// paren on its own line. The output is a pure function of the tree, so
// repeated parse/write cycles are byte-stable.
func Write(n Node) string {
	var b strings.Builder
	writeNode(&b, n, 0)
	return b.String()
}

func writeNode(b *strings.Builder, n Node, depth int) {
	switch v := n.(type) {
	case Atom:
		writeAtom(b, v)

	case *List:
		if flatList(v) {
			writeFlat(b, v)
			return
		}

		b.WriteByte('(')
		// Leading atoms stay on the opening line: (pad "1" smd rect ...)
		i := 0
		for ; i < len(v.Children); i++ {
			a, ok := v.Children[i].(Atom)
			if !ok {
				break
			}
			if i > 0 {
				b.WriteByte(' ')
			}
			writeAtom(b, a)
		}
		for ; i < len(v.Children); i++ {
			b.WriteByte('\n')
			indent(b, depth+1)
			writeNode(b, v.Children[i], depth+1)
		}
		b.WriteByte('\n')
		indent(b, depth)
		b.WriteByte(')')
	}
}

// flatList reports whether a list renders on one line: true when no
// child is itself a list
func flatList(l *List) bool {
	for _, c := range l.Children {
		if _, ok := c.(*List); ok {
			return false
		}
	}
	return true
}

func writeFlat(b *strings.Builder, l *List) {
	b.WriteByte('(')
	for i, c := range l.Children {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeAtom(b, c.(Atom))
	}
	b.WriteByte(')')
}

func writeAtom(b *strings.Builder, a Atom) {
	if a.Kind != AtomString {
		b.WriteString(a.Text)
		return
	}

	b.WriteByte('"')
	for i := 0; i < len(a.Text); i++ {
		switch ch := a.Text[i]; ch {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(ch)
		}
	}
	b.WriteByte('"')
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteByte('\t')
	}
}
