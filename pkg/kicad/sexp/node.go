// Package sexp implements the generic S-expression layer shared by the
// KiCad file format parsers: a tokenizer, a tree parser, and a canonical
// writer. The tree preserves the lexical kind of every atom, so a parsed
// file can be re-emitted without losing information.
package sexp

// AtomKind tags the lexical kind an atom had in the source text
type AtomKind int

const (
	AtomSymbol AtomKind = iota
	AtomString
	AtomNumber
)

func (k AtomKind) String() string {
	switch k {
	case AtomSymbol:
		return "symbol"
	case AtomString:
		return "string"
	case AtomNumber:
		return "number"
	}
	return "unknown"
}

// Node is an S-expression tree node: either an Atom or a *List
type Node interface {
	isNode()
}

// Atom is a leaf node. Text holds the decoded value: for strings the
// escapes are already resolved, for symbols and numbers it is the exact
// source text.
type Atom struct {
	Kind AtomKind
	Text string
}

func (Atom) isNode() {}

// List is an ordered sequence of child nodes. By grammar convention the
// first child is usually a symbol naming the construct.
type List struct {
	Children []Node
}

func (*List) isNode() {}

// Tag returns the leading symbol of the list, or "" when the list is
// empty or does not start with a symbol
func (l *List) Tag() string {
	if len(l.Children) == 0 {
		return ""
	}
	if a, ok := l.Children[0].(Atom); ok && a.Kind == AtomSymbol {
		return a.Text
	}
	return ""
}

// Len returns the number of children
func (l *List) Len() int { return len(l.Children) }

// Get returns the child at index i, or nil when out of range
func (l *List) Get(i int) Node {
	if i < 0 || i >= len(l.Children) {
		return nil
	}
	return l.Children[i]
}

// Sym builds a symbol atom
func Sym(s string) Atom { return Atom{Kind: AtomSymbol, Text: s} }

// Str builds a string atom
func Str(s string) Atom { return Atom{Kind: AtomString, Text: s} }

// Num builds a number atom from a Decimal
func Num(d Decimal) Atom { return Atom{Kind: AtomNumber, Text: d.String()} }

// NewList builds a list node from the given children
func NewList(children ...Node) *List { return &List{Children: children} }

// classifyAtom decides whether an unquoted token is a number or a symbol.
// KiCad numbers are plain decimals with an optional sign and fraction;
// anything else (including exponent notation, which KiCad never writes)
// stays a symbol.
func classifyAtom(text string) AtomKind {
	s := text
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if len(s) == 0 {
		return AtomSymbol
	}
	digits := 0
	dots := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
		default:
			return AtomSymbol
		}
	}
	if digits == 0 || dots > 1 {
		return AtomSymbol
	}
	return AtomNumber
}
