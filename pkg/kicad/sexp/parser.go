package sexp

import "fmt"

// ParseError reports structurally invalid input: unbalanced parentheses,
// empty input, or trailing content after the root expression
type ParseError struct {
	Pos      Pos
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// Parser builds a generic S-expression tree from a token stream
type Parser struct {
	lexer   *Lexer
	current Token
	depth   int
	opens   []Pos // positions of unclosed '(' for error reporting
}

// NewParser creates a parser over the given source text
func NewParser(src string) *Parser {
	return &Parser{lexer: NewLexer(src)}
}

// Parse parses exactly one root expression from the input. Empty input
// and trailing tokens after the root expression are errors.
func Parse(src string) (Node, error) {
	p := NewParser(src)

	if err := p.next(); err != nil {
		return nil, err
	}
	if p.current.Type == TokenEOF {
		return nil, &ParseError{Pos: p.current.Pos, Expected: "expression", Found: "end of input"}
	}

	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.next(); err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		return nil, &ParseError{Pos: p.current.Pos, Expected: "end of input", Found: p.describe(p.current)}
	}

	return root, nil
}

func (p *Parser) next() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

// parseExpr parses the expression starting at the current token
func (p *Parser) parseExpr() (Node, error) {
	switch p.current.Type {
	case TokenLeftParen:
		return p.parseList()

	case TokenAtom:
		return Atom{Kind: classifyAtom(p.current.Text), Text: p.current.Text}, nil

	case TokenString:
		return Atom{Kind: AtomString, Text: p.current.Text}, nil

	case TokenRightParen:
		return nil, &ParseError{Pos: p.current.Pos, Expected: "expression", Found: "')'"}

	default:
		return nil, &ParseError{Pos: p.current.Pos, Expected: "expression", Found: "end of input"}
	}
}

// parseList parses a list from the current '(' to its matching ')'.
// Depth is tracked only so errors can name the unclosed list; nesting
// itself is unbounded.
func (p *Parser) parseList() (Node, error) {
	open := p.current.Pos
	p.depth++
	p.opens = append(p.opens, open)

	list := &List{}
	for {
		if err := p.next(); err != nil {
			return nil, err
		}

		switch p.current.Type {
		case TokenRightParen:
			p.depth--
			p.opens = p.opens[:len(p.opens)-1]
			return list, nil

		case TokenEOF:
			return nil, &ParseError{
				Pos:      p.current.Pos,
				Expected: fmt.Sprintf("')' closing list opened at %s (depth %d)", open, p.depth),
				Found:    "end of input",
			}
		}

		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Children = append(list.Children, elem)
	}
}

func (p *Parser) describe(tok Token) string {
	switch tok.Type {
	case TokenAtom, TokenString:
		return fmt.Sprintf("%s %q", tok.Type, tok.Text)
	default:
		return tok.Type.String()
	}
}
