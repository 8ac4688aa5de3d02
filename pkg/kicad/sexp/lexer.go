package sexp

import "fmt"

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenAtom
	TokenString
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenAtom:
		return "atom"
	case TokenString:
		return "string"
	}
	return "unknown token"
}

// Pos locates a token within the source text
type Pos struct {
	Offset int // byte offset from start of input
	Line   int // 1-based
	Col    int // 1-based, in runes
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, col %d (offset %d)", p.Line, p.Col, p.Offset)
}

// Token represents a lexical token.
// For TokenString, Text holds the decoded value with escapes resolved.
type Token struct {
	Type TokenType
	Text string
	Pos  Pos
}

// LexError reports a malformed token stream, such as an unterminated
// quoted string
type LexError struct {
	Pos Pos
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Msg)
}

// Lexer tokenizes KiCad S-expression text. The full input is held in
// memory; a Lexer carries no state beyond its read position, so each
// invocation over fresh input is independent.
type Lexer struct {
	src  string
	off  int
	line int
	col  int
}

// NewLexer creates a lexer over the given source text
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Next reads the next token from the input
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()

	if l.off >= len(l.src) {
		return Token{Type: TokenEOF, Pos: l.pos()}, nil
	}

	start := l.pos()
	switch l.src[l.off] {
	case '(':
		l.advance()
		return Token{Type: TokenLeftParen, Text: "(", Pos: start}, nil
	case ')':
		l.advance()
		return Token{Type: TokenRightParen, Text: ")", Pos: start}, nil
	case '"':
		return l.readString(start)
	default:
		return l.readAtom(start)
	}
}

func (l *Lexer) pos() Pos {
	return Pos{Offset: l.off, Line: l.line, Col: l.col}
}

// advance consumes one byte, tracking line/column. Multi-byte runes only
// ever appear inside atoms and strings, where continuation bytes must not
// bump the column counter.
func (l *Lexer) advance() byte {
	ch := l.src[l.off]
	l.off++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else if ch&0xC0 != 0x80 {
		l.col++
	}
	return ch
}

// skipSpace consumes whitespace and # comments running to end of line
func (l *Lexer) skipSpace() {
	for l.off < len(l.src) {
		switch l.src[l.off] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '#':
			for l.off < len(l.src) && l.src[l.off] != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// readString reads a quoted string, decoding backslash escapes
func (l *Lexer) readString(start Pos) (Token, error) {
	l.advance() // opening quote

	var result []byte
	for {
		if l.off >= len(l.src) {
			return Token{}, &LexError{Pos: start, Msg: "unterminated string"}
		}

		ch := l.advance()
		if ch == '"' {
			return Token{Type: TokenString, Text: string(result), Pos: start}, nil
		}

		if ch == '\\' {
			if l.off >= len(l.src) {
				return Token{}, &LexError{Pos: start, Msg: "unterminated string: input ends after backslash"}
			}
			esc := l.advance()
			switch esc {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case 'r':
				result = append(result, '\r')
			case '\\':
				result = append(result, '\\')
			case '"':
				result = append(result, '"')
			default:
				// Unknown escape - keep the escaped byte
				result = append(result, esc)
			}
			continue
		}

		result = append(result, ch)
	}
}

// readAtom reads an unquoted atom (symbol, number, identifier)
func (l *Lexer) readAtom(start Pos) (Token, error) {
	from := l.off
	for l.off < len(l.src) {
		ch := l.src[l.off]
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' ||
			ch == '(' || ch == ')' || ch == '"' {
			break
		}
		l.advance()
	}

	return Token{Type: TokenAtom, Text: l.src[from:l.off], Pos: start}, nil
}
