package sqltype

import (
	"fmt"
	"strings"
)

// TokenType identifies the class of a lexical token.
type TokenType uint8

// Token types.
const (
	EOF TokenType = iota
	Identifier
	IntLit
	StringLit
	Punct
)

// Token is one lexical unit of a type declaration.
type Token struct {
	Type    TokenType
	Literal string
	Offset  int
}

// Is reports if the token is the given punctuation character.
func (t Token) Is(p byte) bool {
	return t.Type == Punct && len(t.Literal) == 1 && t.Literal[0] == p
}

// Keyword returns the upcased identifier, or "" for other tokens.
func (t Token) Keyword() string {
	if t.Type != Identifier {
		return ""
	}
	return strings.ToUpper(t.Literal)
}

// String returns the token text as it is quoted in diagnostics.
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "<end-of-input>"
	case StringLit:
		return Quote(t.Literal)
	}
	return t.Literal
}

// LexError reports a character that cannot start a token.
type LexError struct {
	Char   byte
	Offset int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character '%c'", e.Char)
}

// Lexer tokenizes an SQL type declaration.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// Next returns the next token. Once the input is exhausted it keeps
// returning EOF.
func (l *Lexer) Next() (Token, error) {
	for isSpace(l.ch) {
		l.readChar()
	}
	start := l.pos
	switch {
	case l.ch == 0 && l.pos >= len(l.input):
		return Token{Type: EOF, Offset: start}, nil
	case isLetter(l.ch):
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '$' {
			l.readChar()
		}
		return Token{Type: Identifier, Literal: l.input[start:l.pos], Offset: start}, nil
	case isDigit(l.ch):
		for isDigit(l.ch) {
			l.readChar()
		}
		return Token{Type: IntLit, Literal: l.input[start:l.pos], Offset: start}, nil
	case l.ch == '\'':
		return l.readString(start)
	case l.ch == '(' || l.ch == ')' || l.ch == ',' || l.ch == ';':
		c := l.ch
		l.readChar()
		return Token{Type: Punct, Literal: string(c), Offset: start}, nil
	}
	return Token{}, &LexError{Char: l.ch, Offset: start}
}

// readString reads a single-quoted literal where '' escapes a quote.
func (l *Lexer) readString(start int) (Token, error) {
	var b strings.Builder
	for {
		l.readChar()
		switch {
		case l.ch == 0 && l.pos >= len(l.input):
			return Token{}, &LexError{Char: '\'', Offset: start}
		case l.ch == '\'' && l.peekChar() == '\'':
			b.WriteByte('\'')
			l.readChar()
		case l.ch == '\'':
			l.readChar()
			return Token{Type: StringLit, Literal: b.String(), Offset: start}, nil
		default:
			b.WriteByte(l.ch)
		}
	}
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
