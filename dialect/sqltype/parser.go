package sqltype

import (
	"fmt"
	"math"
	"strconv"
)

// ParseFunc parses a declaration in one dialect grammar.
type ParseFunc func(sql string) (Type, error)

// Parser is the token cursor shared by the dialect grammars.
type Parser struct {
	// Dialect is the dialect name recorded in parsed types.
	Dialect string
	// Product is the database name used in diagnostics, e.g. "SQL Server".
	Product string

	input  string
	lex    *Lexer
	lexErr *LexError
}

// NewParser returns a parser over input.
func NewParser(dialect, product, input string) *Parser {
	return &Parser{
		Dialect: dialect,
		Product: product,
		input:   input,
		lex:     NewLexer(input),
	}
}

// Next returns the next token. A lexing failure is recorded and reported
// as end of input, so the grammar unwinds and Run reports the lex error.
func (p *Parser) Next() Token {
	if p.lexErr != nil {
		return Token{Type: EOF, Offset: p.lexErr.Offset}
	}
	t, err := p.lex.Next()
	if err != nil {
		p.lexErr = err.(*LexError)
		return Token{Type: EOF, Offset: p.lexErr.Offset}
	}
	return t
}

// Errorf returns a ParseError positioned at tok.
func (p *Parser) Errorf(tok Token, format string, args ...any) error {
	return &ParseError{
		Dialect: p.Dialect,
		Input:   p.input,
		Token:   tok.String(),
		Message: fmt.Sprintf(format, args...),
	}
}

// Uint parses an integer literal no larger than limit.
func (p *Parser) Uint(tok Token, limit uint64) (uint32, bool) {
	if tok.Type != IntLit {
		return 0, false
	}
	v, err := strconv.ParseUint(tok.Literal, 10, 64)
	if err != nil || v > limit {
		return 0, false
	}
	return uint32(v), true
}

// Run parses the input with grammar. Lexing failures take precedence over
// whatever the grammar concluded.
func (p *Parser) Run(grammar func(*Parser, *Type) error) (Type, error) {
	t := Type{Dialect: p.Dialect}
	err := grammar(p, &t)
	if p.lexErr != nil {
		return Type{}, &ParseError{
			Dialect: p.Dialect,
			Input:   p.input,
			Token:   string(p.lexErr.Char),
			Message: fmt.Sprintf("invalid %s type declaration: %s", p.Product, p.lexErr.Error()),
		}
	}
	if err != nil {
		return Type{}, err
	}
	return t, nil
}

// Qualifier is a parsed "(prec[,scale])" clause.
type Qualifier struct {
	Prec, Scale       uint32
	HasPrec, HasScale bool
}

// Qualifier parses an optional "(prec[,scale])" clause starting at t and
// returns the token that follows it. A scale is accepted only when scale
// is set.
func (p *Parser) Qualifier(t Token, scale bool) (Qualifier, Token, error) {
	var q Qualifier
	if !t.Is('(') {
		return q, t, nil
	}
	t = p.Next()
	if t.Type != IntLit {
		return q, t, p.Errorf(t, "integer precision expected in %s type declaration", p.Product)
	}
	v, ok := p.Uint(t, math.MaxUint32)
	if !ok {
		return q, t, p.Errorf(t, "invalid precision value '%s' in %s type declaration", t, p.Product)
	}
	q.Prec, q.HasPrec = v, true
	if t = p.Next(); t.Is(',') {
		if !scale {
			return q, t, p.Errorf(t, "unexpected scale in %s type declaration", p.Product)
		}
		if t = p.Next(); t.Type != IntLit {
			return q, t, p.Errorf(t, "integer scale expected in %s type declaration", p.Product)
		}
		if v, ok = p.Uint(t, math.MaxUint32); !ok {
			return q, t, p.Errorf(t, "invalid scale value '%s' in %s type declaration", t, p.Product)
		}
		q.Scale, q.HasScale = v, true
		t = p.Next()
	}
	if !t.Is(')') {
		return q, t, p.Errorf(t, "expected ')' in %s type declaration", p.Product)
	}
	return q, p.Next(), nil
}
