package sqltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	l := NewLexer(input)
	var toks []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestLexer(t *testing.T) {
	toks := lexAll(t, "  decimal (18, 4)")
	require.Len(t, toks, 7)
	assert.Equal(t, Identifier, toks[0].Type)
	assert.Equal(t, "DECIMAL", toks[0].Keyword())
	assert.Equal(t, 2, toks[0].Offset)
	assert.True(t, toks[1].Is('('))
	assert.Equal(t, IntLit, toks[2].Type)
	assert.Equal(t, "18", toks[2].Literal)
	assert.True(t, toks[3].Is(','))
	assert.Equal(t, "4", toks[4].Literal)
	assert.True(t, toks[5].Is(')'))
	assert.Equal(t, EOF, toks[6].Type)
	assert.Equal(t, "<end-of-input>", toks[6].String())
}

func TestLexer_Strings(t *testing.T) {
	toks := lexAll(t, "ENUM('a','it''s')")
	require.Len(t, toks, 7)
	assert.Equal(t, StringLit, toks[2].Type)
	assert.Equal(t, "a", toks[2].Literal)
	assert.Equal(t, "it's", toks[4].Literal)
	assert.Equal(t, "'it''s'", toks[4].String())
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		char  byte
	}{
		{"unexpected character", "INT @", '@'},
		{"unterminated string", "ENUM('a", '\''},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)
			var err error
			for err == nil {
				var tok Token
				tok, err = l.Next()
				if tok.Type == EOF && err == nil {
					t.Fatal("expected lex error before end of input")
				}
			}
			var lerr *LexError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, tt.char, lerr.Char)
		})
	}
}

func TestParser_LexErrorWins(t *testing.T) {
	p := NewParser("mssql", "SQL Server", "DECIMAL @")
	_, err := p.Run(func(p *Parser, t *Type) error {
		t.Kind = Decimal
		p.Next()
		p.Next()
		return nil
	})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidType)
	assert.Equal(t, "invalid SQL Server type declaration: unexpected character '@'", err.Error())
}

func TestParser_Uint(t *testing.T) {
	p := NewParser("mssql", "SQL Server", "")
	v, ok := p.Uint(Token{Type: IntLit, Literal: "65535"}, 65535)
	require.True(t, ok)
	assert.Equal(t, uint32(65535), v)
	_, ok = p.Uint(Token{Type: IntLit, Literal: "65536"}, 65535)
	assert.False(t, ok)
	_, ok = p.Uint(Token{Type: Identifier, Literal: "MAX"}, 65535)
	assert.False(t, ok)
}
