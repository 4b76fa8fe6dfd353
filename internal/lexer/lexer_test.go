package lexer

import (
	"testing"

	"github.com/halvardsen/ncc/internal/token"
)

func TestNextTokenSimpleProgram(t *testing.T) {
	input := `{ var x: integer; x = 1 + 2; output(x); }`

	want := []token.Type{
		token.LBRACE, token.VAR, token.IDENT, token.COLON, token.INTEGER, token.SEMICOLON,
		token.IDENT, token.ASSIGN, token.NUMBER, token.PLUS, token.NUMBER, token.SEMICOLON,
		token.OUTPUT, token.LPAREN, token.IDENT, token.RPAREN, token.SEMICOLON,
		token.RBRACE, token.EOF,
	}

	l := New(input)
	for i, tt := range want {
		tok := l.NextToken()
		if tok.Type != tt {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, tt)
		}
	}
	if len(l.Errors()) != 0 {
		t.Fatalf("unexpected lex errors: %v", l.Errors())
	}
	if l.Idents().Len() != 1 {
		t.Fatalf("expected 1 distinct identifier, got %d", l.Idents().Len())
	}
}

func TestTwoCharDelimiters(t *testing.T) {
	input := "== != <= >= && || = ! < >"
	want := []token.Type{
		token.EQ, token.NOT_EQ, token.LT_EQ, token.GT_EQ, token.AND, token.OR,
		token.ASSIGN, token.NOT, token.LT, token.GT, token.EOF,
	}
	l := New(input)
	for i, tt := range want {
		tok := l.NextToken()
		if tok.Type != tt {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, tt)
		}
	}
}

func TestIsolatedAmpersandIsIllegal(t *testing.T) {
	l := New("x & y")
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
	}
	if len(l.Errors()) != 1 || l.Errors()[0].Kind != IllegalCharacter {
		t.Fatalf("expected one IllegalCharacter error, got %v", l.Errors())
	}
}

func TestCommentIsSkipped(t *testing.T) {
	l := New("x % this is a comment\nspanning lines % y")
	first := l.NextToken()
	second := l.NextToken()
	if first.Type != token.IDENT || second.Type != token.IDENT {
		t.Fatalf("expected two identifiers around comment, got %s, %s", first.Type, second.Type)
	}
}

func TestUnterminatedCommentIsError(t *testing.T) {
	l := New("x % never closed")
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
	}
	if len(l.Errors()) != 1 || l.Errors()[0].Kind != UnterminatedComment {
		t.Fatalf("expected one UnterminatedComment error, got %v", l.Errors())
	}
}

func TestIdentifierIdsAreDenseAndStable(t *testing.T) {
	l := New("foo bar foo baz")
	var ids []uint32
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		ids = append(ids, tok.ID)
	}
	want := []uint32{0, 1, 0, 2}
	if len(ids) != len(want) {
		t.Fatalf("got %d idents, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ident %d: got id %d, want %d", i, ids[i], want[i])
		}
	}
}
