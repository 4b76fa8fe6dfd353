// Package parser implements a recursive-descent syntax analyser:
// token stream → typed AST, one function per grammar production,
// precedence encoded by nesting rather than a table.
package parser

import (
	"fmt"

	"github.com/halvardsen/ncc/internal/ast"
	"github.com/halvardsen/ncc/internal/token"
)

// Parser walks a pre-lexed token vector. On the first syntactic
// failure it records a SyntaxError and aborts the parse, unlike the
// lexer which keeps scanning past errors.
type Parser struct {
	c      *tokenCursor
	errors []*SyntaxError
}

// abort unwinds the recursive descent back to ParseProgram once a
// syntax error has been recorded; it never crosses a package boundary.
type abort struct{}

// New constructs a Parser over a fully-lexed token stream.
func New(toks []token.Token) *Parser {
	return &Parser{c: newTokenCursor(toks)}
}

// Errors returns the syntax errors recorded during ParseProgram.
// Parsing aborts on the first one, so there is at most one, but the
// slice shape matches the other stages for uniform error handling in
// the driver.
func (p *Parser) Errors() []*SyntaxError { return p.errors }

func (p *Parser) fail(pos token.Position, expected string, found token.Token) {
	p.errors = append(p.errors, &SyntaxError{Pos: pos, Expected: expected, Found: found})
	panic(abort{})
}

func (p *Parser) failMsg(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, &SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)})
	panic(abort{})
}

// expect consumes the current token if it matches tt, else aborts with
// a "expected X, got Y at path:line:col" diagnostic.
func (p *Parser) expect(tt token.Type, label string) token.Token {
	cur := p.c.cur()
	if cur.Type != tt {
		p.fail(cur.Pos, label, cur)
	}
	return p.c.advance()
}

// ParseProgram parses '{' body '}' EOF and returns the root AST node,
// or nil if a syntax error was recorded (see Errors).
func (p *Parser) ParseProgram() (prog *ast.Program) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(abort); ok {
				prog = nil
				return
			}
			panic(r)
		}
	}()

	p.expect(token.LBRACE, "'{'")
	ops := p.parseBody()
	p.expect(token.RBRACE, "'}'")
	p.expect(token.EOF, "end of input")
	return &ast.Program{Operations: ops}
}

// parseBody parses main_op (';' main_op)*; a trailing ';' before the
// closing '}' is also accepted.
func (p *Parser) parseBody() []ast.MainOperation {
	var ops []ast.MainOperation
	ops = append(ops, p.parseMainOp())
	for p.c.at(token.SEMICOLON) {
		p.c.advance()
		if p.c.at(token.RBRACE) {
			break
		}
		ops = append(ops, p.parseMainOp())
	}
	return ops
}

// parseMainOp parses var_decl | operator.
func (p *Parser) parseMainOp() ast.MainOperation {
	if p.c.at(token.VAR) {
		return p.parseVarDecl()
	}
	return &ast.StmtOp{Op: p.parseOperator()}
}

// tryParse runs fn speculatively: on a syntax abort inside fn, the
// cursor and error log are rolled back and tryParse returns false
// instead of propagating the abort. Used only to decide whether a
// ';' after a var_decl group starts another chained group.
func (p *Parser) tryParse(fn func()) (ok bool) {
	mark := p.c.mark()
	errLen := len(p.errors)
	defer func() {
		if r := recover(); r != nil {
			if _, isAbort := r.(abort); isAbort {
				p.c.resetTo(mark)
				p.errors = p.errors[:errLen]
				ok = false
				return
			}
			panic(r)
		}
	}()
	fn()
	ok = true
	return
}
