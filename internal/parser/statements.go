package parser

import (
	"github.com/halvardsen/ncc/internal/ast"
	"github.com/halvardsen/ncc/internal/token"
)

// parseOperator parses block | assign | if | for | while | io.
func (p *Parser) parseOperator() ast.Operator {
	cur := p.c.cur()
	switch cur.Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.LET, token.IDENT:
		return p.parseAssign()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.DO:
		return p.parseWhile()
	case token.INPUT, token.OUTPUT:
		return p.parseIO()
	default:
		p.fail(cur.Pos, "a statement", cur)
		return nil
	}
}

// parseBlock parses '{' operator (';' operator)* '}'; a trailing ';'
// before the closing '}' is also accepted.
func (p *Parser) parseBlock() *ast.Block {
	pos := p.c.cur().Pos
	p.expect(token.LBRACE, "'{'")
	b := &ast.Block{Pos: pos}
	b.Ops = append(b.Ops, p.parseOperator())
	for p.c.at(token.SEMICOLON) {
		p.c.advance()
		if p.c.at(token.RBRACE) {
			break
		}
		b.Ops = append(b.Ops, p.parseOperator())
	}
	p.expect(token.RBRACE, "'}'")
	return b
}

// parseAssign parses ('let')? id '=' expression.
func (p *Parser) parseAssign() *ast.Assign {
	pos := p.c.cur().Pos
	if p.c.at(token.LET) {
		p.c.advance()
	}
	id := p.expect(token.IDENT, "identifier")
	p.expect(token.ASSIGN, "'='")
	expr := p.parseExpression()
	return &ast.Assign{ID: id.ID, Expr: expr, Pos: pos}
}

// parseIf parses 'if' expression 'then' operator ('else' operator)? 'end_else'.
func (p *Parser) parseIf() *ast.If {
	pos := p.c.cur().Pos
	p.expect(token.IF, "'if'")
	cond := p.parseExpression()
	p.expect(token.THEN, "'then'")
	thenOp := p.parseOperator()

	node := &ast.If{Cond: *cond, Then: thenOp, Pos: pos}
	if p.c.at(token.ELSE) {
		p.c.advance()
		node.Else = p.parseOperator()
	}
	p.expect(token.END_ELSE, "'end_else'")
	return node
}

// parseFor parses 'for' '(' expression ';' expression ';' expression ')' operator.
func (p *Parser) parseFor() *ast.For {
	pos := p.c.cur().Pos
	p.expect(token.FOR, "'for'")
	p.expect(token.LPAREN, "'('")
	init := p.parseExpression()
	p.expect(token.SEMICOLON, "';'")
	cond := p.parseExpression()
	p.expect(token.SEMICOLON, "';'")
	step := p.parseExpression()
	p.expect(token.RPAREN, "')'")
	body := p.parseOperator()
	return &ast.For{Init: *init, Cond: *cond, Step: *step, Body: body, Pos: pos}
}

// parseWhile parses 'do' 'while' expression operator 'loop'.
func (p *Parser) parseWhile() *ast.While {
	pos := p.c.cur().Pos
	p.expect(token.DO, "'do'")
	p.expect(token.WHILE, "'while'")
	cond := p.parseExpression()
	body := p.parseOperator()
	p.expect(token.LOOP, "'loop'")
	return &ast.While{Cond: *cond, Body: body, Pos: pos}
}

// parseIO parses 'input' '(' id+ ')' | 'output' '(' expression+ ')'.
func (p *Parser) parseIO() ast.Operator {
	cur := p.c.cur()
	if cur.Type == token.INPUT {
		p.c.advance()
		p.expect(token.LPAREN, "'('")
		ids := []uint32{p.expect(token.IDENT, "identifier").ID}
		for p.c.at(token.COMMA) {
			p.c.advance()
			ids = append(ids, p.expect(token.IDENT, "identifier").ID)
		}
		p.expect(token.RPAREN, "')'")
		return &ast.Input{Ids: ids, Pos: cur.Pos}
	}

	p.expect(token.OUTPUT, "'output'")
	p.expect(token.LPAREN, "'('")
	exprs := []ast.Expression{*p.parseExpression()}
	for p.c.at(token.COMMA) {
		p.c.advance()
		exprs = append(exprs, *p.parseExpression())
	}
	p.expect(token.RPAREN, "')'")
	return &ast.Output{Exprs: exprs, Pos: cur.Pos}
}
