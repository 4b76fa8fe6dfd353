package parser

import (
	"github.com/halvardsen/ncc/internal/ast"
	"github.com/halvardsen/ncc/internal/token"
)

var relOps = map[token.Type]ast.RelOp{
	token.EQ:     ast.RelEq,
	token.NOT_EQ: ast.RelNotEq,
	token.LT:     ast.RelLess,
	token.LT_EQ:  ast.RelLessEq,
	token.GT:     ast.RelGreater,
	token.GT_EQ:  ast.RelGreaterEq,
}

var addOps = map[token.Type]ast.AddOp{
	token.PLUS:  ast.AddPlus,
	token.MINUS: ast.AddMinus,
	token.OR:    ast.AddOr,
}

var mulOps = map[token.Type]ast.MulOp{
	token.ASTERISK: ast.MulTimes,
	token.SLASH:    ast.MulDivide,
	token.AND:      ast.MulAnd,
}

// parseExpression parses operand (rel_op operand)*.
func (p *Parser) parseExpression() *ast.Expression {
	pos := p.c.cur().Pos
	expr := &ast.Expression{Pos: pos}
	expr.Operands = append(expr.Operands, p.parseOperand())
	for {
		op, ok := relOps[p.c.cur().Type]
		if !ok {
			break
		}
		p.c.advance()
		expr.Ops = append(expr.Ops, op)
		expr.Operands = append(expr.Operands, p.parseOperand())
	}
	return expr
}

// parseOperand parses term (add_op term)*.
func (p *Parser) parseOperand() *ast.Operand {
	pos := p.c.cur().Pos
	operand := &ast.Operand{Pos: pos}
	operand.Terms = append(operand.Terms, p.parseTerm())
	for {
		op, ok := addOps[p.c.cur().Type]
		if !ok {
			break
		}
		p.c.advance()
		operand.Ops = append(operand.Ops, op)
		operand.Terms = append(operand.Terms, p.parseTerm())
	}
	return operand
}

// parseTerm parses multiplier (mul_op multiplier)*.
func (p *Parser) parseTerm() *ast.Term {
	pos := p.c.cur().Pos
	term := &ast.Term{Pos: pos}
	term.Factors = append(term.Factors, p.parseMultiplier())
	for {
		op, ok := mulOps[p.c.cur().Type]
		if !ok {
			break
		}
		p.c.advance()
		term.Ops = append(term.Ops, op)
		term.Factors = append(term.Factors, p.parseMultiplier())
	}
	return term
}

// parseMultiplier parses id | literal | 'true' | 'false' | '!' multiplier
// | '(' expression ')'.
func (p *Parser) parseMultiplier() ast.Multiplier {
	cur := p.c.cur()
	switch cur.Type {
	case token.IDENT:
		p.c.advance()
		return &ast.IdentRef{ID: cur.ID, Pos: cur.Pos}
	case token.NUMBER:
		p.c.advance()
		return &ast.LiteralRef{ID: cur.ID, Pos: cur.Pos}
	case token.TRUE:
		p.c.advance()
		return &ast.BoolLit{Value: true, Pos: cur.Pos}
	case token.FALSE:
		p.c.advance()
		return &ast.BoolLit{Value: false, Pos: cur.Pos}
	case token.NOT:
		p.c.advance()
		return &ast.Not{Operand: p.parseMultiplier(), Pos: cur.Pos}
	case token.LPAREN:
		p.c.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN, "')'")
		return &ast.Paren{Expr: expr, Pos: cur.Pos}
	default:
		p.fail(cur.Pos, "an identifier, literal, 'true', 'false', '!', or '('", cur)
		return nil
	}
}
