package parser

import (
	"github.com/halvardsen/ncc/internal/ast"
	"github.com/halvardsen/ncc/internal/token"
)

// parseVarDecl parses 'var' (id_list ':' type) (';' id_list ':' type)*.
// The chained groups after the first are speculative: a ';' might
// instead belong to the enclosing body, so each continuation is tried
// via tryParse and abandoned (restoring the cursor) the first time it
// fails to look like another id_list ':' type group.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	pos := p.c.cur().Pos
	p.expect(token.VAR, "'var'")

	decl := &ast.VarDecl{Pos: pos}
	decl.Groups = append(decl.Groups, p.parseVarGroup())

	for p.c.at(token.SEMICOLON) {
		var group ast.VarGroup
		ok := p.tryParse(func() {
			p.c.advance() // ';'
			group = p.parseVarGroup()
		})
		if !ok {
			break
		}
		decl.Groups = append(decl.Groups, group)
	}
	return decl
}

// parseVarGroup parses id_list ':' type.
func (p *Parser) parseVarGroup() ast.VarGroup {
	pos := p.c.cur().Pos
	ids := []uint32{p.expect(token.IDENT, "identifier").ID}
	for p.c.at(token.COMMA) {
		p.c.advance()
		ids = append(ids, p.expect(token.IDENT, "identifier").ID)
	}
	p.expect(token.COLON, "':'")
	typ := p.parseType()
	return ast.VarGroup{Ids: ids, Type: typ, Pos: pos}
}

// parseType parses 'integer' | 'real' | 'boolean'.
func (p *Parser) parseType() ast.Type {
	cur := p.c.cur()
	switch cur.Type {
	case token.INTEGER:
		p.c.advance()
		return ast.Integer
	case token.REAL:
		p.c.advance()
		return ast.Real
	case token.BOOLEAN:
		p.c.advance()
		return ast.Boolean
	default:
		p.fail(cur.Pos, "a type ('integer', 'real', or 'boolean')", cur)
		return ast.Invalid
	}
}
