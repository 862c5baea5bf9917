package parser

import (
	"lya/ast"
	"lya/token"
)

func (p *Parser) parseDeclarationStatement() (ast.Statement, error) {
	start := p.advance() // 'dcl'
	var decls []ast.Declarator
	for {
		isLoc := p.match(token.LOC)
		names, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		mode, err := p.parseMode()
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if p.match(token.ASSIGN) {
			init, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		for _, name := range names {
			decls = append(decls, ast.Declarator{Name: name, Mode: mode, Init: init, Loc: isLoc})
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after declaration"); err != nil {
		return nil, err
	}
	return ast.NewDeclarationStatement(decls, start.Line), nil
}

func (p *Parser) parseSynonymStatement() (ast.Statement, error) {
	start := p.advance() // 'synonym'
	var decls []ast.SynonymDeclarator
	for {
		names, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		var mode ast.Mode
		if !p.check(token.ASSIGN) {
			mode, err = p.parseMode()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.ASSIGN, "expected '=' in synonym declaration"); err != nil {
			return nil, err
		}
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			decls = append(decls, ast.SynonymDeclarator{Name: name, Mode: mode, Init: init})
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after synonym declaration"); err != nil {
		return nil, err
	}
	return ast.NewSynonymStatement(decls, start.Line), nil
}

func (p *Parser) parseNewmodeStatement() (ast.Statement, error) {
	start := p.advance() // 'mode'
	var decls []ast.ModeDeclarator
	for {
		names, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ASSIGN, "expected '=' in mode declaration"); err != nil {
			return nil, err
		}
		mode, err := p.parseMode()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			decls = append(decls, ast.ModeDeclarator{Name: name, Mode: mode})
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after mode declaration"); err != nil {
		return nil, err
	}
	return ast.NewNewmodeStatement(decls, start.Line), nil
}

// parseMode parses the grammar's "mode" production: primitive modes,
// "array[lo:hi] mode", "ref mode", "chars[n]", or a mode-name alias.
func (p *Parser) parseMode() (ast.Mode, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.INT:
		p.advance()
		return ast.NewIntegerMode(tok.Line), nil
	case token.BOOL:
		p.advance()
		return ast.NewBooleanMode(tok.Line), nil
	case token.CHAR:
		p.advance()
		return ast.NewCharacterMode(tok.Line), nil
	case token.CHARS:
		p.advance()
		if _, err := p.expect(token.LBRACKET, "expected '[' after 'chars'"); err != nil {
			return nil, err
		}
		length, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET, "expected ']' after string length"); err != nil {
			return nil, err
		}
		return ast.NewStringMode(length, tok.Line), nil
	case token.REF:
		p.advance()
		referenced, err := p.parseMode()
		if err != nil {
			return nil, err
		}
		return ast.NewReferenceMode(referenced, tok.Line), nil
	case token.ARRAY:
		p.advance()
		if _, err := p.expect(token.LBRACKET, "expected '[' after 'array'"); err != nil {
			return nil, err
		}
		lower, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON, "expected ':' in array bounds"); err != nil {
			return nil, err
		}
		upper, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET, "expected ']' after array bounds"); err != nil {
			return nil, err
		}
		element, err := p.parseMode()
		if err != nil {
			return nil, err
		}
		return ast.NewArrayMode(lower, upper, element, tok.Line), nil
	case token.IDENTIFIER:
		p.advance()
		return ast.NewModeName(tok, tok.Line), nil
	}
	return nil, &ParseError{Line: tok.Line, Message: "expected a mode"}
}

func (p *Parser) parseResultSpec() (ast.Mode, bool, error) {
	isLoc := p.match(token.LOC)
	mode, err := p.parseMode()
	if err != nil {
		return nil, false, err
	}
	return mode, isLoc, nil
}

func (p *Parser) parseProcedureStatement(name token.Token) (ast.Statement, error) {
	procTok := p.advance() // 'proc'
	if _, err := p.expect(token.LPAREN, "expected '(' after 'proc'"); err != nil {
		return nil, err
	}
	var params []ast.FormalParameter
	if !p.check(token.RPAREN) {
		for {
			isLoc := p.match(token.LOC)
			names, err := p.parseIdentifierList()
			if err != nil {
				return nil, err
			}
			mode, err := p.parseMode()
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				params = append(params, ast.FormalParameter{Name: n, Mode: mode, Loc: isLoc})
			}
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(token.RPAREN, "expected ')' after parameter list"); err != nil {
		return nil, err
	}

	var resultMode ast.Mode
	var resultLoc bool
	if p.match(token.RETURNS) {
		var err error
		resultMode, resultLoc, err = p.parseResultSpec()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after procedure header"); err != nil {
		return nil, err
	}

	var body []ast.Statement
	for !p.isAtEnd() && !p.check(token.END) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(token.END, "expected 'end' after procedure body"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after 'end'"); err != nil {
		return nil, err
	}

	return ast.NewProcedureStatement(name, params, resultMode, resultLoc, body, procTok.Line), nil
}
