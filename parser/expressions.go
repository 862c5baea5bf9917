package parser

import (
	"strconv"

	"lya/ast"
	"lya/token"
)

// parseExpression is the entry point for the full expression grammar,
// precedence-climbing from the conditional expression down to primaries,
// mirroring the teacher's parser.go descent.
func (p *Parser) parseExpression() (ast.Expression, error) {
	if p.check(token.IF) {
		return p.parseConditionalExpression()
	}
	return p.parseLogicalOr()
}

func (p *Parser) parseConditionalExpression() (ast.Expression, error) {
	start := p.advance() // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.THEN, "expected 'then'"); err != nil {
		return nil, err
	}
	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var elsifConds, elsifThens []ast.Expression
	for p.check(token.ELSIF) {
		p.advance()
		ec, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.THEN, "expected 'then'"); err != nil {
			return nil, err
		}
		et, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elsifConds = append(elsifConds, ec)
		elsifThens = append(elsifThens, et)
	}
	if _, err := p.expect(token.ELSE, "expected 'else' in conditional expression"); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FI, "expected 'fi'"); err != nil {
		return nil, err
	}
	return ast.NewConditionalExpression(cond, then, elsifConds, elsifThens, elseExpr, start.Line), nil
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.OR) {
		op := p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewRelMemExpression(left, op, right, op.Line)
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(token.AND) {
		op := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = ast.NewRelMemExpression(left, op, right, op.Line)
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.EQUAL, token.NOT_EQUAL) {
		op := p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = ast.NewRelMemExpression(left, op, right, op.Line)
	}
	return left, nil
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL) {
		op := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.NewRelMemExpression(left, op, right, op.Line)
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.PLUS, token.MINUS) {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(left, op, right, op.Line)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.STAR, token.SLASH, token.PERCENT) {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(left, op, right, op.Line)
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.checkAny(token.MINUS, token.BANG, token.ABS) {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(op, operand, op.Line), nil
	}
	if p.check(token.ARROW) {
		op := p.advance()
		loc, err := p.parseLocation()
		if err != nil {
			return nil, err
		}
		return ast.NewReferencedLocation(loc, op.Line), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.INT_LITERAL:
		p.advance()
		v, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		return ast.NewIntegerLiteral(v, tok.Line), nil
	case token.TRUE:
		p.advance()
		return ast.NewBooleanLiteral(true, tok.Line), nil
	case token.FALSE:
		p.advance()
		return ast.NewBooleanLiteral(false, tok.Line), nil
	case token.CHAR_LITERAL:
		p.advance()
		return ast.NewCharacterLiteral(tok.Literal.(rune), tok.Line), nil
	case token.STRING_LITERAL:
		p.advance()
		return ast.NewStringLiteral(tok.Literal.(string), tok.Line), nil
	case token.NULL:
		p.advance()
		return ast.NewEmptyLiteral(tok.Line), nil
	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "expected ')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case token.ABS, token.NUM, token.ASC, token.UPPER, token.LOWER, token.LENGTH:
		p.advance()
		args, err := p.parseArgumentList()
		if err != nil {
			return nil, err
		}
		return ast.NewBuiltinCall(tok, args, tok.Line), nil
	case token.IDENTIFIER:
		p.advance()
		if p.check(token.LPAREN) {
			args, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}
			return ast.NewProcedureCall(tok, args, tok.Line), nil
		}
		loc, err := p.parseLocationTail(ast.NewIdentifierLocation(tok, tok.Line))
		if err != nil {
			return nil, err
		}
		if p.check(token.ARROW) {
			p.advance()
			return ast.NewLocationExpression(ast.NewDereferencedReference(loc, tok.Line), tok.Line), nil
		}
		return ast.NewLocationExpression(loc, tok.Line), nil
	}
	return nil, &ParseError{Line: tok.Line, Message: "expected an expression"}
}

// parseLocation parses a location, used on the right of a prefix "->"
// (reference-of).
func (p *Parser) parseLocation() (ast.Location, error) {
	name, err := p.expect(token.IDENTIFIER, "expected a location")
	if err != nil {
		return nil, err
	}
	return p.parseLocationTail(ast.NewIdentifierLocation(name, name.Line))
}

// parseLocationTail consumes zero or more "[...]" indexing/slicing suffixes
// following a base location.
func (p *Parser) parseLocationTail(base ast.Location) (ast.Location, error) {
	for p.check(token.LBRACKET) {
		p.advance()
		first, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.match(token.COLON) {
			upper, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET, "expected ']'"); err != nil {
				return nil, err
			}
			base = ast.NewArraySlice(base, first, upper, base.Line())
			continue
		}
		if _, err := p.expect(token.RBRACKET, "expected ']'"); err != nil {
			return nil, err
		}
		base = ast.NewArrayElement(base, first, base.Line())
	}
	return base, nil
}
