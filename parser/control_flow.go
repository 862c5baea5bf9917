package parser

import (
	"lya/ast"
	"lya/token"
)

func (p *Parser) parseBlockUntil(terminators ...token.Kind) ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.isAtEnd() && !p.checkAny(terminators...) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseIfAction() (ast.Statement, error) {
	start := p.advance() // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.THEN, "expected 'then'"); err != nil {
		return nil, err
	}
	then, err := p.parseBlockUntil(token.ELSIF, token.ELSE, token.FI)
	if err != nil {
		return nil, err
	}

	var elsifConds []ast.Expression
	var elsifThens [][]ast.Statement
	for p.check(token.ELSIF) {
		p.advance()
		econd, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.THEN, "expected 'then'"); err != nil {
			return nil, err
		}
		ethen, err := p.parseBlockUntil(token.ELSIF, token.ELSE, token.FI)
		if err != nil {
			return nil, err
		}
		elsifConds = append(elsifConds, econd)
		elsifThens = append(elsifThens, ethen)
	}

	var elseBlock []ast.Statement
	if p.match(token.ELSE) {
		elseBlock, err = p.parseBlockUntil(token.FI)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.FI, "expected 'fi'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after 'fi'"); err != nil {
		return nil, err
	}
	return ast.NewIfAction(cond, then, elsifConds, elsifThens, elseBlock, start.Line), nil
}

// parseDoAction parses "do [control] stmts od;". label is the zero Token
// when the loop is unlabelled.
func (p *Parser) parseDoAction(label token.Token) (ast.Statement, error) {
	start := p.advance() // 'do'

	var control *ast.ControlPart
	if p.check(token.FOR) {
		p.advance()
		counter, err := p.expect(token.IDENTIFIER, "expected loop counter identifier")
		if err != nil {
			return nil, err
		}
		if p.match(token.ASSIGN) {
			startVal, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.TO, "expected 'to' in step enumeration"); err != nil {
				return nil, err
			}
			endVal, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			var step ast.Expression
			if p.match(token.BY) {
				step, err = p.parseExpression()
				if err != nil {
					return nil, err
				}
			}
			control = &ast.ControlPart{For: &ast.StepEnumeration{Counter: counter, Start: startVal, End: endVal, Step: step}}
		} else {
			rangeMode, err := p.parseMode()
			if err != nil {
				return nil, err
			}
			control = &ast.ControlPart{Range: &ast.RangeEnumeration{Counter: counter, RangeOf: rangeMode}}
		}
		if p.match(token.WHILE) {
			while, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			control.While = while
		}
	} else if p.match(token.WHILE) {
		while, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		control = &ast.ControlPart{While: while}
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after loop control"); err != nil {
		return nil, err
	}

	body, err := p.parseBlockUntil(token.OD)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OD, "expected 'od'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after 'od'"); err != nil {
		return nil, err
	}

	doAction := ast.NewDoAction(control, body, start.Line)
	if label.Kind == token.IDENTIFIER {
		return ast.NewLabelledStatement(label, doAction, label.Line), nil
	}
	return doAction, nil
}

func (p *Parser) parseExitAction() (ast.Statement, error) {
	start := p.advance() // 'exit'
	label, err := p.expect(token.IDENTIFIER, "expected label after 'exit'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after exit statement"); err != nil {
		return nil, err
	}
	return ast.NewExitAction(label, start.Line), nil
}

func (p *Parser) parseReturnAction() (ast.Statement, error) {
	start := p.advance() // 'return'
	if p.match(token.SEMICOLON) {
		return ast.NewReturnAction(nil, start.Line), nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return ast.NewReturnAction(value, start.Line), nil
}

func (p *Parser) parseResultAction() (ast.Statement, error) {
	start := p.advance() // 'result'
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after result value"); err != nil {
		return nil, err
	}
	return ast.NewResultAction(value, start.Line), nil
}

var builtinNames = map[token.Kind]bool{
	token.PRINT: true, token.READ: true, token.ABS: true,
	token.NUM: true, token.ASC: true, token.UPPER: true,
	token.LOWER: true, token.LENGTH: true,
}

func (p *Parser) parseBuiltinCallStatement() (ast.Statement, error) {
	name := p.advance()
	args, err := p.parseArgumentList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after builtin call"); err != nil {
		return nil, err
	}
	return ast.NewBuiltinCallStatement(name, args, name.Line), nil
}
