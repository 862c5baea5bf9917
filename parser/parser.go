// Package parser implements a recursive-descent parser that turns a Lya
// token stream into an *ast.Program.
package parser

import (
	"fmt"

	"lya/ast"
	"lya/token"
)

// ParseError reports a syntax error at a specific token.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ERROR (line %d): %s", e.Line, e.Message)
}

// Parser is a hand-written, backtrack-free recursive-descent parser. Its
// position is always at the next unconsumed token, mirroring the teacher's
// parser/parser.go discipline.
type Parser struct {
	tokens   []token.Token
	position int
}

// New creates a Parser over a complete token stream (as produced by
// lexer.Scan, including the trailing EOF token).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.position]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.position-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return kind == token.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) checkAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			return true
		}
	}
	return false
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.position++
	}
	return p.previous()
}

func (p *Parser) match(kinds ...token.Kind) bool {
	if p.checkAny(kinds...) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, &ParseError{Line: p.peek().Line, Message: message}
}

// Parse consumes the whole token stream and returns the resulting program,
// or the first syntax error encountered.
func (p *Parser) Parse() (*ast.Program, error) {
	var statements []ast.Statement
	line := p.peek().Line
	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return ast.NewProgram(statements, line), nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.check(token.DCL):
		return p.parseDeclarationStatement()
	case p.check(token.SYNONYM):
		return p.parseSynonymStatement()
	case p.check(token.MODE):
		return p.parseNewmodeStatement()
	case p.check(token.IF):
		return p.parseIfAction()
	case p.check(token.DO):
		return p.parseDoAction(token.Token{})
	case p.check(token.EXIT):
		return p.parseExitAction()
	case p.check(token.RETURN):
		return p.parseReturnAction()
	case p.check(token.RESULT):
		return p.parseResultAction()
	case p.check(token.PRINT), p.check(token.READ):
		return p.parseBuiltinCallStatement()
	case p.check(token.IDENTIFIER):
		return p.parseIdentifierLedStatement()
	}
	return nil, &ParseError{Line: p.peek().Line, Message: fmt.Sprintf("unexpected token %s", p.peek().Kind)}
}

// parseIdentifierLedStatement disambiguates between a label, a procedure
// declaration, a procedure call, and an assignment, all of which start with
// an IDENTIFIER.
func (p *Parser) parseIdentifierLedStatement() (ast.Statement, error) {
	name := p.advance()
	line := name.Line

	if p.match(token.COLON) {
		if p.check(token.PROC) {
			return p.parseProcedureStatement(name)
		}
		if p.check(token.DO) {
			return p.parseDoAction(name)
		}
		return nil, &ParseError{Line: p.peek().Line, Message: "expected 'proc' or 'do' after label"}
	}

	if p.check(token.LPAREN) {
		args, err := p.parseArgumentList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON, "expected ';' after procedure call"); err != nil {
			return nil, err
		}
		return ast.NewProcedureCallStatement(name, args, line), nil
	}

	loc, err := p.parseLocationTail(ast.NewIdentifierLocation(name, line))
	if err != nil {
		return nil, err
	}
	return p.parseAssignmentAction(loc, line)
}

func (p *Parser) parseAssignmentAction(target ast.Location, line int) (ast.Statement, error) {
	op := p.advance()
	switch op.Kind {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN, token.PERCENT_ASSIGN:
	default:
		return nil, &ParseError{Line: op.Line, Message: "expected assignment operator"}
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after assignment"); err != nil {
		return nil, err
	}
	return ast.NewAssignmentAction(target, op, value, line), nil
}

func (p *Parser) parseArgumentList() ([]ast.Expression, error) {
	if _, err := p.expect(token.LPAREN, "expected '('"); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if !p.check(token.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(token.RPAREN, "expected ')'"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseIdentifierList() ([]token.Token, error) {
	var names []token.Token
	for {
		name, err := p.expect(token.IDENTIFIER, "expected identifier")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !p.match(token.COMMA) {
			break
		}
	}
	return names, nil
}
