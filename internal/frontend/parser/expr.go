package parser

import (
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/tokens"
	"github.com/Chris-Enlow/PLC-Project/internal/utils/numeric"
	"github.com/Chris-Enlow/PLC-Project/internal/utils/strings"
)

// Binary precedence levels, lowest first. Every level is left-associative.
var (
	logicalOperators        = []string{"&&", "||"}
	comparisonOperators     = []string{"<", ">", "<=", ">=", "==", "!="}
	additiveOperators       = []string{"+", "-"}
	multiplicativeOperators = []string{"*", "/", "^"}
)

func (p *Parser) parseExpr() (ast.Expression, error) {
	return p.parseLogical()
}

// parseBinary parses one left-associative level whose operands come from next.
func (p *Parser) parseBinary(operators []string, next func() (ast.Expression, error)) (ast.Expression, error) {
	start := p.offset()
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(operators...) {
		op := p.previous().Literal
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Operator: op, Left: left, Right: right, Range: p.span(start)}
	}
	return left, nil
}

func (p *Parser) parseLogical() (ast.Expression, error) {
	return p.parseBinary(logicalOperators, p.parseComparison)
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	return p.parseBinary(comparisonOperators, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.parseBinary(additiveOperators, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.parseBinary(multiplicativeOperators, p.parseSecondary)
}

// parseSecondary parses a primary followed by any chain of .name and
// .name(args) members.
func (p *Parser) parseSecondary() (ast.Expression, error) {
	start := p.offset()
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.match(".") {
		name, err := p.expectName("member name after '.'")
		if err != nil {
			return nil, err
		}
		if p.match("(") {
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.FunctionExpr{Receiver: expr, Name: name, Arguments: args, Range: p.span(start)}
		} else {
			expr = &ast.AccessExpr{Receiver: expr, Name: name, Range: p.span(start)}
		}
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	if p.isAtEnd() {
		return nil, p.errorf("expected an expression")
	}
	tok := p.peek()
	switch tok.Kind {
	case tokens.INTEGER:
		if !numeric.IsInteger(tok.Literal) {
			return nil, p.errorf("malformed integer literal %s", tok.Literal)
		}
		value, err := numeric.StringToBigInt(tok.Literal)
		if err != nil {
			return nil, p.errorf("%v", err)
		}
		return p.literal(value), nil
	case tokens.DECIMAL:
		if !numeric.IsDecimal(tok.Literal) {
			return nil, p.errorf("malformed decimal literal %s", tok.Literal)
		}
		value, err := numeric.StringToDecimal(tok.Literal)
		if err != nil {
			return nil, p.errorf("%v", err)
		}
		return p.literal(value), nil
	case tokens.CHARACTER:
		runes := []rune(strings.Unescape(unquote(tok.Literal)))
		if len(runes) != 1 {
			return nil, p.errorf("malformed character literal")
		}
		return p.literal(runes[0]), nil
	case tokens.STRING:
		return p.literal(strings.Unescape(unquote(tok.Literal))), nil
	case tokens.IDENTIFIER:
		switch tok.Literal {
		case tokens.NIL_KEYWORD:
			return p.literal(nil), nil
		case tokens.TRUE_KEYWORD:
			return p.literal(true), nil
		case tokens.FALSE_KEYWORD:
			return p.literal(false), nil
		}
		return p.parseName()
	}
	if p.check("(") {
		return p.parseGroup()
	}
	return nil, p.errorf("expected an expression")
}

// literal consumes the current token as a literal holding value.
func (p *Parser) literal(value any) ast.Expression {
	start := p.advance().Index
	return &ast.LiteralExpr{Value: value, Range: p.span(start)}
}

func unquote(literal string) string {
	return literal[1 : len(literal)-1]
}

// parseName parses name, name(args) or name[expr].
func (p *Parser) parseName() (ast.Expression, error) {
	start := p.offset()
	name, err := p.expectName("an expression")
	if err != nil {
		return nil, err
	}
	switch {
	case p.match("("):
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionExpr{Name: name, Arguments: args, Range: p.span(start)}, nil
	case p.match("["):
		index, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect("]"); err != nil {
			return nil, err
		}
		return &ast.AccessExpr{Receiver: index, Name: name, Range: p.span(start)}, nil
	}
	return &ast.AccessExpr{Name: name, Range: p.span(start)}, nil
}

// parseArguments parses a comma separated list after "(" through ")".
func (p *Parser) parseArguments() ([]ast.Expression, error) {
	args := []ast.Expression{}
	if p.match(")") {
		return args, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.match(")") {
			return args, nil
		}
		if _, err := p.expect(","); err != nil {
			return nil, err
		}
		if p.check(")") {
			return nil, p.errorf("trailing ',' in argument list")
		}
	}
}

// parseGroup parses "(" binary ")". Only binary expressions may be grouped.
func (p *Parser) parseGroup() (ast.Expression, error) {
	start := p.advance().Index
	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	if _, ok := inner.(*ast.BinaryExpr); !ok {
		return nil, &ParseError{Message: "grouped expression must be a binary expression", At: inner.Loc().Start}
	}
	return &ast.GroupExpr{Inner: inner, Range: p.span(start)}, nil
}
