package parser

import (
	"fmt"

	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/source"
	"github.com/Chris-Enlow/PLC-Project/internal/tokens"
)

// ParseError points at the offending token, or just past the last token when
// the input ended early.
type ParseError struct {
	Message string
	At      int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.At, e.Message)
}

// Parser holds temporary state during parsing of a single token stream.
type Parser struct {
	tokens  []tokens.Token
	current int
}

// Parse builds the Source tree for a whole token stream.
func Parse(toks []tokens.Token) (*ast.Source, error) {
	p := &Parser{tokens: toks}
	return p.parseSource()
}

// ParseExpression parses a single expression that must consume every token.
func ParseExpression(toks []tokens.Token) (ast.Expression, error) {
	p := &Parser{tokens: toks}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		return nil, p.errorf("unexpected token after expression")
	}
	return expr, nil
}

// ParseStatement parses a single statement that must consume every token.
func ParseStatement(toks []tokens.Token) (ast.Statement, error) {
	p := &Parser{tokens: toks}
	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		return nil, p.errorf("unexpected token after statement")
	}
	return stmt, nil
}

func (p *Parser) parseSource() (*ast.Source, error) {
	src := &ast.Source{
		Fields:  []*ast.Field{},
		Methods: []*ast.Method{},
	}
	for !p.isAtEnd() {
		switch {
		case p.peek().Is(tokens.LET_KEYWORD):
			field, err := p.parseField()
			if err != nil {
				return nil, err
			}
			src.Fields = append(src.Fields, field)
		case p.peek().Is(tokens.DEF_KEYWORD):
			method, err := p.parseMethod()
			if err != nil {
				return nil, err
			}
			src.Methods = append(src.Methods, method)
		default:
			return nil, p.errorf("expected LET or DEF at top level")
		}
	}
	if len(p.tokens) > 0 {
		src.Range = source.NewRange(p.tokens[0].Index, p.tokens[len(p.tokens)-1].End())
	}
	return src, nil
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens)
}

// peek returns the current token. It must not be called at the end of input.
func (p *Parser) peek() tokens.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() tokens.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() tokens.Token {
	tok := p.tokens[p.current]
	p.current++
	return tok
}

// check reports whether the current token is the keyword or operator literal.
func (p *Parser) check(literal string) bool {
	return !p.isAtEnd() && p.peek().Is(literal)
}

func (p *Parser) checkKind(kind tokens.TOKEN) bool {
	return !p.isAtEnd() && p.peek().Kind == kind
}

// match consumes the current token when it is one of literals.
func (p *Parser) match(literals ...string) bool {
	for _, literal := range literals {
		if p.check(literal) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(literal string) (tokens.Token, error) {
	if p.check(literal) {
		return p.advance(), nil
	}
	return tokens.Token{}, p.errorf("expected %q", literal)
}

// expectName consumes an identifier that is not a keyword.
func (p *Parser) expectName(what string) (string, error) {
	if !p.checkKind(tokens.IDENTIFIER) || tokens.IsKeyword(p.peek().Literal) {
		return "", p.errorf("expected %s", what)
	}
	return p.advance().Literal, nil
}

// offset is where an error at the current token is reported.
func (p *Parser) offset() int {
	if !p.isAtEnd() {
		return p.peek().Index
	}
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].End()
}

func (p *Parser) errorf(format string, args ...any) *ParseError {
	msg := fmt.Sprintf(format, args...)
	if p.isAtEnd() {
		msg += ", reached end of input"
	} else {
		msg += fmt.Sprintf(", found %q", p.peek().Literal)
	}
	return &ParseError{Message: msg, At: p.offset()}
}

// span is the range from the token at start to the last consumed token.
func (p *Parser) span(start int) source.Range {
	return source.NewRange(start, p.previous().End())
}
