package parser

import (
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/tokens"
)

// parseBlockUntilEnd collects statements up to and including END.
func (p *Parser) parseBlockUntilEnd() ([]ast.Statement, error) {
	stmts := []ast.Statement{}
	for !p.match(tokens.END_KEYWORD) {
		if p.isAtEnd() {
			return nil, p.errorf("expected %q", tokens.END_KEYWORD)
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseStmt() (ast.Statement, error) {
	if p.isAtEnd() {
		return nil, p.errorf("expected a statement")
	}
	switch {
	case p.check(tokens.LET_KEYWORD):
		return p.parseDeclarationStmt()
	case p.check(tokens.IF_KEYWORD):
		return p.parseIfStmt()
	case p.check(tokens.FOR_KEYWORD):
		return p.parseForStmt()
	case p.check(tokens.WHILE_KEYWORD):
		return p.parseWhileStmt()
	case p.check(tokens.RETURN_KEYWORD):
		return p.parseReturnStmt()
	}
	start := p.peek().Index
	stmt, err := p.parseExprOrAssign()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		s.Range = p.span(start)
	case *ast.AssignmentStmt:
		s.Range = p.span(start)
	}
	return stmt, nil
}

// parseDeclaration parses LET name [: Type] [= expr] without the terminator.
func (p *Parser) parseDeclaration() (*ast.DeclarationStmt, error) {
	start := p.advance().Index
	decl := &ast.DeclarationStmt{}

	var err error
	if decl.Name, err = p.expectName("variable name"); err != nil {
		return nil, err
	}
	if decl.TypeName, err = p.parseTypeAnnotation(); err != nil {
		return nil, err
	}
	if p.match("=") {
		if decl.Value, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	decl.Range = p.span(start)
	return decl, nil
}

func (p *Parser) parseDeclarationStmt() (ast.Statement, error) {
	decl, err := p.parseDeclaration()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	decl.Range = p.span(decl.Start)
	return decl, nil
}

// parseExprOrAssign parses an expression optionally followed by "= expr",
// without the terminator.
func (p *Parser) parseExprOrAssign() (ast.Statement, error) {
	start := p.peek().Index
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.match("=") {
		return &ast.ExpressionStmt{Expression: expr, Range: p.span(start)}, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentStmt{Receiver: expr, Value: value, Range: p.span(start)}, nil
}

func (p *Parser) parseIfStmt() (ast.Statement, error) {
	start := p.advance().Index
	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokens.DO_KEYWORD); err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Condition: condition, Then: []ast.Statement{}, Else: []ast.Statement{}}
	inElse := false
	for !p.match(tokens.END_KEYWORD) {
		if p.isAtEnd() {
			return nil, p.errorf("expected %q", tokens.END_KEYWORD)
		}
		if !inElse && p.match(tokens.ELSE_KEYWORD) {
			inElse = true
			continue
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		if inElse {
			stmt.Else = append(stmt.Else, s)
		} else {
			stmt.Then = append(stmt.Then, s)
		}
	}
	stmt.Range = p.span(start)
	return stmt, nil
}

// parseForStmt parses FOR ( [init] ; cond ; [incr] ) stmts END
func (p *Parser) parseForStmt() (ast.Statement, error) {
	start := p.advance().Index
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	stmt := &ast.ForStmt{}

	if !p.check(";") {
		var err error
		if p.check(tokens.LET_KEYWORD) {
			stmt.Init, err = p.parseDeclaration()
		} else {
			stmt.Init, err = p.parseExprOrAssign()
		}
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}

	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	stmt.Condition = condition
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}

	if !p.check(")") {
		if stmt.Increment, err = p.parseExprOrAssign(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}

	if stmt.Body, err = p.parseBlockUntilEnd(); err != nil {
		return nil, err
	}
	stmt.Range = p.span(start)
	return stmt, nil
}

func (p *Parser) parseWhileStmt() (ast.Statement, error) {
	start := p.advance().Index
	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokens.DO_KEYWORD); err != nil {
		return nil, err
	}
	body, err := p.parseBlockUntilEnd()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Condition: condition, Body: body, Range: p.span(start)}, nil
}

func (p *Parser) parseReturnStmt() (ast.Statement, error) {
	start := p.advance().Index
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Value: value, Range: p.span(start)}, nil
}
