package parser

import (
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/tokens"
)

// parseField parses LET [CONST] name [: Type] [= expr] ;
func (p *Parser) parseField() (*ast.Field, error) {
	start := p.advance().Index
	field := &ast.Field{Constant: p.match(tokens.CONST_KEYWORD)}

	var err error
	if field.Name, err = p.expectName("field name"); err != nil {
		return nil, err
	}
	if field.TypeName, err = p.parseTypeAnnotation(); err != nil {
		return nil, err
	}
	if p.match("=") {
		if field.Value, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	field.Range = p.span(start)
	return field, nil
}

// parseMethod parses DEF name ( [param [: Type] {, param [: Type]}] ) [: Type] DO stmts END
func (p *Parser) parseMethod() (*ast.Method, error) {
	start := p.advance().Index
	method := &ast.Method{
		Parameters:         []string{},
		ParameterTypeNames: []string{},
		Statements:         []ast.Statement{},
	}

	var err error
	if method.Name, err = p.expectName("method name"); err != nil {
		return nil, err
	}
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	if !p.check(")") {
		for {
			name, err := p.expectName("parameter name")
			if err != nil {
				return nil, err
			}
			typeName, err := p.parseTypeAnnotation()
			if err != nil {
				return nil, err
			}
			method.Parameters = append(method.Parameters, name)
			method.ParameterTypeNames = append(method.ParameterTypeNames, typeName)
			if !p.match(",") {
				break
			}
		}
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	if method.ReturnTypeName, err = p.parseTypeAnnotation(); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokens.DO_KEYWORD); err != nil {
		return nil, err
	}
	if method.Statements, err = p.parseBlockUntilEnd(); err != nil {
		return nil, err
	}
	method.Range = p.span(start)
	return method, nil
}

// parseTypeAnnotation parses an optional ": Type", returning "" when absent.
func (p *Parser) parseTypeAnnotation() (string, error) {
	if !p.match(":") {
		return "", nil
	}
	return p.expectName("type name")
}
