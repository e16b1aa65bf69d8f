package parser

import (
	"errors"
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/lexer"
	"github.com/Chris-Enlow/PLC-Project/internal/source"
	"github.com/Chris-Enlow/PLC-Project/internal/tokens"
)

var astOptions = cmp.Options{
	cmpopts.IgnoreTypes(source.Range{}, ast.Typed{}),
	cmpopts.EquateEmpty(),
	cmp.Comparer(func(x, y *big.Int) bool { return x.Cmp(y) == 0 }),
	cmp.Comparer(func(x, y *apd.Decimal) bool { return x.Cmp(y) == 0 && x.Exponent == y.Exponent }),
}

func lex(t *testing.T, input string) []tokens.Token {
	t.Helper()
	toks, err := lexer.Lex(input)
	require.NoError(t, err)
	return toks
}

func access(name string) *ast.AccessExpr {
	return &ast.AccessExpr{Name: name}
}

func lit(value any) *ast.LiteralExpr {
	return &ast.LiteralExpr{Value: value}
}

func integer(v int64) *ast.LiteralExpr {
	return lit(big.NewInt(v))
}

func binary(op string, left, right ast.Expression) *ast.BinaryExpr {
	return &ast.BinaryExpr{Operator: op, Left: left, Right: right}
}

func TestParseExpressions(t *testing.T) {
	dec, _, _ := apd.NewFromString("2.50")
	tests := []struct {
		name  string
		input string
		want  ast.Expression
	}{
		{"multiplicative binds tighter", "expr1 + expr2 * expr3",
			binary("+", access("expr1"), binary("*", access("expr2"), access("expr3")))},
		{"additive is left associative", "a - b + c",
			binary("+", binary("-", access("a"), access("b")), access("c"))},
		{"power shares multiplicative level", "a ^ b * c",
			binary("*", binary("^", access("a"), access("b")), access("c"))},
		{"comparison below additive", "a + 1 <= b",
			binary("<=", binary("+", access("a"), integer(1)), access("b"))},
		{"logical lowest", "a == b && c != d || e",
			binary("||", binary("&&", binary("==", access("a"), access("b")), binary("!=", access("c"), access("d"))), access("e"))},
		{"group", "(a + b) * c",
			binary("*", &ast.GroupExpr{Inner: binary("+", access("a"), access("b"))}, access("c"))},
		{"keywords", "NIL == TRUE && FALSE",
			binary("&&", binary("==", lit(nil), lit(true)), lit(false))},
		{"decimal keeps scale", "2.50", lit(dec)},
		{"character escape", `'\n'`, lit('\n')},
		{"string escapes", `"a\tb\\"`, lit("a\tb\\")},
		{"call", "f(1, x)",
			&ast.FunctionExpr{Name: "f", Arguments: []ast.Expression{integer(1), access("x")}}},
		{"call without arguments", "f()",
			&ast.FunctionExpr{Name: "f", Arguments: []ast.Expression{}}},
		{"index sugar", "list[i + 1]",
			&ast.AccessExpr{Receiver: binary("+", access("i"), integer(1)), Name: "list"}},
		{"member chain", `"abc".slice(0, 1).length()`,
			&ast.FunctionExpr{
				Receiver: &ast.FunctionExpr{
					Receiver:  lit("abc"),
					Name:      "slice",
					Arguments: []ast.Expression{integer(0), integer(1)},
				},
				Name:      "length",
				Arguments: []ast.Expression{},
			}},
		{"field access chain", "a.b.c",
			&ast.AccessExpr{Receiver: &ast.AccessExpr{Receiver: access("a"), Name: "b"}, Name: "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExpression(lex(t, tt.input))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, astOptions); diff != "" {
				t.Errorf("ParseExpression(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Statement
	}{
		{"expression", "print(x);",
			&ast.ExpressionStmt{Expression: &ast.FunctionExpr{Name: "print", Arguments: []ast.Expression{access("x")}}}},
		{"declaration", "LET name: Integer = 1;",
			&ast.DeclarationStmt{Name: "name", TypeName: "Integer", Value: integer(1)}},
		{"bare declaration", "LET name;", &ast.DeclarationStmt{Name: "name"}},
		{"assignment", "obj.field = 1;",
			&ast.AssignmentStmt{Receiver: &ast.AccessExpr{Receiver: access("obj"), Name: "field"}, Value: integer(1)}},
		{"if else", "IF c DO a(); ELSE b(); c(); END",
			&ast.IfStmt{
				Condition: access("c"),
				Then:      []ast.Statement{&ast.ExpressionStmt{Expression: &ast.FunctionExpr{Name: "a", Arguments: []ast.Expression{}}}},
				Else: []ast.Statement{
					&ast.ExpressionStmt{Expression: &ast.FunctionExpr{Name: "b", Arguments: []ast.Expression{}}},
					&ast.ExpressionStmt{Expression: &ast.FunctionExpr{Name: "c", Arguments: []ast.Expression{}}},
				},
			}},
		{"for", "FOR (LET i = 0; i < 5; i = i + 1) print(i); END",
			&ast.ForStmt{
				Init:      &ast.DeclarationStmt{Name: "i", Value: integer(0)},
				Condition: binary("<", access("i"), integer(5)),
				Increment: &ast.AssignmentStmt{Receiver: access("i"), Value: binary("+", access("i"), integer(1))},
				Body:      []ast.Statement{&ast.ExpressionStmt{Expression: &ast.FunctionExpr{Name: "print", Arguments: []ast.Expression{access("i")}}}},
			}},
		{"for without clauses", "FOR (; go;) END",
			&ast.ForStmt{Condition: access("go"), Body: []ast.Statement{}}},
		{"while", "WHILE i < 3 DO i = i + 1; END",
			&ast.WhileStmt{
				Condition: binary("<", access("i"), integer(3)),
				Body:      []ast.Statement{&ast.AssignmentStmt{Receiver: access("i"), Value: binary("+", access("i"), integer(1))}},
			}},
		{"return", "RETURN 0;", &ast.ReturnStmt{Value: integer(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatement(lex(t, tt.input))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, astOptions); diff != "" {
				t.Errorf("ParseStatement(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseSource(t *testing.T) {
	input := `
LET CONST limit: Integer = 10;
LET name = "x";
DEF add(a: Integer, b): Integer DO
    RETURN a + b;
END
DEF main() DO
END`
	got, err := Parse(lex(t, input))
	require.NoError(t, err)

	want := &ast.Source{
		Fields: []*ast.Field{
			{Name: "limit", Constant: true, TypeName: "Integer", Value: integer(10)},
			{Name: "name", Value: lit("x")},
		},
		Methods: []*ast.Method{
			{
				Name:               "add",
				Parameters:         []string{"a", "b"},
				ParameterTypeNames: []string{"Integer", ""},
				ReturnTypeName:     "Integer",
				Statements:         []ast.Statement{&ast.ReturnStmt{Value: binary("+", access("a"), access("b"))}},
			},
			{Name: "main", Parameters: []string{}, ParameterTypeNames: []string{}, Statements: []ast.Statement{}},
		},
	}
	if diff := cmp.Diff(want, got, astOptions); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRanges(t *testing.T) {
	src, err := Parse(lex(t, "LET x = 1 + 2;"))
	require.NoError(t, err)
	require.Len(t, src.Fields, 1)
	assert.Equal(t, source.NewRange(0, 14), src.Fields[0].Range)
	assert.Equal(t, source.NewRange(8, 13), src.Fields[0].Value.Loc())
}

func TestParseEmpty(t *testing.T) {
	src, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, src.Fields)
	assert.Empty(t, src.Methods)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		parse func([]tokens.Token) error
		input string
		at    int
	}{
		{"missing semicolon at end", parseSource, "LET x = 1", 9},
		{"missing semicolon", parseStatement, "f() g();", 4},
		{"missing END", parseSource, "DEF main() DO", 13},
		{"missing DO", parseSource, "DEF main() RETURN 0; END", 11},
		{"top level statement", parseSource, "print(1);", 0},
		{"trailing comma", parseStatement, "print(1,);", 8},
		{"unclosed call", parseStatement, "print(1;", 7},
		{"non binary group", parseExpression, "(x)", 1},
		{"keyword as name", parseSource, "LET END = 1;", 4},
		{"missing expression", parseExpression, "", 0},
		{"dangling operator", parseExpression, "1 +", 3},
		{"signed literal after name", parseStatement, "x -1;", 2},
		{"for missing condition", parseStatement, "FOR (;;) END", 6},
		{"unclosed index", parseExpression, "a[1", 3},
		{"bad member", parseExpression, "a.1", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse(lex(t, tt.input))
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
			assert.Equal(t, tt.at, parseErr.At, parseErr.Message)
		})
	}
}

func parseSource(toks []tokens.Token) error {
	_, err := Parse(toks)
	return err
}

func parseStatement(toks []tokens.Token) error {
	_, err := ParseStatement(toks)
	return err
}

func parseExpression(toks []tokens.Token) error {
	_, err := ParseExpression(toks)
	return err
}

func TestMalformedNumberTokens(t *testing.T) {
	tests := []struct {
		name string
		tok  tokens.Token
		want string
	}{
		{"leading zero integer", tokens.NewToken(tokens.INTEGER, "007", 3), "malformed integer literal 007"},
		{"decimal without fraction", tokens.NewToken(tokens.DECIMAL, "1.", 3), "malformed decimal literal 1."},
		{"integer spelled as decimal", tokens.NewToken(tokens.INTEGER, "1.5", 3), "malformed integer literal 1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpression([]tokens.Token{tt.tok})
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
			assert.Contains(t, parseErr.Message, tt.want)
			assert.Equal(t, 3, parseErr.At)
		})
	}
}
