package javagen

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/types"
	str "github.com/Chris-Enlow/PLC-Project/internal/utils/strings"
)

const DefaultClassName = "Main"

// Generator renders an analyzed program as a single Java class.
type Generator struct {
	buf       strings.Builder
	indent    int
	indentStr string
	className string
	// void is set while writing a method that returns Nil.
	void bool
}

type Option func(*Generator)

// WithClassName names the generated class. Empty names keep the default.
func WithClassName(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.className = name
		}
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{
		indentStr: "    ",
		className: DefaultClassName,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders src, which must already have been analyzed.
func Generate(src *ast.Source, opts ...Option) (string, error) {
	return New(opts...).Generate(src)
}

// GenerateFile renders src and writes it to outputPath, creating parent
// directories as needed.
func GenerateFile(src *ast.Source, outputPath string, opts ...Option) error {
	code, err := Generate(src, opts...)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(code), 0644)
}

func (g *Generator) Generate(src *ast.Source) (out string, err error) {
	// unresolved nodes abort generation through generationError
	defer func() {
		if r := recover(); r != nil {
			genErr, ok := r.(generationError)
			if !ok {
				panic(r)
			}
			err = genErr
		}
	}()

	g.buf.Reset()
	g.indent = 0
	g.write("public class %s {", g.className)
	g.newline(0)

	g.indent++
	if len(src.Fields) > 0 {
		for _, field := range src.Fields {
			g.newline(g.indent)
			g.generateField(field)
		}
		g.newline(0)
	}

	g.newline(g.indent)
	g.write("public static void main(String[] args) {")
	g.newline(g.indent + 1)
	g.write("System.exit(new %s().main());", g.className)
	g.newline(g.indent)
	g.write("}")
	g.newline(0)

	for _, method := range src.Methods {
		g.newline(g.indent)
		g.generateMethod(method)
		g.newline(0)
	}
	g.indent--

	g.newline(0)
	g.write("}")
	return g.buf.String(), nil
}

type generationError struct {
	message string
}

func (e generationError) Error() string {
	return "codegen: " + e.message
}

func (g *Generator) fail(format string, args ...any) {
	panic(generationError{message: fmt.Sprintf(format, args...)})
}

func (g *Generator) generateField(field *ast.Field) {
	if field.Constant {
		g.write("final ")
	}
	t := types.ANY
	if field.Variable != nil {
		t = field.Variable.Type
	} else if field.TypeName != "" {
		t = g.lookupType(field.TypeName)
	}
	g.write("%s %s", javaType(t), field.Name)
	if field.Value != nil {
		g.write(" = ")
		g.generateExpr(field.Value)
	}
	g.write(";")
}

func (g *Generator) generateMethod(method *ast.Method) {
	if method.Function == nil {
		g.fail("method '%s' was not analyzed", method.Name)
	}
	ret := g.returnType(method)
	g.write("%s %s(", ret, method.Name)
	for i, param := range method.Parameters {
		if i > 0 {
			g.write(", ")
		}
		g.write("%s %s", javaType(method.Function.ParameterTypes[i]), param)
	}
	g.write(") ")
	g.void = ret == "void"
	defer func() { g.void = false }()

	// falling off the end yields NIL
	var tail string
	if (ret == "Object" || ret == "String") && completesNormally(method.Statements) {
		tail = "return null;"
	}
	g.generateBody(method.Statements, tail)
}

// returnType maps a Nil return type to void. An omitted return type is Any.
func (g *Generator) returnType(method *ast.Method) string {
	if method.Function.ReturnType == types.NIL {
		return "void"
	}
	return javaType(method.Function.ReturnType)
}

// completesNormally follows javac's reachability rules for the statements
// the language has. Loops have no break, so a loop on a literal TRUE never
// completes.
func completesNormally(stmts []ast.Statement) bool {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ReturnStmt:
			return false
		case *ast.IfStmt:
			if len(s.Else) > 0 && !completesNormally(s.Then) && !completesNormally(s.Else) {
				return false
			}
		case *ast.WhileStmt:
			if isTrue(s.Condition) {
				return false
			}
		case *ast.ForStmt:
			if isTrue(s.Condition) {
				return false
			}
		}
	}
	return true
}

func isTrue(expr ast.Expression) bool {
	lit, ok := expr.(*ast.LiteralExpr)
	if !ok {
		return false
	}
	b, ok := lit.Value.(bool)
	return ok && b
}

func (g *Generator) lookupType(name string) types.Type {
	t, err := types.Lookup(name)
	if err != nil {
		g.fail("%v", err)
	}
	return t
}

// generateBlock writes a brace-delimited body. The opening brace continues the
// current line; an empty body is written as {}.
func (g *Generator) generateBlock(stmts []ast.Statement) {
	g.generateBody(stmts, "")
}

// generateBody is generateBlock with an optional final line.
func (g *Generator) generateBody(stmts []ast.Statement, tail string) {
	if len(stmts) == 0 && tail == "" {
		g.write("{}")
		return
	}
	g.write("{")
	g.indent++
	for _, stmt := range stmts {
		g.newline(g.indent)
		g.generateStmt(stmt)
	}
	if tail != "" {
		g.newline(g.indent)
		g.write(tail)
	}
	g.indent--
	g.newline(g.indent)
	g.write("}")
}

func (g *Generator) generateStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		g.generateExpr(s.Expression)
		g.write(";")
	case *ast.DeclarationStmt:
		g.generateDeclaration(s)
		g.write(";")
	case *ast.AssignmentStmt:
		g.generateAssignment(s)
		g.write(";")
	case *ast.IfStmt:
		g.write("if (")
		g.generateExpr(s.Condition)
		g.write(") ")
		g.generateBlock(s.Then)
		if len(s.Else) > 0 {
			g.write(" else ")
			g.generateBlock(s.Else)
		}
	case *ast.ForStmt:
		g.generateFor(s)
	case *ast.WhileStmt:
		g.write("while (")
		g.generateExpr(s.Condition)
		g.write(") ")
		g.generateBlock(s.Body)
	case *ast.ReturnStmt:
		g.generateReturn(s)
	default:
		g.fail("unsupported statement %T", stmt)
	}
}

// generateReturn drops the value in a void method, keeping a call for its
// effects.
func (g *Generator) generateReturn(s *ast.ReturnStmt) {
	if !g.void {
		g.write("return ")
		g.generateExpr(s.Value)
		g.write(";")
		return
	}
	if call, ok := s.Value.(*ast.FunctionExpr); ok {
		g.generateExpr(call)
		g.write("; ")
	}
	g.write("return;")
}

func (g *Generator) generateDeclaration(s *ast.DeclarationStmt) {
	t := types.ANY
	switch {
	case s.Variable != nil:
		t = s.Variable.Type
	case s.TypeName != "":
		t = g.lookupType(s.TypeName)
	case s.Value != nil:
		t = ast.TypeOf(s.Value)
	}
	g.write("%s %s", javaType(t), s.Name)
	if s.Value != nil {
		g.write(" = ")
		g.generateExpr(s.Value)
	}
}

func (g *Generator) generateAssignment(s *ast.AssignmentStmt) {
	g.generateExpr(s.Receiver)
	g.write(" = ")
	g.generateExpr(s.Value)
}

// generateFor writes the three clauses in one header. Init and increment
// carry no terminator of their own.
func (g *Generator) generateFor(s *ast.ForStmt) {
	g.write("for ( ")
	if s.Init != nil {
		g.generateClause(s.Init)
	}
	g.write("; ")
	g.generateExpr(s.Condition)
	g.write(";")
	if s.Increment != nil {
		g.write(" ")
		g.generateClause(s.Increment)
	}
	g.write(" ) ")
	g.generateBlock(s.Body)
}

func (g *Generator) generateClause(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.DeclarationStmt:
		g.generateDeclaration(s)
	case *ast.AssignmentStmt:
		g.generateAssignment(s)
	case *ast.ExpressionStmt:
		g.generateExpr(s.Expression)
	default:
		g.fail("unsupported loop clause %T", stmt)
	}
}

func (g *Generator) generateExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		g.generateLiteral(e)
	case *ast.GroupExpr:
		g.write("(")
		g.generateExpr(e.Inner)
		g.write(")")
	case *ast.BinaryExpr:
		g.generateBinary(e)
	case *ast.AccessExpr:
		if e.Receiver != nil {
			g.generateExpr(e.Receiver)
			g.write(".")
		}
		name := e.Name
		if e.Variable != nil && e.Variable.HostName != "" {
			name = e.Variable.HostName
		}
		g.write("%s", name)
	case *ast.FunctionExpr:
		g.generateCall(e)
	default:
		g.fail("unsupported expression %T", expr)
	}
}

func (g *Generator) generateLiteral(lit *ast.LiteralExpr) {
	switch v := lit.Value.(type) {
	case nil:
		g.write("null")
	case bool:
		g.write("%t", v)
	case *big.Int:
		g.write("%s", v.String())
	case *apd.Decimal:
		g.write("%s", v.Text('f'))
	case rune:
		g.write("%s", str.QuoteRune(v))
	case string:
		g.write("%s", str.Quote(v))
	default:
		g.fail("unsupported literal %T", lit.Value)
	}
}

func (g *Generator) generateBinary(e *ast.BinaryExpr) {
	if e.Operator == "^" {
		if ast.TypeOf(e) == types.INTEGER {
			g.write("(int) ")
		}
		g.write("Math.pow(")
		g.generateExpr(e.Left)
		g.write(", ")
		g.generateExpr(e.Right)
		g.write(")")
		return
	}
	g.generateExpr(e.Left)
	g.write(" %s ", e.Operator)
	g.generateExpr(e.Right)
}

func (g *Generator) generateCall(call *ast.FunctionExpr) {
	if call.Function == nil {
		g.fail("call to '%s' was not analyzed", call.Name)
	}
	if call.Receiver != nil {
		g.generateExpr(call.Receiver)
		g.write(".")
	}
	g.write("%s(", call.Function.HostName)
	for i, arg := range call.Arguments {
		if i > 0 {
			g.write(", ")
		}
		g.generateExpr(arg)
	}
	g.write(")")
}

// javaType maps a resolved type to its Java spelling. Any and Comparable
// have no runtime values of their own and become Object.
func javaType(t types.Type) string {
	if !t.IsConcrete() {
		return "Object"
	}
	switch t {
	case types.INTEGER:
		return "int"
	case types.DECIMAL:
		return "double"
	case types.STRING:
		return "String"
	case types.BOOLEAN:
		return "boolean"
	case types.CHARACTER:
		return "char"
	}
	return "Object"
}

func (g *Generator) write(format string, args ...interface{}) {
	g.buf.WriteString(fmt.Sprintf(format, args...))
}

// newline ends the current line and indents the next one by depth levels.
func (g *Generator) newline(depth int) {
	g.buf.WriteString("\n")
	for i := 0; i < depth; i++ {
		g.buf.WriteString(g.indentStr)
	}
}
