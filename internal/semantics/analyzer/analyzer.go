package analyzer

import (
	"fmt"
	"io"

	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/source"
	"github.com/Chris-Enlow/PLC-Project/internal/types"
)

// Kind classifies an AnalysisError.
type Kind int

const (
	InvalidOperation Kind = iota
	UndefinedSymbol
	RedeclaredSymbol
	TypeMismatch
	InvalidStatement
	InvalidAssignment
	ConstantReassignment
	InvalidReturn
	InvalidType
	InvalidDeclaration
	LiteralOutOfRange
	MissingEntryPoint
)

// AnalysisError is the first semantic error found. At is the range of the
// offending node.
type AnalysisError struct {
	Kind    Kind
	Message string
	At      source.Range
}

func (e *AnalysisError) Error() string {
	return "analysis error: " + e.Message
}

// Analyzer resolves names and types, annotating the tree in place. It keeps
// its scope between calls so a REPL can analyze one declaration at a time.
type Analyzer struct {
	scope  *environment.Scope
	method *ast.Method
}

// New returns an analyzer whose root scope is a child of builtins. A nil
// builtins gets a print primitive that discards its output.
func New(builtins *environment.Scope) *Analyzer {
	if builtins == nil {
		builtins = environment.NewBuiltins(io.Discard)
	}
	return &Analyzer{scope: environment.NewScope(builtins)}
}

// Analyze checks a whole program, including its entry point.
func Analyze(src *ast.Source, builtins *environment.Scope) error {
	return New(builtins).AnalyzeSource(src)
}

// Scope is the analyzer's current scope.
func (a *Analyzer) Scope() *environment.Scope {
	return a.scope
}

// enterScope pushes a child scope and returns the function that pops it.
func (a *Analyzer) enterScope() func() {
	a.scope = environment.NewScope(a.scope)
	return func() {
		a.scope = a.scope.Parent()
	}
}

func errorf(node ast.Node, kind Kind, format string, args ...any) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: fmt.Sprintf(format, args...), At: node.Loc()}
}

// require wraps an assignability failure with the node it occurred at.
func requireAssignable(node ast.Node, target, actual types.Type) error {
	if err := types.RequireAssignable(target, actual); err != nil {
		return &AnalysisError{Kind: TypeMismatch, Message: err.Error(), At: node.Loc()}
	}
	return nil
}

// AnalyzeSource analyzes every field, then every method, then checks that
// main/0 exists and returns an Integer. All method signatures are bound
// before any body is analyzed, so methods may call each other in any order.
func (a *Analyzer) AnalyzeSource(src *ast.Source) error {
	for _, field := range src.Fields {
		if err := a.AnalyzeField(field); err != nil {
			return err
		}
	}
	for _, method := range src.Methods {
		if err := a.declareMethod(method); err != nil {
			return err
		}
	}
	for _, method := range src.Methods {
		if err := a.analyzeMethodBody(method); err != nil {
			return err
		}
	}
	main, ok := a.scope.LookupFunction("main", 0)
	if !ok {
		return errorf(src, MissingEntryPoint, "undefined function 'main/0'")
	}
	if err := types.RequireAssignable(types.INTEGER, main.ReturnType); err != nil {
		return errorf(src, MissingEntryPoint, "main must return Integer: %v", err)
	}
	return nil
}

// resolveTypeName maps an optional type name; absent names resolve to fallback.
func resolveTypeName(node ast.Node, name string, fallback types.Type) (types.Type, error) {
	if name == "" {
		return fallback, nil
	}
	t, err := types.Lookup(name)
	if err != nil {
		return types.ANY, errorf(node, InvalidType, "%v", err)
	}
	return t, nil
}

// declare resolves the type of a field or local from its type name and
// initializer and binds it in the current scope.
func (a *Analyzer) declare(node ast.Node, name, typeName string, value ast.Expression, constant bool) (*environment.Variable, error) {
	if typeName == "" && value == nil {
		return nil, errorf(node, InvalidDeclaration, "declaration of '%s' needs a type or an initial value", name)
	}
	if constant && value == nil {
		return nil, errorf(node, InvalidDeclaration, "constant '%s' must be initialized", name)
	}
	var t types.Type
	if value != nil {
		if err := a.AnalyzeExpression(value); err != nil {
			return nil, err
		}
		t = ast.TypeOf(value)
	}
	if typeName != "" {
		declared, err := resolveTypeName(node, typeName, types.ANY)
		if err != nil {
			return nil, err
		}
		if value != nil {
			if err := requireAssignable(value, declared, t); err != nil {
				return nil, err
			}
		}
		t = declared
	}
	v := environment.NewVariable(name, t, constant, environment.NIL)
	if err := a.scope.DefineVariable(v); err != nil {
		return nil, errorf(node, RedeclaredSymbol, "%v", err)
	}
	return v, nil
}

func (a *Analyzer) AnalyzeField(field *ast.Field) error {
	v, err := a.declare(field, field.Name, field.TypeName, field.Value, field.Constant)
	if err != nil {
		return err
	}
	field.Variable = v
	return nil
}

// AnalyzeMethod registers the method before its body so it may recurse. A
// body that fails analysis takes the registration with it.
func (a *Analyzer) AnalyzeMethod(method *ast.Method) error {
	if err := a.declareMethod(method); err != nil {
		return err
	}
	if err := a.analyzeMethodBody(method); err != nil {
		a.scope.RemoveFunction(method.Name, len(method.Parameters))
		method.Function = nil
		return err
	}
	return nil
}

// declareMethod resolves the signature and binds it in the current scope.
func (a *Analyzer) declareMethod(method *ast.Method) error {
	params := make([]types.Type, len(method.Parameters))
	for i := range method.Parameters {
		typeName := ""
		if i < len(method.ParameterTypeNames) {
			typeName = method.ParameterTypeNames[i]
		}
		t, err := resolveTypeName(method, typeName, types.ANY)
		if err != nil {
			return err
		}
		params[i] = t
	}
	returns, err := resolveTypeName(method, method.ReturnTypeName, types.ANY)
	if err != nil {
		return err
	}

	fn := environment.NewFunction(method.Name, params, returns, nil)
	if err := a.scope.DefineFunction(fn); err != nil {
		return errorf(method, RedeclaredSymbol, "%v", err)
	}
	method.Function = fn
	return nil
}

func (a *Analyzer) analyzeMethodBody(method *ast.Method) error {
	defer a.enterScope()()
	for i, name := range method.Parameters {
		v := environment.NewVariable(name, method.Function.ParameterTypes[i], false, environment.NIL)
		if err := a.scope.DefineVariable(v); err != nil {
			return errorf(method, RedeclaredSymbol, "%v", err)
		}
	}

	previous := a.method
	a.method = method
	defer func() { a.method = previous }()
	return a.analyzeStatements(method.Statements)
}
