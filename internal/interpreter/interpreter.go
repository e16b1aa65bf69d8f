package interpreter

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-stack/stack"
	"github.com/inconshreveable/log15"

	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/source"
	"github.com/Chris-Enlow/PLC-Project/internal/types"
)

// DefaultMaxCallDepth bounds nested user function calls.
const DefaultMaxCallDepth = 4096

// Kind classifies a RuntimeError.
type Kind int

const (
	Failure Kind = iota
	CallDepthExceeded
)

// RuntimeError aborts evaluation. At is the range of the node being
// evaluated when it occurred.
type RuntimeError struct {
	Kind    Kind
	Message string
	At      source.Range
}

func (e *RuntimeError) Error() string {
	return "runtime error: " + e.Message
}

// completion is the result of executing a statement. A returning completion
// unwinds to the nearest method invocation.
type completion struct {
	returning bool
	value     environment.Object
}

var normal = completion{}

type Interpreter struct {
	scope        *environment.Scope
	depth        int
	maxCallDepth int
	log          log15.Logger
}

type Option func(*Interpreter)

// WithMaxCallDepth sets the recursion limit. Values below one keep the default.
func WithMaxCallDepth(depth int) Option {
	return func(in *Interpreter) {
		if depth > 0 {
			in.maxCallDepth = depth
		}
	}
}

func WithLogger(logger log15.Logger) Option {
	return func(in *Interpreter) {
		in.log = logger
	}
}

// New returns an interpreter whose root scope is a child of builtins. A nil
// builtins gets a print primitive that discards its output.
func New(builtins *environment.Scope, opts ...Option) *Interpreter {
	if builtins == nil {
		builtins = environment.NewBuiltins(io.Discard)
	}
	in := &Interpreter{
		scope:        environment.NewScope(builtins),
		maxCallDepth: DefaultMaxCallDepth,
		log:          log15.New("module", "interpreter"),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Interpret runs a whole program and returns the value of main().
func Interpret(src *ast.Source, builtins *environment.Scope, opts ...Option) (environment.Object, error) {
	return New(builtins, opts...).Run(src)
}

func (in *Interpreter) Scope() *environment.Scope {
	return in.scope
}

// Run defines every field and method in order, then invokes main/0.
func (in *Interpreter) Run(src *ast.Source) (result environment.Object, err error) {
	defer in.recoverPanic(src, &err)

	for _, field := range src.Fields {
		if err := in.DefineField(field); err != nil {
			return environment.NIL, err
		}
	}
	for _, method := range src.Methods {
		if err := in.DefineMethod(method); err != nil {
			return environment.NIL, err
		}
	}
	main, ok := in.scope.LookupFunction("main", 0)
	if !ok {
		return environment.NIL, errorf(src, "undefined function 'main/0'")
	}
	result, err = main.Invoke(nil)
	if err != nil {
		return environment.NIL, wrap(src, err)
	}
	in.log.Debug("Program finished", "result", result)
	return result, nil
}

// recoverPanic converts a host panic into a RuntimeError.
func (in *Interpreter) recoverPanic(node ast.Node, err *error) {
	r := recover()
	if r == nil {
		return
	}
	in.log.Debug("Recovered host panic", "panic", r, "stack", fmt.Sprintf("%+v", stack.Trace().TrimRuntime()))
	in.depth = 0
	*err = errorf(node, "internal error: %v", r)
}

func errorf(node ast.Node, format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), At: node.Loc()}
}

// wrap attaches node to an error from the environment. RuntimeErrors from
// nested calls keep their original position.
func wrap(node ast.Node, err error) error {
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return runtimeErr
	}
	return errorf(node, "%v", err)
}

// enterScope pushes a child scope and returns the function that pops it.
func (in *Interpreter) enterScope() func() {
	in.scope = environment.NewScope(in.scope)
	return func() {
		in.scope = in.scope.Parent()
	}
}

// DefineField evaluates the initializer, if any, and binds the field.
func (in *Interpreter) DefineField(field *ast.Field) (err error) {
	defer in.recoverPanic(field, &err)
	value := environment.NIL
	if field.Value != nil {
		v, err := in.evaluate(field.Value)
		if err != nil {
			return err
		}
		value = v
	}
	t := types.ANY
	if field.Variable != nil {
		t = field.Variable.Type
	}
	if err := in.scope.DefineVariable(environment.NewVariable(field.Name, t, field.Constant, value)); err != nil {
		return errorf(field, "%v", err)
	}
	return nil
}

// DefineMethod binds a closure over the current scope. Each invocation runs
// the body in a fresh child of that scope.
func (in *Interpreter) DefineMethod(method *ast.Method) error {
	defining := in.scope
	params := environment.AnyParameters(len(method.Parameters))
	returns := types.ANY
	if method.Function != nil {
		params = method.Function.ParameterTypes
		returns = method.Function.ReturnType
	}
	fn := environment.NewFunction(method.Name, params, returns, func(args []environment.Object) (environment.Object, error) {
		return in.invoke(method, params, defining, args)
	})
	if err := in.scope.DefineFunction(fn); err != nil {
		return errorf(method, "%v", err)
	}
	return nil
}

// invoke binds each argument under its declared parameter type.
func (in *Interpreter) invoke(method *ast.Method, params []types.Type, defining *environment.Scope, args []environment.Object) (environment.Object, error) {
	if in.depth >= in.maxCallDepth {
		return environment.NIL, &RuntimeError{Kind: CallDepthExceeded, Message: "maximum call depth exceeded", At: method.Loc()}
	}
	in.depth++
	caller := in.scope
	in.scope = environment.NewScope(defining)
	defer func() {
		in.scope = caller
		in.depth--
	}()

	for i, name := range method.Parameters {
		if err := in.scope.DefineVariable(environment.NewVariable(name, params[i], false, args[i])); err != nil {
			return environment.NIL, errorf(method, "%v", err)
		}
	}
	done, err := in.executeAll(method.Statements)
	if err != nil {
		return environment.NIL, err
	}
	if done.returning {
		return done.value, nil
	}
	return environment.NIL, nil
}
