package environment

import (
	"fmt"

	"github.com/Chris-Enlow/PLC-Project/internal/types"
)

// Variable is a named binding. The value cell is shared by every access to
// the binding; constness is enforced by analysis, not here.
type Variable struct {
	Name     string
	HostName string
	Type     types.Type
	Constant bool
	Value    Object
}

func NewVariable(name string, t types.Type, constant bool, value Object) *Variable {
	return &Variable{
		Name:     name,
		HostName: name,
		Type:     t,
		Constant: constant,
		Value:    value,
	}
}

// Callable is the body of a function, user defined or host provided.
type Callable func(args []Object) (Object, error)

// Function is identified by its name and arity. HostName is the name the Java
// generator emits for calls to it.
type Function struct {
	Name           string
	HostName       string
	ParameterTypes []types.Type
	ReturnType     types.Type
	Call           Callable
}

func NewFunction(name string, parameters []types.Type, returns types.Type, call Callable) *Function {
	return &Function{
		Name:           name,
		HostName:       name,
		ParameterTypes: parameters,
		ReturnType:     returns,
		Call:           call,
	}
}

// AnyParameters is arity copies of ANY.
func AnyParameters(arity int) []types.Type {
	params := make([]types.Type, arity)
	for i := range params {
		params[i] = types.ANY
	}
	return params
}

func (f *Function) Arity() int {
	return len(f.ParameterTypes)
}

// Invoke checks the argument count and calls the body.
func (f *Function) Invoke(args []Object) (Object, error) {
	if len(args) != f.Arity() {
		return NIL, fmt.Errorf("function '%s' expects %d arguments, received %d", f.Name, f.Arity(), len(args))
	}
	if f.Call == nil {
		return NIL, fmt.Errorf("function '%s' has no body", f.Name)
	}
	return f.Call(args)
}

func (f *Function) String() string {
	return fmt.Sprintf("%s%v: %s", f.Name, f.ParameterTypes, f.ReturnType)
}
