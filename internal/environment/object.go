package environment

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/Chris-Enlow/PLC-Project/internal/types"
)

// Object is a boxed runtime value: one of nil, bool, *big.Int, *apd.Decimal,
// rune or string, plus the members reachable through it.
type Object struct {
	Value   any
	members *Scope
}

// NIL is the nil sentinel.
var NIL = Object{}

// Create boxes a host value, attaching the members of its type.
func Create(value any) Object {
	switch v := value.(type) {
	case nil:
		return NIL
	case int:
		value = big.NewInt(int64(v))
	case int64:
		value = big.NewInt(v)
	case bool, *big.Int, *apd.Decimal, rune, string:
	default:
		panic(fmt.Sprintf("cannot box value of type %T", value))
	}
	o := Object{Value: value}
	o.members = Members(o.Type())
	return o
}

// Type is the runtime type of the boxed value.
func (o Object) Type() types.Type {
	switch o.Value.(type) {
	case bool:
		return types.BOOLEAN
	case *big.Int:
		return types.INTEGER
	case *apd.Decimal:
		return types.DECIMAL
	case rune:
		return types.CHARACTER
	case string:
		return types.STRING
	}
	return types.NIL
}

func (o Object) IsNil() bool {
	return o.Value == nil
}

func (o Object) String() string {
	switch v := o.Value.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case *big.Int:
		return v.String()
	case *apd.Decimal:
		return v.String()
	case rune:
		return string(v)
	case string:
		return v
	}
	return fmt.Sprint(o.Value)
}

// Equals is value equality. Values of different runtime types are unequal.
func (o Object) Equals(other Object) bool {
	switch l := o.Value.(type) {
	case nil:
		return other.Value == nil
	case *big.Int:
		r, ok := other.Value.(*big.Int)
		return ok && l.Cmp(r) == 0
	case *apd.Decimal:
		r, ok := other.Value.(*apd.Decimal)
		return ok && l.Cmp(r) == 0
	default:
		return o.Type() == other.Type() && o.Value == other.Value
	}
}

// Compare orders o against other, which must hold the same runtime type.
func (o Object) Compare(other Object) (int, error) {
	if o.IsNil() {
		return 0, fmt.Errorf("expected a comparable value, received %s", o.Type())
	}
	if o.Type() != other.Type() {
		return 0, fmt.Errorf("expected type %s, received %s", o.Type(), other.Type())
	}
	switch l := o.Value.(type) {
	case bool:
		r := other.Value.(bool)
		switch {
		case l == r:
			return 0, nil
		case !l:
			return -1, nil
		}
		return 1, nil
	case *big.Int:
		return l.Cmp(other.Value.(*big.Int)), nil
	case *apd.Decimal:
		return l.Cmp(other.Value.(*apd.Decimal)), nil
	case rune:
		return compareOrdered(l, other.Value.(rune)), nil
	case string:
		return compareOrdered(l, other.Value.(string)), nil
	}
	return 0, fmt.Errorf("values of type %s are not comparable", o.Type())
}

func compareOrdered[T rune | string](l, r T) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

// GetField returns the member variable name of the receiver.
func (o Object) GetField(name string) (*Variable, error) {
	if o.members != nil {
		if v, ok := o.members.LookupVariable(name); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("undefined field '%s' on %s", name, o.Type())
}

func (o Object) SetField(name string, value Object) error {
	v, err := o.GetField(name)
	if err != nil {
		return err
	}
	v.Value = value
	return nil
}

// CallMethod dispatches name on the receiver. Member functions take the
// receiver as their first argument.
func (o Object) CallMethod(name string, args []Object) (Object, error) {
	if o.members != nil {
		if fn, ok := o.members.LookupFunction(name, len(args)+1); ok {
			return fn.Invoke(append([]Object{o}, args...))
		}
	}
	return NIL, fmt.Errorf("undefined method '%s/%d' on %s", name, len(args), o.Type())
}
