package environment

import (
	"fmt"
	"io"
	"math/big"
	"unicode/utf8"

	"github.com/Chris-Enlow/PLC-Project/internal/types"
)

// NewBuiltins returns a root scope holding the print primitive, which writes
// its argument's string form and a newline to w.
func NewBuiltins(w io.Writer) *Scope {
	scope := NewScope(nil)
	primitive := NewFunction("print", []types.Type{types.ANY}, types.NIL, func(args []Object) (Object, error) {
		if _, err := fmt.Fprintln(w, args[0].String()); err != nil {
			return NIL, err
		}
		return NIL, nil
	})
	primitive.HostName = "System.out.println"
	if err := scope.DefineFunction(primitive); err != nil {
		panic(err)
	}
	return scope
}

var stringMembers *Scope

func init() {
	stringMembers = NewScope(nil)
	slice := NewFunction("slice", []types.Type{types.STRING, types.INTEGER, types.INTEGER}, types.STRING, stringSlice)
	slice.HostName = "substring"
	length := NewFunction("length", []types.Type{types.STRING}, types.INTEGER, func(args []Object) (Object, error) {
		return Create(big.NewInt(int64(utf8.RuneCountInString(args[0].Value.(string))))), nil
	})
	for _, fn := range []*Function{slice, length} {
		if err := stringMembers.DefineFunction(fn); err != nil {
			panic(err)
		}
	}
}

// Members returns the member scope for values of type t, or nil when the type
// has none. Member functions list the receiver as their first parameter.
func Members(t types.Type) *Scope {
	if t == types.STRING {
		return stringMembers
	}
	return nil
}

// stringSlice returns the runes in [start, end).
func stringSlice(args []Object) (Object, error) {
	runes := []rune(args[0].Value.(string))
	start, ok1 := args[1].Value.(*big.Int)
	end, ok2 := args[2].Value.(*big.Int)
	if !ok1 || !ok2 {
		return NIL, fmt.Errorf("slice expects Integer bounds, received %s and %s", args[1].Type(), args[2].Type())
	}
	if start.Sign() < 0 || start.Cmp(end) > 0 || end.Cmp(big.NewInt(int64(len(runes)))) > 0 {
		return NIL, fmt.Errorf("slice bounds [%s, %s) out of range for length %d", start, end, len(runes))
	}
	return Create(string(runes[start.Int64():end.Int64()])), nil
}
