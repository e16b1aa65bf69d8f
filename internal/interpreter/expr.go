package interpreter

import (
	"errors"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/types"
	"github.com/Chris-Enlow/PLC-Project/internal/utils/numeric"
)

// Evaluate computes the value of an expression in the current scope.
func (in *Interpreter) Evaluate(expr ast.Expression) (value environment.Object, err error) {
	defer in.recoverPanic(expr, &err)
	return in.evaluate(expr)
}

func (in *Interpreter) evaluate(expr ast.Expression) (environment.Object, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return environment.Create(e.Value), nil
	case *ast.GroupExpr:
		return in.evaluate(e.Inner)
	case *ast.BinaryExpr:
		return in.binary(e)
	case *ast.AccessExpr:
		return in.access(e)
	case *ast.FunctionExpr:
		return in.call(e)
	}
	return environment.NIL, errorf(expr, "unsupported expression %T", expr)
}

func (in *Interpreter) access(e *ast.AccessExpr) (environment.Object, error) {
	if e.Receiver == nil {
		v, ok := in.scope.LookupVariable(e.Name)
		if !ok {
			return environment.NIL, errorf(e, "undefined variable '%s'", e.Name)
		}
		return v.Value, nil
	}
	receiver, err := in.evaluate(e.Receiver)
	if err != nil {
		return environment.NIL, err
	}
	field, err := receiver.GetField(e.Name)
	if err != nil {
		return environment.NIL, errorf(e, "%v", err)
	}
	return field.Value, nil
}

func (in *Interpreter) call(e *ast.FunctionExpr) (environment.Object, error) {
	var receiver environment.Object
	if e.Receiver != nil {
		r, err := in.evaluate(e.Receiver)
		if err != nil {
			return environment.NIL, err
		}
		receiver = r
	}

	args := make([]environment.Object, len(e.Arguments))
	for i, arg := range e.Arguments {
		value, err := in.evaluate(arg)
		if err != nil {
			return environment.NIL, err
		}
		args[i] = value
	}

	if e.Receiver != nil {
		result, err := receiver.CallMethod(e.Name, args)
		if err != nil {
			return environment.NIL, wrap(e, err)
		}
		return result, nil
	}
	fn, ok := in.scope.LookupFunction(e.Name, len(args))
	if !ok {
		return environment.NIL, errorf(e, "undefined function '%s/%d'", e.Name, len(args))
	}
	result, err := fn.Invoke(args)
	if err != nil {
		return environment.NIL, wrap(e, err)
	}
	return result, nil
}

func (in *Interpreter) binary(e *ast.BinaryExpr) (environment.Object, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return environment.NIL, err
	}

	switch e.Operator {
	case "&&", "||":
		l, ok := left.Value.(bool)
		if !ok {
			return environment.NIL, errorf(e.Left, "expected type %s, received %s", types.BOOLEAN, left.Type())
		}
		if (e.Operator == "&&" && !l) || (e.Operator == "||" && l) {
			return environment.Create(l), nil
		}
		r, err := in.condition(e.Right)
		if err != nil {
			return environment.NIL, err
		}
		return environment.Create(r), nil
	}

	right, err := in.evaluate(e.Right)
	if err != nil {
		return environment.NIL, err
	}

	switch e.Operator {
	case "==":
		return environment.Create(left.Equals(right)), nil
	case "!=":
		return environment.Create(!left.Equals(right)), nil
	case "<", ">", "<=", ">=":
		c, err := left.Compare(right)
		if err != nil {
			return environment.NIL, errorf(e, "%v", err)
		}
		return environment.Create(compares(e.Operator, c)), nil
	case "+":
		if left.Type() == types.STRING || right.Type() == types.STRING {
			return environment.Create(left.String() + right.String()), nil
		}
		return arithmetic(e, left, right, (*big.Int).Add, numeric.AddDecimal)
	case "-":
		return arithmetic(e, left, right, (*big.Int).Sub, numeric.SubDecimal)
	case "*":
		return arithmetic(e, left, right, (*big.Int).Mul, numeric.MulDecimal)
	case "/":
		return divide(e, left, right)
	case "^":
		return power(e, left, right)
	}
	return environment.NIL, errorf(e, "unknown operator '%s'", e.Operator)
}

func compares(operator string, c int) bool {
	switch operator {
	case "<":
		return c < 0
	case ">":
		return c > 0
	case "<=":
		return c <= 0
	}
	return c >= 0
}

// operands checks that right has the same numeric type as left.
func operands(e *ast.BinaryExpr, left, right environment.Object) error {
	switch left.Type() {
	case types.INTEGER, types.DECIMAL:
	default:
		return errorf(e.Left, "left operand of '%s' must be Integer or Decimal, received %s", e.Operator, left.Type())
	}
	if right.Type() != left.Type() {
		return errorf(e.Right, "expected type %s, received %s", left.Type(), right.Type())
	}
	return nil
}

func arithmetic(
	e *ast.BinaryExpr,
	left, right environment.Object,
	integer func(z, x, y *big.Int) *big.Int,
	decimal func(x, y *apd.Decimal) (*apd.Decimal, error),
) (environment.Object, error) {
	if err := operands(e, left, right); err != nil {
		return environment.NIL, err
	}
	if l, ok := left.Value.(*big.Int); ok {
		return environment.Create(integer(new(big.Int), l, right.Value.(*big.Int))), nil
	}
	d, err := decimal(left.Value.(*apd.Decimal), right.Value.(*apd.Decimal))
	if err != nil {
		return environment.NIL, errorf(e, "%v", err)
	}
	return environment.Create(d), nil
}

func divide(e *ast.BinaryExpr, left, right environment.Object) (environment.Object, error) {
	if err := operands(e, left, right); err != nil {
		return environment.NIL, err
	}
	var (
		result any
		err    error
	)
	if l, ok := left.Value.(*big.Int); ok {
		result, err = numeric.QuoInteger(l, right.Value.(*big.Int))
	} else {
		result, err = numeric.QuoDecimal(left.Value.(*apd.Decimal), right.Value.(*apd.Decimal))
	}
	if err != nil {
		return environment.NIL, errorf(e, "%v", err)
	}
	return environment.Create(result), nil
}

// power raises left to right, which is truncated to a 32-bit integer.
func power(e *ast.BinaryExpr, left, right environment.Object) (environment.Object, error) {
	exponent, ok := right.Value.(*big.Int)
	if !ok {
		return environment.NIL, errorf(e.Right, "expected type %s, received %s", types.INTEGER, right.Type())
	}
	n := numeric.ToMachineInt(exponent)

	var (
		result any
		err    error
	)
	switch l := left.Value.(type) {
	case *big.Int:
		result, err = numeric.PowInteger(l, n)
	case *apd.Decimal:
		result, err = numeric.PowDecimal(l, n)
	default:
		return environment.NIL, errorf(e.Left, "left operand of '^' must be Integer or Decimal, received %s", left.Type())
	}
	if errors.Is(err, numeric.ErrNegativeExponent) {
		return environment.NIL, errorf(e.Right, "negative exponent %d", n)
	}
	if err != nil {
		return environment.NIL, errorf(e, "%v", err)
	}
	return environment.Create(result), nil
}
