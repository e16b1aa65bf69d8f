package analyzer

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/types"
	"github.com/Chris-Enlow/PLC-Project/internal/utils/numeric"
)

var comparisonOperators = map[string]bool{
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true,
}

// AnalyzeExpression resolves the type of expr and every subexpression.
func (a *Analyzer) AnalyzeExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return analyzeLiteral(e)
	case *ast.GroupExpr:
		if _, ok := e.Inner.(*ast.BinaryExpr); !ok {
			return errorf(e, InvalidStatement, "grouped expression must be a binary expression")
		}
		if err := a.AnalyzeExpression(e.Inner); err != nil {
			return err
		}
		e.Resolve(ast.TypeOf(e.Inner))
		return nil
	case *ast.BinaryExpr:
		return a.analyzeBinary(e)
	case *ast.AccessExpr:
		return a.analyzeAccess(e)
	case *ast.FunctionExpr:
		return a.analyzeFunction(e)
	}
	return errorf(expr, InvalidOperation, "unsupported expression %T", expr)
}

func analyzeLiteral(lit *ast.LiteralExpr) error {
	switch v := lit.Value.(type) {
	case nil:
		lit.Resolve(types.NIL)
	case bool:
		lit.Resolve(types.BOOLEAN)
	case *big.Int:
		if !numeric.FitsInBitSize(v, 32, true) {
			return errorf(lit, LiteralOutOfRange, "integer literal %s is too large", v)
		}
		lit.Resolve(types.INTEGER)
	case *apd.Decimal:
		if !numeric.IsFiniteDouble(v) {
			return errorf(lit, LiteralOutOfRange, "decimal literal %s is too large", v)
		}
		lit.Resolve(types.DECIMAL)
	case rune:
		lit.Resolve(types.CHARACTER)
	case string:
		lit.Resolve(types.STRING)
	default:
		return errorf(lit, InvalidOperation, "unsupported literal of type %T", lit.Value)
	}
	return nil
}

func (a *Analyzer) analyzeBinary(bin *ast.BinaryExpr) error {
	if err := a.AnalyzeExpression(bin.Left); err != nil {
		return err
	}
	if err := a.AnalyzeExpression(bin.Right); err != nil {
		return err
	}
	left, right := ast.TypeOf(bin.Left), ast.TypeOf(bin.Right)

	switch {
	case bin.Operator == "&&" || bin.Operator == "||":
		if err := requireAssignable(bin.Left, types.BOOLEAN, left); err != nil {
			return err
		}
		if err := requireAssignable(bin.Right, types.BOOLEAN, right); err != nil {
			return err
		}
		bin.Resolve(types.BOOLEAN)
	case comparisonOperators[bin.Operator]:
		if err := requireAssignable(bin.Left, types.COMPARABLE, left); err != nil {
			return err
		}
		if err := requireAssignable(bin.Right, left, right); err != nil {
			return err
		}
		bin.Resolve(types.BOOLEAN)
	case bin.Operator == "+" && (left == types.STRING || right == types.STRING):
		bin.Resolve(types.STRING)
	case bin.Operator == "^":
		// Exponents are always integers, whatever the base.
		if err := requireAssignable(bin.Right, types.INTEGER, right); err != nil {
			return err
		}
		bin.Resolve(left)
	default:
		target := types.INTEGER
		if left == types.DECIMAL {
			target = types.DECIMAL
		}
		if err := requireAssignable(bin.Right, target, right); err != nil {
			return err
		}
		bin.Resolve(left)
	}
	return nil
}

func (a *Analyzer) analyzeAccess(access *ast.AccessExpr) error {
	if access.Receiver == nil {
		v, ok := a.scope.LookupVariable(access.Name)
		if !ok {
			return errorf(access, UndefinedSymbol, "undefined variable '%s'", access.Name)
		}
		access.Variable = v
		access.Resolve(v.Type)
		return nil
	}

	if err := a.AnalyzeExpression(access.Receiver); err != nil {
		return err
	}
	receiverType := ast.TypeOf(access.Receiver)
	if members := environment.Members(receiverType); members != nil {
		v, ok := members.LookupVariable(access.Name)
		if !ok {
			return errorf(access, UndefinedSymbol, "undefined field '%s' on %s", access.Name, receiverType)
		}
		access.Variable = v
	} else {
		// No member schema exists for this receiver.
		access.Variable = environment.NewVariable(access.Name, types.INTEGER, false, environment.NIL)
	}
	access.Resolve(access.Variable.Type)
	return nil
}

func (a *Analyzer) analyzeFunction(call *ast.FunctionExpr) error {
	if call.Receiver == nil {
		fn, ok := a.scope.LookupFunction(call.Name, len(call.Arguments))
		if !ok {
			return errorf(call, UndefinedSymbol, "undefined function '%s/%d'", call.Name, len(call.Arguments))
		}
		call.Function = fn
	} else {
		fn, err := a.resolveMethod(call)
		if err != nil {
			return err
		}
		call.Function = fn
	}

	for i, arg := range call.Arguments {
		if err := a.AnalyzeExpression(arg); err != nil {
			return err
		}
		if err := types.RequireAssignable(call.Function.ParameterTypes[i], ast.TypeOf(arg)); err != nil {
			return errorf(arg, TypeMismatch, "%s argument of '%s/%d': %v",
				numeric.NumericToOrdinal(i+1), call.Name, len(call.Arguments), err)
		}
	}
	call.Resolve(call.Function.ReturnType)
	return nil
}

// resolveMethod finds the member function called on a receiver. The result
// lists only the explicit parameters.
func (a *Analyzer) resolveMethod(call *ast.FunctionExpr) (*environment.Function, error) {
	if err := a.AnalyzeExpression(call.Receiver); err != nil {
		return nil, err
	}
	receiverType := ast.TypeOf(call.Receiver)
	members := environment.Members(receiverType)
	if members == nil {
		return environment.NewFunction(call.Name, environment.AnyParameters(len(call.Arguments)), types.INTEGER, nil), nil
	}
	member, ok := members.LookupFunction(call.Name, len(call.Arguments)+1)
	if !ok {
		return nil, errorf(call, UndefinedSymbol, "undefined method '%s/%d' on %s", call.Name, len(call.Arguments), receiverType)
	}
	return &environment.Function{
		Name:           member.Name,
		HostName:       member.HostName,
		ParameterTypes: member.ParameterTypes[1:],
		ReturnType:     member.ReturnType,
	}, nil
}
