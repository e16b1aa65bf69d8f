package analyzer

import (
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/types"
)

func (a *Analyzer) analyzeStatements(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := a.AnalyzeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// analyzeBlock analyzes stmts in a fresh child scope.
func (a *Analyzer) analyzeBlock(stmts []ast.Statement) error {
	defer a.enterScope()()
	return a.analyzeStatements(stmts)
}

func (a *Analyzer) analyzeCondition(condition ast.Expression) error {
	if err := a.AnalyzeExpression(condition); err != nil {
		return err
	}
	return requireAssignable(condition, types.BOOLEAN, ast.TypeOf(condition))
}

func (a *Analyzer) AnalyzeStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		if _, ok := s.Expression.(*ast.FunctionExpr); !ok {
			return errorf(s, InvalidStatement, "expression statement must be a function call")
		}
		return a.AnalyzeExpression(s.Expression)

	case *ast.DeclarationStmt:
		v, err := a.declare(s, s.Name, s.TypeName, s.Value, false)
		if err != nil {
			return err
		}
		s.Variable = v
		return nil

	case *ast.AssignmentStmt:
		receiver, ok := s.Receiver.(*ast.AccessExpr)
		if !ok {
			return errorf(s, InvalidAssignment, "assignment target must be a variable or field")
		}
		if err := a.AnalyzeExpression(receiver); err != nil {
			return err
		}
		if receiver.Variable.Constant {
			return errorf(s, ConstantReassignment, "cannot assign to constant '%s'", receiver.Name)
		}
		if err := a.AnalyzeExpression(s.Value); err != nil {
			return err
		}
		return requireAssignable(s.Value, ast.TypeOf(receiver), ast.TypeOf(s.Value))

	case *ast.IfStmt:
		if err := a.analyzeCondition(s.Condition); err != nil {
			return err
		}
		if len(s.Then) == 0 {
			return errorf(s, InvalidStatement, "IF must have at least one statement before ELSE or END")
		}
		if err := a.analyzeBlock(s.Then); err != nil {
			return err
		}
		return a.analyzeBlock(s.Else)

	case *ast.ForStmt:
		if s.Init != nil {
			if err := a.AnalyzeStatement(s.Init); err != nil {
				return err
			}
		}
		if err := a.analyzeCondition(s.Condition); err != nil {
			return err
		}
		if s.Increment != nil {
			if err := a.AnalyzeStatement(s.Increment); err != nil {
				return err
			}
		}
		return a.analyzeBlock(s.Body)

	case *ast.WhileStmt:
		if err := a.analyzeCondition(s.Condition); err != nil {
			return err
		}
		return a.analyzeBlock(s.Body)

	case *ast.ReturnStmt:
		if a.method == nil {
			return errorf(s, InvalidReturn, "RETURN outside of a method")
		}
		if err := a.AnalyzeExpression(s.Value); err != nil {
			return err
		}
		return requireAssignable(s.Value, a.method.Function.ReturnType, ast.TypeOf(s.Value))
	}
	return errorf(stmt, InvalidOperation, "unsupported statement %T", stmt)
}
