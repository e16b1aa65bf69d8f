package interpreter

import (
	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/types"
)

func (in *Interpreter) executeAll(stmts []ast.Statement) (completion, error) {
	for _, stmt := range stmts {
		done, err := in.execute(stmt)
		if err != nil || done.returning {
			return done, err
		}
	}
	return normal, nil
}

// executeBlock runs stmts in a fresh child scope.
func (in *Interpreter) executeBlock(stmts []ast.Statement) (completion, error) {
	defer in.enterScope()()
	return in.executeAll(stmts)
}

// Execute runs a single statement in the current scope. A RETURN outside of a
// method invocation is an error here.
func (in *Interpreter) Execute(stmt ast.Statement) (err error) {
	defer in.recoverPanic(stmt, &err)
	done, err := in.execute(stmt)
	if err != nil {
		return err
	}
	if done.returning {
		return errorf(stmt, "RETURN outside of a method")
	}
	return nil
}

func (in *Interpreter) condition(expr ast.Expression) (bool, error) {
	value, err := in.evaluate(expr)
	if err != nil {
		return false, err
	}
	b, ok := value.Value.(bool)
	if !ok {
		return false, errorf(expr, "expected type %s, received %s", types.BOOLEAN, value.Type())
	}
	return b, nil
}

func (in *Interpreter) execute(stmt ast.Statement) (completion, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expression)
		return normal, err

	case *ast.DeclarationStmt:
		value := environment.NIL
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return normal, err
			}
			value = v
		}
		t := types.ANY
		if s.Variable != nil {
			t = s.Variable.Type
		}
		if err := in.scope.DefineVariable(environment.NewVariable(s.Name, t, false, value)); err != nil {
			return normal, errorf(s, "%v", err)
		}
		return normal, nil

	case *ast.AssignmentStmt:
		return normal, in.assign(s)

	case *ast.IfStmt:
		ok, err := in.condition(s.Condition)
		if err != nil {
			return normal, err
		}
		if ok {
			return in.executeBlock(s.Then)
		}
		return in.executeBlock(s.Else)

	case *ast.ForStmt:
		if s.Init != nil {
			if done, err := in.execute(s.Init); err != nil || done.returning {
				return done, err
			}
		}
		for {
			ok, err := in.condition(s.Condition)
			if err != nil || !ok {
				return normal, err
			}
			if done, err := in.executeBlock(s.Body); err != nil || done.returning {
				return done, err
			}
			if s.Increment != nil {
				if done, err := in.execute(s.Increment); err != nil || done.returning {
					return done, err
				}
			}
		}

	case *ast.WhileStmt:
		for {
			ok, err := in.condition(s.Condition)
			if err != nil || !ok {
				return normal, err
			}
			if done, err := in.executeBlock(s.Body); err != nil || done.returning {
				return done, err
			}
		}

	case *ast.ReturnStmt:
		value, err := in.evaluate(s.Value)
		if err != nil {
			return normal, err
		}
		return completion{returning: true, value: value}, nil
	}
	return normal, errorf(stmt, "unsupported statement %T", stmt)
}

func (in *Interpreter) assign(s *ast.AssignmentStmt) error {
	access, ok := s.Receiver.(*ast.AccessExpr)
	if !ok {
		return errorf(s, "assignment target must be a variable or field")
	}
	value, err := in.evaluate(s.Value)
	if err != nil {
		return err
	}
	if access.Receiver == nil {
		v, ok := in.scope.LookupVariable(access.Name)
		if !ok {
			return errorf(access, "undefined variable '%s'", access.Name)
		}
		v.Value = value
		return nil
	}
	receiver, err := in.evaluate(access.Receiver)
	if err != nil {
		return err
	}
	if err := receiver.SetField(access.Name, value); err != nil {
		return errorf(access, "%v", err)
	}
	return nil
}
