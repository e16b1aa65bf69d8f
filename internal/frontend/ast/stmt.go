package ast

import (
	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/source"
)

// ExpressionStmt is an expression evaluated for its effect.
type ExpressionStmt struct {
	Expression Expression
	source.Range
}

func (e *ExpressionStmt) INode()            {}
func (e *ExpressionStmt) Stmt()             {}
func (e *ExpressionStmt) Loc() source.Range { return e.Range }

// DeclarationStmt is a local LET.
type DeclarationStmt struct {
	Name     string
	TypeName string
	Value    Expression
	Variable *environment.Variable // populated during semantic analysis
	source.Range
}

func (d *DeclarationStmt) INode()            {}
func (d *DeclarationStmt) Stmt()             {}
func (d *DeclarationStmt) Loc() source.Range { return d.Range }

// AssignmentStmt stores Value into Receiver, which must be an access.
type AssignmentStmt struct {
	Receiver Expression
	Value    Expression
	source.Range
}

func (a *AssignmentStmt) INode()            {}
func (a *AssignmentStmt) Stmt()             {}
func (a *AssignmentStmt) Loc() source.Range { return a.Range }

type IfStmt struct {
	Condition Expression
	Then      []Statement
	Else      []Statement
	source.Range
}

func (i *IfStmt) INode()            {}
func (i *IfStmt) Stmt()             {}
func (i *IfStmt) Loc() source.Range { return i.Range }

// ForStmt has optional Init and Increment clauses.
type ForStmt struct {
	Init      Statement
	Condition Expression
	Increment Statement
	Body      []Statement
	source.Range
}

func (f *ForStmt) INode()            {}
func (f *ForStmt) Stmt()             {}
func (f *ForStmt) Loc() source.Range { return f.Range }

type WhileStmt struct {
	Condition Expression
	Body      []Statement
	source.Range
}

func (w *WhileStmt) INode()            {}
func (w *WhileStmt) Stmt()             {}
func (w *WhileStmt) Loc() source.Range { return w.Range }

type ReturnStmt struct {
	Value Expression
	source.Range
}

func (r *ReturnStmt) INode()            {}
func (r *ReturnStmt) Stmt()             {}
func (r *ReturnStmt) Loc() source.Range { return r.Range }
