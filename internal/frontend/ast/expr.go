package ast

import (
	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/source"
)

// LiteralExpr holds a constant: nil, bool, *big.Int, *apd.Decimal, rune or
// string.
type LiteralExpr struct {
	Value any
	Typed
	source.Range
}

func (l *LiteralExpr) INode()            {}
func (l *LiteralExpr) Expr()             {}
func (l *LiteralExpr) Loc() source.Range { return l.Range }

// GroupExpr is a parenthesized binary expression.
type GroupExpr struct {
	Inner Expression
	Typed
	source.Range
}

func (g *GroupExpr) INode()            {}
func (g *GroupExpr) Expr()             {}
func (g *GroupExpr) Loc() source.Range { return g.Range }

type BinaryExpr struct {
	Operator string
	Left     Expression
	Right    Expression
	Typed
	source.Range
}

func (b *BinaryExpr) INode()            {}
func (b *BinaryExpr) Expr()             {}
func (b *BinaryExpr) Loc() source.Range { return b.Range }

// AccessExpr reads a variable, or a field of Receiver when it is non-nil.
type AccessExpr struct {
	Receiver Expression
	Name     string
	Variable *environment.Variable // populated during semantic analysis
	Typed
	source.Range
}

func (a *AccessExpr) INode()            {}
func (a *AccessExpr) Expr()             {}
func (a *AccessExpr) Loc() source.Range { return a.Range }

// FunctionExpr calls a function, or a method of Receiver when it is non-nil.
type FunctionExpr struct {
	Receiver  Expression
	Name      string
	Arguments []Expression
	Function  *environment.Function // populated during semantic analysis
	Typed
	source.Range
}

func (f *FunctionExpr) INode()            {}
func (f *FunctionExpr) Expr()             {}
func (f *FunctionExpr) Loc() source.Range { return f.Range }
