package ast

import (
	"github.com/Chris-Enlow/PLC-Project/internal/source"
	"github.com/Chris-Enlow/PLC-Project/internal/types"
)

// Node is the base interface for all AST nodes
type Node interface {
	INode()
	Loc() source.Range
}

// Expression represents any node that produces a value. Every expression
// carries the type analysis resolved for it.
type Expression interface {
	Node
	Expr()
	ResolvedType() (types.Type, bool)
	Resolve(t types.Type)
}

// Statement represents any node that performs an action
type Statement interface {
	Node
	Stmt()
}

// Typed is the analysis annotation shared by all expressions.
type Typed struct {
	Type     types.Type
	resolved bool
}

func (t *Typed) ResolvedType() (types.Type, bool) { return t.Type, t.resolved }

func (t *Typed) Resolve(typ types.Type) {
	t.Type = typ
	t.resolved = true
}

// TypeOf returns the resolved type of e, or ANY if e was never analyzed.
func TypeOf(e Expression) types.Type {
	if t, ok := e.ResolvedType(); ok {
		return t
	}
	return types.ANY
}
