package ast

import (
	"github.com/Chris-Enlow/PLC-Project/internal/environment"
	"github.com/Chris-Enlow/PLC-Project/internal/source"
)

// Source is a whole program: fields first, then methods, each in
// declaration order.
type Source struct {
	Fields  []*Field
	Methods []*Method
	source.Range
}

func (s *Source) INode()            {}
func (s *Source) Loc() source.Range { return s.Range }

// Field is a top-level LET. TypeName is empty when omitted and Value is nil
// without an initializer.
type Field struct {
	Name     string
	Constant bool
	TypeName string
	Value    Expression
	Variable *environment.Variable // populated during semantic analysis
	source.Range
}

func (f *Field) INode()            {}
func (f *Field) Loc() source.Range { return f.Range }

// Method is a top-level DEF. Empty type names mean the type was omitted.
type Method struct {
	Name               string
	Parameters         []string
	ParameterTypeNames []string
	ReturnTypeName     string
	Statements         []Statement
	Function           *environment.Function // populated during semantic analysis
	source.Range
}

func (m *Method) INode()            {}
func (m *Method) Loc() source.Range { return m.Range }
