package types

import "fmt"

// Type is one of the fixed language types. Types are compared by tag only.
type Type uint8

const (
	NIL Type = iota
	BOOLEAN
	INTEGER
	DECIMAL
	CHARACTER
	STRING
	// ANY accepts, and is accepted by, every type.
	ANY
	// COMPARABLE is only meaningful as an assignment target.
	COMPARABLE
)

type TYPE_NAME string

const (
	TYPE_NIL        TYPE_NAME = "Nil"
	TYPE_BOOLEAN    TYPE_NAME = "Boolean"
	TYPE_INTEGER    TYPE_NAME = "Integer"
	TYPE_DECIMAL    TYPE_NAME = "Decimal"
	TYPE_CHARACTER  TYPE_NAME = "Character"
	TYPE_STRING     TYPE_NAME = "String"
	TYPE_ANY        TYPE_NAME = "Any"
	TYPE_COMPARABLE TYPE_NAME = "Comparable"
)

var names = [...]TYPE_NAME{
	NIL:        TYPE_NIL,
	BOOLEAN:    TYPE_BOOLEAN,
	INTEGER:    TYPE_INTEGER,
	DECIMAL:    TYPE_DECIMAL,
	CHARACTER:  TYPE_CHARACTER,
	STRING:     TYPE_STRING,
	ANY:        TYPE_ANY,
	COMPARABLE: TYPE_COMPARABLE,
}

var byName = func() map[TYPE_NAME]Type {
	m := make(map[TYPE_NAME]Type, len(names))
	for t, name := range names {
		m[name] = Type(t)
	}
	return m
}()

// Name returns the source-level spelling of the type.
func (t Type) Name() TYPE_NAME {
	if int(t) < len(names) {
		return names[t]
	}
	return TYPE_NAME(fmt.Sprintf("Type(%d)", t))
}

func (t Type) String() string {
	return string(t.Name())
}

// IsConcrete reports whether values of this type can exist at runtime.
func (t Type) IsConcrete() bool {
	return t != ANY && t != COMPARABLE
}

// Lookup resolves a source-level type name.
func Lookup(name string) (Type, error) {
	if t, ok := byName[TYPE_NAME(name)]; ok {
		return t, nil
	}
	return ANY, fmt.Errorf("unknown type %q", name)
}
