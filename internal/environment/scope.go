package environment

import (
	"fmt"
	"sort"
)

// Scope is one frame of a parent-linked chain of name tables. Variables are
// keyed by name, functions by name and arity.
type Scope struct {
	parent    *Scope
	variables map[string]*Variable
	functions map[string]*Function
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:    parent,
		variables: make(map[string]*Variable),
		functions: make(map[string]*Function),
	}
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

func functionKey(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}

// DefineVariable binds v in this frame. Shadowing an outer binding is allowed,
// redefining one in the same frame is not.
func (s *Scope) DefineVariable(v *Variable) error {
	if _, exists := s.variables[v.Name]; exists {
		return fmt.Errorf("variable '%s' is already defined in this scope", v.Name)
	}
	s.variables[v.Name] = v
	return nil
}

// LookupVariable returns the nearest binding of name.
func (s *Scope) LookupVariable(name string) (*Variable, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if v, ok := scope.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (s *Scope) DefineFunction(fn *Function) error {
	key := functionKey(fn.Name, fn.Arity())
	if _, exists := s.functions[key]; exists {
		return fmt.Errorf("function '%s' is already defined in this scope", key)
	}
	s.functions[key] = fn
	return nil
}

// RemoveVariable drops name from this frame only.
func (s *Scope) RemoveVariable(name string) {
	delete(s.variables, name)
}

// RemoveFunction drops name/arity from this frame only.
func (s *Scope) RemoveFunction(name string, arity int) {
	delete(s.functions, functionKey(name, arity))
}

// LookupFunction returns the nearest function with the given name and arity.
func (s *Scope) LookupFunction(name string, arity int) (*Function, bool) {
	key := functionKey(name, arity)
	for scope := s; scope != nil; scope = scope.parent {
		if fn, ok := scope.functions[key]; ok {
			return fn, true
		}
	}
	return nil, false
}

// Names lists the variables and functions visible from s, nearest frame
// first, each frame sorted. Used by the REPL and debug dumps.
func (s *Scope) Names() []string {
	var names []string
	seen := make(map[string]bool)
	for scope := s; scope != nil; scope = scope.parent {
		frame := make([]string, 0, len(scope.variables)+len(scope.functions))
		for name := range scope.variables {
			frame = append(frame, name)
		}
		for key := range scope.functions {
			frame = append(frame, key)
		}
		sort.Strings(frame)
		for _, name := range frame {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
