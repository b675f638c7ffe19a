package evaluator

import "sort"

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment creates a child scope of outer pre-populated with
// bindings. Lookups that miss in the child fall back to outer.
func NewEnclosedEnvironment(outer *Environment, bindings map[string]Object) *Environment {
	env := NewEnvironment()
	for name, val := range bindings {
		env.store[name] = val
	}
	env.outer = outer
	return env
}

// Environment is a mutable name-to-value scope. Writes always land in the
// receiver; only reads walk the parent chain.
type Environment struct {
	store map[string]Object
	outer *Environment
}

// Get looks name up in this scope, then in each enclosing scope.
func (e *Environment) Get(name string) (Object, error) {
	for env := e; env != nil; env = env.outer {
		if obj, ok := env.store[name]; ok {
			return obj, nil
		}
	}
	return nil, newError(UnboundName, "%s is not assigned", name)
}

// Has reports whether name is bound in this scope or any enclosing one.
func (e *Environment) Has(name string) bool {
	_, err := e.Get(name)
	return err == nil
}

// Set binds name in this scope, shadowing any outer binding.
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Parent returns the enclosing scope, nil for a root scope.
func (e *Environment) Parent() *Environment {
	return e.outer
}

// Keys returns the names bound directly in this scope, sorted.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.store))
	for k := range e.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
