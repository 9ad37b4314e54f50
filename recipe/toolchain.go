package recipe

import (
	"encoding/json"
	"iter"
	"slices"
)

// Variable is one toolchain variable handed to the build-system generator.
// Cached variables persist in the generator's cache between invocations.
type Variable struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
	Cache bool   `json:"cache"`
}

// ToolchainConfig is an ordered set of toolchain variables. A null value is
// never stored.
type ToolchainConfig struct {
	vars []Variable
}

// Set appends a variable, or replaces the value of an existing one in place.
// Setting a null value is a no-op.
func (tc *ToolchainConfig) Set(name string, v Value, cache bool) {
	if v.IsNull() {
		return
	}
	for i := range tc.vars {
		if tc.vars[i].Name == name {
			tc.vars[i].Value = v
			tc.vars[i].Cache = cache
			return
		}
	}
	tc.vars = append(tc.vars, Variable{Name: name, Value: v, Cache: cache})
}

// Lookup returns the variable called name.
func (tc *ToolchainConfig) Lookup(name string) (Variable, bool) {
	for _, v := range tc.vars {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Variables returns the variables in insertion order.
func (tc *ToolchainConfig) Variables() []Variable {
	return slices.Clone(tc.vars)
}

// Cached iterates over the variables with Cache set when cached is true,
// or over the plain ones otherwise.
func (tc *ToolchainConfig) Cached(cached bool) iter.Seq[Variable] {
	return func(yield func(Variable) bool) {
		for _, v := range tc.vars {
			if v.Cache == cached && !yield(v) {
				return
			}
		}
	}
}

// Len returns the number of variables.
func (tc *ToolchainConfig) Len() int { return len(tc.vars) }

// MarshalJSON encodes the variables as an array in insertion order.
func (tc *ToolchainConfig) MarshalJSON() ([]byte, error) {
	if tc.vars == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(tc.vars)
}
