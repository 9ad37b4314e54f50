package recipe

import (
	"bytes"
	"encoding/json"
	"iter"
)

// ResolvedOptions holds one concrete value per schema option. It is
// immutable once returned by Schema.Resolve.
type ResolvedOptions struct {
	names  []string
	values map[string]Value
}

// Get returns the value of name, or null if the option is not declared.
func (r ResolvedOptions) Get(name string) Value {
	return r.values[name]
}

// All iterates over the options in schema order.
func (r ResolvedOptions) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range r.names {
			if !yield(name, r.values[name]) {
				return
			}
		}
	}
}

// Len returns the number of resolved options.
func (r ResolvedOptions) Len() int { return len(r.names) }

// MarshalJSON encodes the options as an object in schema order.
func (r ResolvedOptions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := r.values[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
