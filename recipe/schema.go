package recipe

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// DomainKind is the shape of values an option accepts.
type DomainKind int

const (
	DomainBool DomainKind = iota
	DomainEnum
	DomainAny
)

// Domain is the set of values an option accepts.
type Domain struct {
	Kind     DomainKind
	Values   []string // DomainEnum only
	Nullable bool
}

// BoolDomain accepts True and False, plus None when nullable.
func BoolDomain(nullable bool) Domain {
	return Domain{Kind: DomainBool, Nullable: nullable}
}

// EnumDomain accepts one of values, plus None when nullable.
func EnumDomain(nullable bool, values ...string) Domain {
	return Domain{Kind: DomainEnum, Values: values, Nullable: nullable}
}

// AnyDomain accepts any string, plus None when nullable.
func AnyDomain(nullable bool) Domain {
	return Domain{Kind: DomainAny, Nullable: nullable}
}

// String renders the domain as the list of accepted values.
func (d Domain) String() string {
	var parts []string
	switch d.Kind {
	case DomainBool:
		parts = []string{"True", "False"}
	case DomainEnum:
		parts = slices.Clone(d.Values)
	case DomainAny:
		parts = []string{"ANY"}
	}
	if d.Nullable {
		parts = append(parts, "None")
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Coerce maps v into the domain. The returned reason is empty on success.
func (d Domain) Coerce(v Value) (Value, string) {
	if s, ok := v.AsString(); ok && s == "None" {
		v = Null()
	}
	if v.IsNull() {
		if d.Nullable {
			return Null(), ""
		}
		return Value{}, "value is required"
	}
	switch d.Kind {
	case DomainBool:
		if _, ok := v.AsBool(); ok {
			return v, ""
		}
		s, _ := v.AsString()
		switch strings.ToLower(s) {
		case "true":
			return Bool(true), ""
		case "false":
			return Bool(false), ""
		}
		return Value{}, "expected one of " + d.String()
	case DomainEnum:
		s := v.String()
		if slices.Contains(d.Values, s) {
			return String(s), ""
		}
		return Value{}, "expected one of " + d.String()
	case DomainAny:
		return String(v.String()), ""
	}
	return Value{}, fmt.Sprintf("unknown domain kind %d", d.Kind)
}

// Option declares one configurable option and its default.
type Option struct {
	Name    string
	Domain  Domain
	Default Value
}

// Schema is the ordered set of options a revision declares.
type Schema struct {
	options []Option
}

// NewSchema returns a schema declaring opts in order.
func NewSchema(opts ...Option) Schema {
	return Schema{options: slices.Clone(opts)}
}

// Options returns the declared options in order.
func (s Schema) Options() []Option {
	return slices.Clone(s.options)
}

// Lookup returns the option called name.
func (s Schema) Lookup(name string) (Option, bool) {
	for _, o := range s.options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Validate checks that option names are unique and that every default lies
// within its domain.
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s.options))
	for _, o := range s.options {
		if seen[o.Name] {
			return &InvalidOptionError{Option: o.Name, Reason: "declared twice"}
		}
		seen[o.Name] = true
		got, reason := o.Domain.Coerce(o.Default)
		if reason != "" {
			return &InvalidOptionError{Option: o.Name, Value: o.Default.String(), Reason: "default: " + reason}
		}
		if !got.Equal(o.Default) {
			return &InvalidOptionError{Option: o.Name, Value: o.Default.String(), Reason: "default is not in canonical form"}
		}
	}
	return nil
}

// Resolve picks a concrete value for every option: the user's value when
// given, the default otherwise. Names in raw that the schema does not
// declare are rejected.
func (s Schema) Resolve(raw map[string]Value) (ResolvedOptions, error) {
	unknown := make([]string, 0)
	for name := range raw {
		if _, ok := s.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return ResolvedOptions{}, &InvalidOptionError{Option: unknown[0], Reason: "not declared by this revision"}
	}

	r := ResolvedOptions{
		names:  make([]string, 0, len(s.options)),
		values: make(map[string]Value, len(s.options)),
	}
	for _, o := range s.options {
		v := o.Default
		if given, ok := raw[o.Name]; ok {
			var reason string
			if v, reason = o.Domain.Coerce(given); reason != "" {
				return ResolvedOptions{}, &InvalidOptionError{Option: o.Name, Value: given.String(), Reason: reason}
			}
		}
		r.names = append(r.names, o.Name)
		r.values[o.Name] = v
	}
	return r, nil
}
