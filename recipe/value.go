package recipe

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies what a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindString
)

// Value is a resolved option value: null, a boolean or a string.
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	s    string
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Kind reports what v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v and whether v is a boolean.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsString returns the string held by v and whether v is a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Truthy reports whether v counts as set. Null, false, and the strings
// "", "false", "none", "0" and "off" (any case) are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		switch strings.ToLower(v.s) {
		case "", "false", "none", "0", "off":
			return false
		}
		return true
	}
	return false
}

// String renders v the way the recipe prints option values.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindString:
		return v.s
	}
	return "None"
}

// Equal reports whether v and o hold the same value.
func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindString:
		return json.Marshal(v.s)
	}
	return []byte("null"), nil
}

// ValueOf converts a decoded scalar into a Value. Numbers become their
// decimal string form so that YAML `cppstd: 20` reads as "20".
func ValueOf(raw any) (v Value, ok bool) {
	switch x := raw.(type) {
	case nil:
		return Null(), true
	case Value:
		return x, true
	case bool:
		return Bool(x), true
	case string:
		return String(x), true
	case int:
		return String(strconv.Itoa(x)), true
	case int64:
		return String(strconv.FormatInt(x, 10)), true
	case uint64:
		return String(strconv.FormatUint(x, 10)), true
	case float64:
		return String(strconv.FormatFloat(x, 'f', -1, 64)), true
	}
	return Value{}, false
}
