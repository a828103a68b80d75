// Package metadata decodes the leading block of a journal entry into a
// string-keyed mapping of dynamically shaped values.
package metadata

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the shapes a decoded metadata value can take.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Sequence
	Mapping
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a tagged union over the decoded metadata shapes. The zero
// Value has kind Null, so a missing key reads the same as an explicit
// null.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	seq  []Value
	m    Map
}

// Map is a decoded metadata block.
type Map map[string]Value

// Get returns the value for key, or a Null value when absent.
func (m Map) Get(key string) Value {
	return m[key]
}

// NewBool wraps a boolean.
func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

// NewNumber wraps a numeric scalar.
func NewNumber(n float64) Value { return Value{kind: Number, num: n} }

// NewString wraps a string scalar.
func NewString(s string) Value { return Value{kind: String, str: s} }

// NewSequence wraps an ordered sequence of values.
func NewSequence(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{kind: Sequence, seq: vs}
}

// NewMapping wraps a nested mapping.
func NewMapping(m Map) Value { return Value{kind: Mapping, m: m} }

// Kind reports the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null (or absent).
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean payload, or false for other kinds.
func (v Value) Bool() bool { return v.b }

// Num returns the numeric payload, or 0 for other kinds.
func (v Value) Num() float64 { return v.num }

// Str returns the string payload, or "" for other kinds.
func (v Value) Str() string { return v.str }

// Seq returns the sequence payload, or nil for other kinds.
func (v Value) Seq() []Value { return v.seq }

// Map returns the mapping payload, or nil for other kinds.
func (v Value) Map() Map { return v.m }

// Strings flattens a sequence value into its elements' string payloads.
// Elements are assumed to already be strings; other shapes read as "".
func (v Value) Strings() []string {
	if v.kind != Sequence {
		return nil
	}
	out := make([]string, len(v.seq))
	for i, e := range v.seq {
		out[i] = e.str
	}
	return out
}

// MarshalJSON renders the value in its natural JSON shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Bool:
		return json.Marshal(v.b)
	case Number:
		return json.Marshal(v.num)
	case String:
		return json.Marshal(v.str)
	case Sequence:
		if v.seq == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.seq)
	case Mapping:
		return json.Marshal(v.m)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON rebuilds a value from its JSON shape.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = fromAny(raw)
	return nil
}

// Decode parses data as a YAML document and returns it as a string-keyed
// Map. It fails when the document is not a mapping (e.g. plain prose).
// An empty document decodes to an empty Map.
func Decode(data []byte) (Map, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	m := make(Map, len(raw))
	for k, v := range raw {
		m[k] = fromAny(v)
	}
	return m, nil
}

func fromAny(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case bool:
		return NewBool(t)
	case int:
		return NewNumber(float64(t))
	case int64:
		return NewNumber(float64(t))
	case uint64:
		return NewNumber(float64(t))
	case float64:
		return NewNumber(t)
	case string:
		return NewString(t)
	case time.Time:
		return NewString(t.Format(time.RFC3339))
	case []interface{}:
		seq := make([]Value, len(t))
		for i, e := range t {
			seq[i] = fromAny(e)
		}
		return NewSequence(seq...)
	case map[string]interface{}:
		m := make(Map, len(t))
		for k, e := range t {
			m[k] = fromAny(e)
		}
		return NewMapping(m)
	case map[interface{}]interface{}:
		m := make(Map, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = fromAny(e)
		}
		return NewMapping(m)
	default:
		return NewString(fmt.Sprint(t))
	}
}
