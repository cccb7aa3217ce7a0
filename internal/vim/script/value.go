package script

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Value.
type Kind uint8

// Value kinds. New kinds go before numKinds.
const (
	KindString Kind = iota
	KindNumber
	KindFloat
	KindBool
	KindNil
	KindList
	KindDict
	KindFunc
	KindOpaque

	numKinds
)

var kindNames = [numKinds]string{
	KindString: "string",
	KindNumber: "number",
	KindFloat:  "float",
	KindBool:   "bool",
	KindNil:    "nil",
	KindList:   "list",
	KindDict:   "dict",
	KindFunc:   "func",
	KindOpaque: "opaque",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is the result of evaluating an expression. The set of
// implementations is closed: only this package can add variants.
type Value interface {
	// Kind reports the variant.
	Kind() Kind

	// String returns the generic text of the value.
	String() string

	sealed()
}

// String is a text value.
type String string

// Number is an integer value.
type Number int64

// Float is a floating point value.
type Float float64

// Bool is a boolean value.
type Bool bool

// Nil is the absence of a value.
type Nil struct{}

// List is an ordered sequence of values.
type List []Value

// Func is a callable value. Only its name is kept.
type Func struct {
	Name string
}

// Opaque is a value the evaluator could not map to another kind.
type Opaque struct {
	TypeName string
}

// Dict is a mapping from string keys to values. Keys are kept in insertion
// order.
type Dict struct {
	keys   []string
	values map[string]Value
}

// NewDict creates an empty dict.
func NewDict() *Dict {
	return &Dict{values: make(map[string]Value)}
}

// Set stores v under key.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.keys)
}

func (String) Kind() Kind { return KindString }
func (Number) Kind() Kind { return KindNumber }
func (Float) Kind() Kind  { return KindFloat }
func (Bool) Kind() Kind   { return KindBool }
func (Nil) Kind() Kind    { return KindNil }
func (List) Kind() Kind   { return KindList }
func (*Dict) Kind() Kind  { return KindDict }
func (Func) Kind() Kind   { return KindFunc }
func (Opaque) Kind() Kind { return KindOpaque }

func (String) sealed() {}
func (Number) sealed() {}
func (Float) sealed()  {}
func (Bool) sealed()   {}
func (Nil) sealed()    {}
func (List) sealed()   {}
func (*Dict) sealed()  {}
func (Func) sealed()   {}
func (Opaque) sealed() {}

func (s String) String() string { return string(s) }

func (n Number) String() string { return strconv.FormatInt(int64(n), 10) }

// String formats the float so it always reads as a float: 3.0, not 3.
func (f Float) String() string {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (Nil) String() string { return "nil" }

// String renders the list literal, quoting strings: [1, 'a'].
func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = literal(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// String renders the dict literal with sorted keys: {'a': 1}.
func (d *Dict) String() string {
	keys := d.Keys()
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = quote(k) + ": " + literal(d.values[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (f Func) String() string { return "function('" + f.Name + "')" }

func (o Opaque) String() string { return "<" + o.TypeName + ">" }

// literal renders v as it appears inside a container.
func literal(v Value) string {
	if s, ok := v.(String); ok {
		return quote(string(s))
	}
	return v.String()
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
