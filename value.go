package veneer

import (
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the runtime type of a Value.
//
// Prop values and attribute values carry an explicit kind tag instead of
// being probed with reflection. The tag is decided once, when the value is
// constructed or ingested, and all resolution dispatches on it.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
	KindList
	KindMap
)

// String returns the kind name as used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}
	return "unknown"
}

// Value is the tagged union used for prop values, attribute values, and
// everything else that crosses the component boundary.
//
// A Value is one of: null, string, bool, int, float, a list of Values, or
// an ordered map of string keys to Values. Map fields preserve insertion
// order because declaration order is significant throughout the system
// (prop resolve order, attribute rendering order, first-seen class
// deduplication).
//
// The zero Value is Null.
type Value struct {
	kind Kind
	s    string
	b    bool
	i    int64
	f    float64
	list []Value
	m    []Field
}

// Field is one ordered key/value pair of a map Value or a scope.
type Field struct {
	Key string
	Val Value
}

// Null is the null Value.
var Null = Value{}

// String constructs a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bool constructs a bool Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int constructs an int Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float constructs a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// List constructs a list Value from the given items.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Map constructs an ordered map Value from the given fields.
// Later fields with a duplicate key overwrite the earlier value while
// keeping the original position, matching attribute-merge semantics.
func Map(fields ...Field) Value {
	v := Value{kind: KindMap}
	for _, f := range fields {
		v.m = setField(v.m, f.Key, f.Val)
	}
	return v
}

func setField(fields []Field, key string, val Value) []Field {
	for i := range fields {
		if fields[i].Key == key {
			fields[i].Val = val
			return fields
		}
	}
	return append(fields, Field{Key: key, Val: val})
}

// Kind returns the value's kind tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload, or "" for non-string values.
func (v Value) Str() string {
	if v.kind == KindString {
		return v.s
	}
	return ""
}

// IsTrue reports whether the value is the bool true.
func (v Value) IsTrue() bool { return v.kind == KindBool && v.b }

// IsFalse reports whether the value is the bool false.
func (v Value) IsFalse() bool { return v.kind == KindBool && !v.b }

// Int64 returns the int payload, or 0 for non-int values.
func (v Value) Int64() int64 {
	if v.kind == KindInt {
		return v.i
	}
	return 0
}

// Float64 returns the float payload, or 0 for non-float values.
func (v Value) Float64() float64 {
	if v.kind == KindFloat {
		return v.f
	}
	return 0
}

// Items returns the list payload, or nil for non-list values.
func (v Value) Items() []Value {
	if v.kind == KindList {
		return v.list
	}
	return nil
}

// Fields returns the ordered fields of a map value, or nil otherwise.
func (v Value) Fields() []Field {
	if v.kind == KindMap {
		return v.m
	}
	return nil
}

// Lookup returns the field value for key in a map value.
func (v Value) Lookup(key string) (Value, bool) {
	for _, f := range v.m {
		if f.Key == key {
			return f.Val, true
		}
	}
	return Null, false
}

// Get returns the field value for key, or Null when absent.
func (v Value) Get(key string) Value {
	val, _ := v.Lookup(key)
	return val
}

// Truthy reports whether the value is truthy: null, false, zero numbers,
// the empty string, and empty lists/maps are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindString:
		return v.s != ""
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return len(v.m) > 0
	}
	return false
}

// IsEmpty reports whether the value counts as empty for required-prop
// checks: null, the empty string, or an empty list/map. Zero numbers and
// false are present values, not empty ones.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == ""
	case KindList:
		return len(v.list) == 0
	case KindMap:
		return len(v.m) == 0
	}
	return false
}

// String renders the value as attribute text. Scalars render directly,
// lists render as their space-joined items (useful for class lists carried
// as attribute values), and maps render empty.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, item := range v.list {
			if s := item.String(); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// Equal reports deep equality of two values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == o.s
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for i := range v.m {
			if v.m[i].Key != o.m[i].Key || !v.m[i].Val.Equal(o.m[i].Val) {
				return false
			}
		}
		return true
	}
	return false
}

// ToNative converts the value to plain Go types (string, bool, int64,
// float64, []any, map[string]any, nil) for msgpack encoding and hook
// boundaries. Map field order is not preserved by the native form.
func (v Value) ToNative() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.ToNative()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for _, f := range v.m {
			out[f.Key] = f.Val.ToNative()
		}
		return out
	}
	return nil
}

// FromNative converts plain Go data into a Value. Unordered native maps
// are ingested with sorted keys so the result is deterministic. Unhandled
// types become Null.
func FromNative(v any) Value {
	switch n := v.(type) {
	case nil:
		return Null
	case Value:
		return n
	case string:
		return String(n)
	case bool:
		return Bool(n)
	case int:
		return Int(int64(n))
	case int8:
		return Int(int64(n))
	case int16:
		return Int(int64(n))
	case int32:
		return Int(int64(n))
	case int64:
		return Int(n)
	case uint:
		return Int(int64(n))
	case uint8:
		return Int(int64(n))
	case uint16:
		return Int(int64(n))
	case uint32:
		return Int(int64(n))
	case uint64:
		return Int(int64(n))
	case float32:
		return Float(float64(n))
	case float64:
		return Float(n)
	case []any:
		items := make([]Value, len(n))
		for i, item := range n {
			items[i] = FromNative(item)
		}
		return List(items...)
	case []string:
		items := make([]Value, len(n))
		for i, item := range n {
			items[i] = String(item)
		}
		return List(items...)
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Val: FromNative(n[k])}
		}
		return Map(fields...)
	case []Field:
		return Map(n...)
	}
	return Null
}
