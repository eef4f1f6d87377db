package vm

import (
	"strconv"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	// VKNone is the absence of a value, returned by functions without a result.
	VKNone ValueKind = iota
	VKInt
	VKFloat
	VKString
	VKBool
)

func (k ValueKind) String() string {
	switch k {
	case VKNone:
		return "none"
	case VKInt:
		return "int"
	case VKFloat:
		return "float"
	case VKString:
		return "string"
	case VKBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a VM stack value.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

func IntValue(v int64) Value     { return Value{Kind: VKInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: VKFloat, Float: v} }
func StringValue(v string) Value { return Value{Kind: VKString, Str: v} }
func BoolValue(v bool) Value     { return Value{Kind: VKBool, Bool: v} }

func (v Value) IsNone() bool { return v.Kind == VKNone }

// String renders the value the way `grok run` prints results.
func (v Value) String() string {
	switch v.Kind {
	case VKInt:
		return strconv.FormatInt(v.Int, 10)
	case VKFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case VKString:
		return v.Str
	case VKBool:
		return strconv.FormatBool(v.Bool)
	default:
		return "()"
	}
}

// Repr is String with strings quoted, for traces.
func (v Value) Repr() string {
	if v.Kind == VKString {
		return strconv.Quote(v.Str)
	}
	return v.String()
}

// ParseValue reads a command-line argument: an integer, a float, true or
// false, and anything else as a string.
func ParseValue(s string) Value {
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return IntValue(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatValue(f)
	}
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return BoolValue(b)
	}
	return StringValue(s)
}
