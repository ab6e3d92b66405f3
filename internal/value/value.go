// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package value defines the current value held by a configurable property.
package value

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

// Value kinds.
const (
	KindUnset Kind = iota
	KindInteger
	KindFloat
	KindString
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is the current value of a property: unset, an integer, a float or a
// string. The zero Value is unset.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Unset returns the unset value.
func Unset() Value { return Value{} }

// IntValue returns an integer value.
func IntValue(i int64) Value { return Value{kind: KindInteger, i: i} }

// FloatValue returns a float value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsSet reports whether v holds anything.
func (v Value) IsSet() bool { return v.kind != KindUnset }

// Int returns the integer held by v.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInteger }

// Float returns the float held by v.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Str returns the string held by v.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Number returns the numeric view of v. Integers and floats convert directly;
// strings convert only when they parse as a number.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Whole returns v as an exact int64 when it holds a whole number: an integer,
// a string that parses as one, or an integral float small enough to be exact.
func (v Value) Whole() (int64, bool) {
	switch v.kind {
	case KindInteger:
		return v.i, true
	case KindFloat:
		if v.f == math.Trunc(v.f) && math.Abs(v.f) <= 1<<53 {
			return int64(v.f), true
		}
		return 0, false
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// Text returns the textual form of a set value, as used for string
// comparisons. Unset values have no text.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10), true
	case KindFloat:
		return FormatFloat(v.f), true
	case KindString:
		return v.s, true
	default:
		return "", false
	}
}

// String renders v for display. Unset renders as "<unset>".
func (v Value) String() string {
	if s, ok := v.Text(); ok {
		return s
	}
	return "<unset>"
}

// Equal reports whether v and o hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case KindString:
		return v.s == o.s
	default:
		return true
	}
}

// FormatFloat renders f so that whole numbers keep a trailing ".0",
// distinguishing a stored float 7.0 from an integer 7.
func FormatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e16 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
