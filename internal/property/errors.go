// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package property

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/oops"
)

// Error codes for assignment and lookup failures.
const (
	CodeInvalidChoice   = "INVALID_CHOICE"
	CodeNotAnInteger    = "NOT_AN_INTEGER"
	CodeNotAFloat       = "NOT_A_FLOAT"
	CodeUnknownProperty = "UNKNOWN_PROPERTY"
)

// Reasons attached to INVALID_CHOICE errors under the "reason" key.
const (
	ReasonNotDeclared = "not_declared"
	ReasonCondition   = "condition"
	ReasonHidden      = "hidden"
)

// ErrInvalidChoice creates an error for a choice that is not declared or not
// currently offerable.
func ErrInvalidChoice(name, raw, reason string, choices []string) error {
	b := oops.Code(CodeInvalidChoice).
		With("property", name).
		With("value", raw).
		With("reason", reason).
		With("choices", choices)
	if reason == ReasonNotDeclared {
		return b.Errorf("%q is not one of [%s] for %s", raw, strings.Join(choices, ", "), name)
	}
	return b.Errorf("%q is not currently a valid choice for %s", raw, name)
}

// ErrPropertyHidden creates an error for selecting a property whose key
// conditions do not hold.
func ErrPropertyHidden(name string) error {
	return oops.Code(CodeInvalidChoice).
		With("property", name).
		With("reason", ReasonHidden).
		Errorf("%s cannot be set right now", name)
}

// ErrNotAnInteger creates an error for input that is not a base-10 integer.
func ErrNotAnInteger(name, raw string) error {
	return oops.Code(CodeNotAnInteger).
		With("property", name).
		With("value", raw).
		Errorf("%q is not an integer", raw)
}

// ErrNotAFloat creates an error for input that is not a floating point number.
func ErrNotAFloat(name, raw string) error {
	return oops.Code(CodeNotAFloat).
		With("property", name).
		With("value", raw).
		Errorf("%q is not a floating point number", raw)
}

// ErrUnknownProperty creates an error for a name the schema does not declare.
func ErrUnknownProperty(name string) error {
	return oops.Code(CodeUnknownProperty).
		With("property", name).
		Errorf("unknown property %q", name)
}

// AmbiguousPropertyError indicates multiple properties match a prefix.
type AmbiguousPropertyError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousPropertyError) Error() string {
	sorted := make([]string, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Strings(sorted)
	return fmt.Sprintf("ambiguous property '%s' - matches: %s", e.Prefix, strings.Join(sorted, ", "))
}
