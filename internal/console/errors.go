// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package console

import (
	"errors"

	"github.com/samber/oops"

	"github.com/holomush/dynconf/internal/condition"
	"github.com/holomush/dynconf/internal/property"
	"github.com/holomush/dynconf/internal/schema"
)

// Error codes for menu selection and input failures.
const (
	CodeOutOfRangeSelection = "OUT_OF_RANGE_SELECTION"
	CodeNonNumericSelection = "NON_NUMERIC_SELECTION"
	CodeInputClosed         = "INPUT_CLOSED"
)

// ErrInterrupted is returned by a LineReader when the user interrupts the
// current line. The loop discards the line and shows the menu again.
var ErrInterrupted = errors.New("interrupted")

// ErrOutOfRangeSelection creates an error for an index outside the menu.
func ErrOutOfRangeSelection(index, count int) error {
	return oops.Code(CodeOutOfRangeSelection).
		With("index", index).
		With("count", count).
		Errorf("selection %d is out of range [0, %d)", index, count)
}

// ErrNonNumericSelection creates an error for a selection that is not an
// integer.
func ErrNonNumericSelection(input string) error {
	return oops.Code(CodeNonNumericSelection).
		With("input", input).
		Errorf("selection %q is not a number", input)
}

// ErrInputClosed creates an error for input that ended before the user chose
// to exit.
func ErrInputClosed(cause error) error {
	return oops.Code(CodeInputClosed).Wrapf(cause, "input closed")
}

// UserMessage extracts a user-facing message from an error.
func UserMessage(err error) string {
	if err == nil {
		return "Something went wrong. Try again."
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return "Something went wrong. Try again."
	}

	ctx := oopsErr.Context()
	switch oopsErr.Code() {
	case CodeNonNumericSelection:
		return "Please enter an integer value."
	case CodeOutOfRangeSelection:
		return "Please enter a valid choice."
	case property.CodeInvalidChoice:
		if ctx["reason"] == property.ReasonNotDeclared {
			if choices, ok := ctx["choices"].([]string); ok {
				return "Please enter a value for " + stringOf(ctx["property"]) + " among " + formatList(choices) + "."
			}
		}
		return "Please enter a valid choice."
	case property.CodeNotAnInteger:
		return "Please enter an integer value."
	case property.CodeNotAFloat:
		return "Please enter a floating point value."
	case property.CodeUnknownProperty:
		return "Unknown property " + stringOf(ctx["property"]) + "."
	case condition.CodeUnknownOperand, condition.CodeUnknownOperator:
		return "The definition document has a broken condition: " + oopsErr.Error()
	case schema.CodeSchemaParse:
		return "Could not load the definition document: " + oopsErr.Error()
	case CodeInputClosed:
		return "Input closed."
	default:
		return "Something went wrong. Try again."
	}
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}
