// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package condition

import "strings"

// Operator is a comparison operator permitted in a condition.
type Operator int

// Supported operators. OpInvalid is the zero value and never evaluates.
const (
	OpInvalid Operator = iota
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLike
	OpIn
)

// operatorSpellings maps every accepted spelling to its operator.
var operatorSpellings = map[string]Operator{
	"==":   OpEq,
	"=":    OpEq,
	"eq":   OpEq,
	"!=":   OpNe,
	"<>":   OpNe,
	"ne":   OpNe,
	"<":    OpLt,
	"lt":   OpLt,
	"<=":   OpLe,
	"le":   OpLe,
	">":    OpGt,
	"gt":   OpGt,
	">=":   OpGe,
	"ge":   OpGe,
	"like": OpLike,
	"in":   OpIn,
}

// ParseOperator resolves an operator spelling. Word forms are case-insensitive.
func ParseOperator(s string) (Operator, error) {
	op, ok := operatorSpellings[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return OpInvalid, ErrUnknownOperator(s)
	}
	return op, nil
}

// String returns the canonical spelling.
func (o Operator) String() string {
	switch o {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpLike:
		return "like"
	case OpIn:
		return "in"
	default:
		return "invalid"
	}
}
