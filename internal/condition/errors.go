// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package condition

import (
	"github.com/samber/oops"
)

// Error codes for condition construction and evaluation failures.
const (
	CodeUnknownOperator = "UNKNOWN_OPERATOR"
	CodeUnknownOperand  = "UNKNOWN_OPERAND"
	CodeInvalidLiteral  = "INVALID_LITERAL"
)

// ErrUnknownOperator creates an error for an operator outside the whitelist.
func ErrUnknownOperator(op string) error {
	return oops.Code(CodeUnknownOperator).
		With("operator", op).
		Errorf("unknown operator %q", op)
}

// ErrUnknownOperand creates an error for an operand the lookup cannot resolve.
func ErrUnknownOperand(operand string) error {
	return oops.Code(CodeUnknownOperand).
		With("operand", operand).
		Errorf("unknown operand %q", operand)
}

// ErrInvalidLiteral creates an error for a literal that does not fit its operator.
func ErrInvalidLiteral(op Operator, reason string) error {
	return oops.Code(CodeInvalidLiteral).
		With("operator", op.String()).
		Errorf("invalid literal for %s: %s", op, reason)
}
