// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package condition evaluates the dependency rules that gate which properties
// and which choice values are currently available.
//
// A condition is a triple (operand, operator, literal). A sequence of
// conditions holds when every triple holds, checked in order and stopping at
// the first failure. Comparisons go through an explicit operator table; no
// condition is ever evaluated as text.
package condition

import (
	"math"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
)

// LiteralKind identifies the type of a condition literal.
type LiteralKind int

// Literal kinds.
const (
	LiteralString LiteralKind = iota + 1
	LiteralNumber
	LiteralList
)

// Literal is the right-hand side of a condition. Whole number literals also
// carry their exact int64 value in Int, since Num cannot hold every int64.
type Literal struct {
	Kind  LiteralKind
	Str   string
	Num   float64
	Int   int64
	Whole bool
	Items []Literal
}

// maxExactFloat is the largest magnitude below which every whole float64 is
// an exact integer.
const maxExactFloat = 1 << 53

// StringLiteral returns a string literal.
func StringLiteral(s string) Literal { return Literal{Kind: LiteralString, Str: s} }

// NumberLiteral returns a numeric literal.
func NumberLiteral(n float64) Literal {
	if n == math.Trunc(n) && math.Abs(n) <= maxExactFloat {
		return IntLiteral(int64(n))
	}
	return Literal{Kind: LiteralNumber, Num: n}
}

// IntLiteral returns a whole number literal that compares exactly against
// integer values.
func IntLiteral(i int64) Literal {
	return Literal{Kind: LiteralNumber, Num: float64(i), Int: i, Whole: true}
}

// ListLiteral returns a list literal. Items must be scalar.
func ListLiteral(items ...Literal) Literal { return Literal{Kind: LiteralList, Items: items} }

// String renders the literal the way it would be written in an expression.
func (l Literal) String() string {
	switch l.Kind {
	case LiteralString:
		return strconv.Quote(l.Str)
	case LiteralNumber:
		if l.Whole {
			return strconv.FormatInt(l.Int, 10)
		}
		return strconv.FormatFloat(l.Num, 'g', -1, 64)
	case LiteralList:
		parts := make([]string, len(l.Items))
		for i, item := range l.Items {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<invalid>"
	}
}

// Condition is a single (operand, operator, literal) triple.
type Condition struct {
	Operand  string
	Operator Operator
	Literal  Literal

	pattern glob.Glob // compiled for OpLike
}

// New builds a condition and checks that the literal fits the operator:
// "in" takes a list of scalars, "like" takes a glob pattern string, and every
// other operator takes a scalar.
func New(operand string, op Operator, lit Literal) (Condition, error) {
	c := Condition{Operand: operand, Operator: op, Literal: lit}
	switch op {
	case OpIn:
		if lit.Kind != LiteralList {
			return Condition{}, ErrInvalidLiteral(op, "expected a list")
		}
		for _, item := range lit.Items {
			if item.Kind == LiteralList {
				return Condition{}, ErrInvalidLiteral(op, "nested lists are not allowed")
			}
		}
	case OpLike:
		if lit.Kind != LiteralString {
			return Condition{}, ErrInvalidLiteral(op, "expected a pattern string")
		}
		g, err := glob.Compile(lit.Str)
		if err != nil {
			return Condition{}, ErrInvalidLiteral(op, err.Error())
		}
		c.pattern = g
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		if lit.Kind != LiteralString && lit.Kind != LiteralNumber {
			return Condition{}, ErrInvalidLiteral(op, "expected a string or number")
		}
	default:
		return Condition{}, ErrUnknownOperator(op.String())
	}
	return c, nil
}

// String renders the condition as an expression, e.g. `mode == "B"`.
func (c Condition) String() string {
	return c.Operand + " " + c.Operator.String() + " " + c.Literal.String()
}
