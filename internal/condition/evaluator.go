// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package condition

import (
	"cmp"
	"math"
	"strings"

	"github.com/gobwas/glob"

	"github.com/holomush/dynconf/internal/value"
)

// Lookup resolves the current value of a property. ok is false when the
// property is not declared at all.
type Lookup interface {
	Value(name string) (v value.Value, ok bool)
}

// Values is a map-backed Lookup.
type Values map[string]value.Value

// Value implements Lookup.
func (m Values) Value(name string) (value.Value, bool) {
	v, ok := m[name]
	return v, ok
}

// matcher decides one condition against a set operand value.
type matcher func(c *Condition, v value.Value) bool

// matchers is the operator dispatch table. Operators missing here never
// evaluate.
var matchers = map[Operator]matcher{
	OpEq:   ordered(func(r int) bool { return r == 0 }),
	OpNe:   ordered(func(r int) bool { return r != 0 }),
	OpLt:   ordered(func(r int) bool { return r < 0 }),
	OpLe:   ordered(func(r int) bool { return r <= 0 }),
	OpGt:   ordered(func(r int) bool { return r > 0 }),
	OpGe:   ordered(func(r int) bool { return r >= 0 }),
	OpLike: matchLike,
	OpIn:   matchIn,
}

// Evaluate reports whether every condition holds against l. Conditions are
// checked in order and evaluation stops at the first one that does not hold;
// an unset operand counts as not holding. An empty sequence holds.
//
// Errors come only from the triple being evaluated: an operand l does not
// know, or an operator outside the dispatch table. Triples after the first
// failing one are never looked at.
func Evaluate(conds []Condition, l Lookup) (bool, error) {
	for i := range conds {
		ok, err := evalCondition(&conds[i], l)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func evalCondition(c *Condition, l Lookup) (bool, error) {
	match, ok := matchers[c.Operator]
	if !ok {
		return false, ErrUnknownOperator(c.Operator.String())
	}
	v, declared := l.Value(c.Operand)
	if !declared {
		return false, ErrUnknownOperand(c.Operand)
	}
	if !v.IsSet() {
		return false, nil
	}
	return match(c, v), nil
}

// ordered adapts a three-way comparison outcome test into a matcher.
func ordered(test func(r int) bool) matcher {
	return func(c *Condition, v value.Value) bool {
		r, ok := compareLiteral(v, c.Literal)
		if !ok {
			return false
		}
		return test(r)
	}
}

// compareLiteral compares v against a scalar literal using the literal's
// type: string literals compare against v's text form, number literals
// compare numerically, exactly when both sides are whole numbers. ok is
// false when the two cannot be compared.
func compareLiteral(v value.Value, lit Literal) (int, bool) {
	switch lit.Kind {
	case LiteralString:
		text, ok := v.Text()
		if !ok {
			return 0, false
		}
		return strings.Compare(text, lit.Str), true
	case LiteralNumber:
		if lit.Whole {
			if i, ok := v.Whole(); ok {
				return cmp.Compare(i, lit.Int), true
			}
		}
		n, ok := v.Number()
		if !ok || math.IsNaN(n) || math.IsNaN(lit.Num) {
			return 0, false
		}
		return cmp.Compare(n, lit.Num), true
	default:
		return 0, false
	}
}

func matchIn(c *Condition, v value.Value) bool {
	for _, item := range c.Literal.Items {
		if r, ok := compareLiteral(v, item); ok && r == 0 {
			return true
		}
	}
	return false
}

func matchLike(c *Condition, v value.Value) bool {
	text, ok := v.Text()
	if !ok {
		return false
	}
	pattern := c.pattern
	if pattern == nil {
		compiled, err := glob.Compile(c.Literal.Str)
		if err != nil {
			return false
		}
		pattern = compiled
	}
	return pattern.Match(text)
}
