// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package condition

import (
	"math"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/dynconf/internal/value"
)

// --- Helpers ---

// mkCond builds a condition, failing the test on construction errors.
func mkCond(t *testing.T, operand string, op Operator, lit Literal) Condition {
	t.Helper()
	c, err := New(operand, op, lit)
	require.NoError(t, err)
	return c
}

func str(s string) Literal { return StringLiteral(s) }
func num(n float64) Literal { return NumberLiteral(n) }
func list(l ...Literal) Literal { return ListLiteral(l...) }

// --- Comparison Tests ---

func TestEvaluate_Comparison(t *testing.T) {
	tests := []struct {
		name     string
		operand  value.Value
		op       Operator
		lit      Literal
		expected bool
	}{
		// String comparisons
		{"string equality match", value.StringValue("B"), OpEq, str("B"), true},
		{"string equality no match", value.StringValue("A"), OpEq, str("B"), false},
		{"string not equals match", value.StringValue("A"), OpNe, str("B"), true},
		{"string not equals no match", value.StringValue("B"), OpNe, str("B"), false},
		{"string less than", value.StringValue("apple"), OpLt, str("banana"), true},
		{"string greater or equal", value.StringValue("b"), OpGe, str("b"), true},
		{"string literal with quotes is compared verbatim", value.StringValue(`it's "x"`), OpEq, str(`it's "x"`), true},
		{"string literal against integer text", value.IntValue(7), OpEq, str("7"), true},
		{"string literal against float text", value.FloatValue(7), OpEq, str("7.0"), true},

		// Numeric comparisons
		{"numeric greater than true", value.IntValue(10), OpGt, num(5), true},
		{"numeric greater than false", value.IntValue(3), OpGt, num(5), false},
		{"numeric greater than boundary false", value.IntValue(5), OpGt, num(5), false},
		{"numeric >= true on boundary", value.IntValue(5), OpGe, num(5), true},
		{"numeric < true", value.FloatValue(4.5), OpLt, num(5), true},
		{"numeric <= true on boundary", value.FloatValue(5), OpLe, num(5), true},
		{"numeric equality int vs float", value.IntValue(2), OpEq, num(2.0), true},
		{"numeric not equals", value.IntValue(2), OpNe, num(3), true},
		{"numeric literal against numeric string", value.StringValue("12"), OpGt, num(3), true},
		{"numeric literal against text string", value.StringValue("abc"), OpEq, num(3), false},
		{"numeric literal against text string not equals", value.StringValue("abc"), OpNe, num(3), false},

		// Whole numbers beyond float64 precision
		{"large integer greater than neighbour", value.IntValue(9007199254740993), OpGt, IntLiteral(9007199254740992), true},
		{"large integer not equal to neighbour", value.IntValue(9007199254740993), OpEq, IntLiteral(9007199254740992), false},
		{"large integer equality", value.IntValue(math.MaxInt64), OpEq, IntLiteral(math.MaxInt64), true},
		{"large integer string", value.StringValue("9007199254740993"), OpGt, IntLiteral(9007199254740992), true},
		{"large integer against fractional literal", value.IntValue(9007199254740993), OpGt, num(0.5), true},
		{"fractional value against whole literal", value.FloatValue(2.5), OpGt, IntLiteral(2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mkCond(t, "x", tt.op, tt.lit)
			got, err := Evaluate([]Condition{c}, Values{"x": tt.operand})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEvaluate_ParsedLargeInteger(t *testing.T) {
	c, err := ParseExpression("a > 9007199254740992")
	require.NoError(t, err)

	got, err := Evaluate([]Condition{c}, Values{"a": value.IntValue(9007199254740993)})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = Evaluate([]Condition{c}, Values{"a": value.IntValue(9007199254740992)})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEvaluate_Like(t *testing.T) {
	c := mkCond(t, "host", OpLike, str("*.example.com"))

	got, err := Evaluate([]Condition{c}, Values{"host": value.StringValue("api.example.com")})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = Evaluate([]Condition{c}, Values{"host": value.StringValue("example.org")})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEvaluate_LikeWithoutCompiledPattern(t *testing.T) {
	c := Condition{Operand: "host", Operator: OpLike, Literal: str("db-?")}

	got, err := Evaluate([]Condition{c}, Values{"host": value.StringValue("db-1")})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestEvaluate_In(t *testing.T) {
	c := mkCond(t, "mode", OpIn, list(str("A"), str("B"), num(3)))

	tests := []struct {
		name     string
		v        value.Value
		expected bool
	}{
		{"string member", value.StringValue("B"), true},
		{"string non-member", value.StringValue("C"), false},
		{"numeric member", value.IntValue(3), true},
		{"numeric non-member", value.IntValue(4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate([]Condition{c}, Values{"mode": tt.v})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// --- Sequence semantics ---

func TestEvaluate_EmptySequenceHolds(t *testing.T) {
	got, err := Evaluate(nil, Values{})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = Evaluate([]Condition{}, nil)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestEvaluate_AllMustHold(t *testing.T) {
	conds := []Condition{
		mkCond(t, "mode", OpEq, str("B")),
		mkCond(t, "count", OpGt, num(1)),
	}

	got, err := Evaluate(conds, Values{"mode": value.StringValue("B"), "count": value.IntValue(2)})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = Evaluate(conds, Values{"mode": value.StringValue("B"), "count": value.IntValue(1)})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEvaluate_UnsetOperandFails(t *testing.T) {
	conds := []Condition{
		mkCond(t, "mode", OpEq, str("B")),
		mkCond(t, "flag", OpNe, str("off")),
	}
	values := Values{"mode": value.StringValue("B"), "flag": value.Unset()}

	got, err := Evaluate(conds, values)
	require.NoError(t, err)
	assert.False(t, got, "an unset operand never satisfies a condition, even !=")
}

func TestEvaluate_ShortCircuitsOnFirstFailure(t *testing.T) {
	conds := []Condition{
		mkCond(t, "mode", OpEq, str("B")),
		// Would fail with UNKNOWN_OPERAND if evaluated.
		{Operand: "undeclared", Operator: OpEq, Literal: str("x")},
		// Would fail with UNKNOWN_OPERATOR if evaluated.
		{Operand: "mode", Operator: OpInvalid, Literal: str("x")},
	}

	got, err := Evaluate(conds, Values{"mode": value.StringValue("A")})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEvaluate_ShortCircuitsOnUnsetOperand(t *testing.T) {
	conds := []Condition{
		mkCond(t, "mode", OpEq, str("B")),
		{Operand: "undeclared", Operator: OpEq, Literal: str("x")},
	}

	got, err := Evaluate(conds, Values{"mode": value.Unset()})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEvaluate_UnknownOperandReached(t *testing.T) {
	conds := []Condition{
		mkCond(t, "mode", OpEq, str("B")),
		{Operand: "undeclared", Operator: OpEq, Literal: str("x")},
	}

	_, err := Evaluate(conds, Values{"mode": value.StringValue("B")})
	require.Error(t, err)
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnknownOperand, oopsErr.Code())
	assert.Equal(t, "undeclared", oopsErr.Context()["operand"])
}

func TestEvaluate_UnknownOperatorReached(t *testing.T) {
	conds := []Condition{{Operand: "mode", Operator: Operator(42), Literal: str("x")}}

	_, err := Evaluate(conds, Values{"mode": value.StringValue("B")})
	require.Error(t, err)
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnknownOperator, oopsErr.Code())
}

// --- Rules ---

func TestRules_KeyValid(t *testing.T) {
	rules := Rules{
		Key: map[string][]Condition{
			"count": {mkCond(t, "mode", OpEq, str("B"))},
		},
	}

	ok, err := rules.KeyValid("mode", Values{"mode": value.Unset()})
	require.NoError(t, err)
	assert.True(t, ok, "property without key conditions is always valid")

	ok, err = rules.KeyValid("count", Values{"mode": value.Unset()})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = rules.KeyValid("count", Values{"mode": value.StringValue("B")})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRules_ValueValid(t *testing.T) {
	rules := Rules{
		Value: map[string]map[string][]Condition{
			"mode": {"B": {mkCond(t, "flag", OpEq, str("on"))}},
		},
	}

	tests := []struct {
		name      string
		property  string
		candidate string
		flag      value.Value
		expected  bool
	}{
		{"property without value conditions", "other", "B", value.Unset(), true},
		{"candidate without value conditions", "mode", "A", value.Unset(), true},
		{"gated candidate with unset operand", "mode", "B", value.Unset(), false},
		{"gated candidate with failing operand", "mode", "B", value.StringValue("off"), false},
		{"gated candidate with satisfied operand", "mode", "B", value.StringValue("on"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := rules.ValueValid(tt.property, tt.candidate, Values{"flag": tt.flag})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestRules_Dependents(t *testing.T) {
	rules := Rules{
		Key: map[string][]Condition{
			"count": {mkCond(t, "mode", OpEq, str("B"))},
			"ratio": {mkCond(t, "count", OpGt, num(0)), mkCond(t, "mode", OpNe, str("A"))},
			"label": {mkCond(t, "count", OpGt, num(0))},
		},
	}

	assert.ElementsMatch(t, []string{"count", "ratio"}, rules.Dependents("mode"))
	assert.ElementsMatch(t, []string{"ratio", "label"}, rules.Dependents("count"))
	assert.Empty(t, rules.Dependents("label"))
}
