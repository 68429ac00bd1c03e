package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		op   Operator
		want string
	}{
		{"add", "1", "2", OpAdd, "3"},
		{"subtract", "2", "5", OpSub, "-3"},
		{"multiply", "2.5", "4", OpMul, "10"},
		{"divide", "1", "4", OpDiv, "0.25"},
		{"repeating fraction rounded", "1", "3", OpDiv, "0.33333333"},
		{"two thirds rounds up", "2", "3", OpDiv, "0.66666667"},
		{"float artifact removed", "0.1", "0.2", OpAdd, "0.3"},
		{"product artifact removed", "1.1", "1.1", OpMul, "1.21"},
		{"trailing decimal operand", "5.", "2", OpAdd, "7"},
		{"leading decimal operand", ".5", "2", OpMul, "1"},
		{"division by zero", "2", "0", OpDiv, ErrorValue},
		{"zero divided by zero", "0", "0", OpDiv, ErrorValue},
		{"division by decimal zero", "7", "0.000", OpDiv, ErrorValue},
		{"division by negative zero", "7", "-0", OpDiv, ErrorValue},
		{"first operand error", ErrorValue, "3", OpAdd, "3"},
		{"second operand error", "3", ErrorValue, OpAdd, ErrorValue},
		{"lone decimal point", ".", "9", OpSub, "9"},
		{"nan is not a number", "NaN", "9", OpSub, "9"},
		{"unknown operator", "7", "2", Operator("%"), "2"},
		{"no operator", "7", "2", OpNone, "2"},
		{"tiny result rounds to zero", "0.000000004", "0", OpAdd, "0"},
		{"smallest representable step", "0.00000001", "0", OpAdd, "1e-8"},
		{"negative result rounds to zero", "-0.000000001", "0", OpAdd, "0"},
		{"huge operand parses as infinity", "1" + zeros(400), "1", OpAdd, "Infinity"},
		{"infinity operand", "Infinity", "2", OpMul, "Infinity"},
		{"negative infinity operand", "-Infinity", "2", OpMul, "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.a, tt.b, tt.op))
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, "0.14285714", Evaluate("1", "7", OpDiv))
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{0.3, "0.3"},
		{-12.5, "-12.5"},
		{123456789, "123456789"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e21, "1.5e+21"},
		{-2e30, "-2e+30"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{1.25e-8, "1.25e-8"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 3.0, roundTo(2.5, 0))
	assert.Equal(t, -2.0, roundTo(-2.5, 0))
	assert.Equal(t, 0.12, roundTo(0.123, 2))
	assert.True(t, math.IsInf(roundTo(math.Inf(1), 8), 1))
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
