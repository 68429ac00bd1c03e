package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrorValue is the display literal produced by a division by zero.
const ErrorValue = "Error"

// DefaultPrecision is the number of decimal places results are rounded to.
const DefaultPrecision = 8

// Evaluate computes a op b rounded to DefaultPrecision decimal places.
//
// If either operand fails to parse, or op is unknown, b is returned unchanged.
// Division by zero returns ErrorValue.
func Evaluate(a, b string, op Operator) string {
	return evaluate(a, b, op, DefaultPrecision)
}

func evaluate(a, b string, op Operator, places int) string {
	x, ok := parseOperand(a)
	if !ok {
		return b
	}
	y, ok := parseOperand(b)
	if !ok {
		return b
	}

	var result float64
	switch op {
	case OpAdd:
		result = x + y
	case OpSub:
		result = x - y
	case OpMul:
		result = x * y
	case OpDiv:
		if y == 0 {
			return ErrorValue
		}
		result = x / y
	default:
		return b
	}

	return FormatNumber(roundTo(result, places))
}

// parseOperand parses a decimal literal. Values beyond float64 range parse as
// ±Inf; NaN is treated as a parse failure.
func parseOperand(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, false
		}
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// roundTo rounds x to the given number of decimal places. Halves round toward +Inf.
func roundTo(x float64, places int) float64 {
	scale := math.Pow10(places)
	scaled := x * scale
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return scaled / scale
	}
	r := math.Floor(scaled)
	if scaled-r >= 0.5 {
		r++
	}
	return r / scale
}

// FormatNumber returns the shortest decimal string that round-trips to f.
//
// Magnitudes in [1e-6, 1e21) use plain notation; anything else uses exponent
// notation with an explicit sign and no zero padding ("1e-8", "1.5e+21").
// Negative zero formats as "0".
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
