// internal/tools/calculator.go
package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"biblio/internal/pattern"
)

// InvalidCalculationMessage is the reply for any expression that cannot be evaluated.
const InvalidCalculationMessage = "Invalid calculation. Please try again."

const operators = "+-*/%"

// Evaluate computes a flat arithmetic expression strictly left to right,
// without operator precedence: "3 + 4 * 2" is (3+4)*2.
// Digits separated only by whitespace form one number ("1 2" is 12).
func Evaluate(expr string) (float64, error) {
	components, err := lexExpression(expr)
	if err != nil {
		return 0, err
	}
	if len(components) == 0 || len(components)%2 == 0 {
		return 0, fmt.Errorf("expression %q is incomplete: %w", expr, ErrInvalidExpression)
	}

	result, err := strconv.ParseFloat(components[0], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", components[0], ErrInvalidExpression)
	}

	for i := 1; i < len(components); i += 2 {
		op := components[i]
		if !strings.Contains(operators, op) {
			return 0, fmt.Errorf("expected operator, got %q: %w", op, ErrInvalidExpression)
		}
		next, err := strconv.ParseFloat(components[i+1], 64)
		if err != nil {
			return 0, fmt.Errorf("bad number %q: %w", components[i+1], ErrInvalidExpression)
		}
		result, err = apply(op, result, next)
		if err != nil {
			return 0, err
		}
	}
	return result, nil
}

func apply(op string, a, b float64) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, fmt.Errorf("division by zero: %w", ErrInvalidExpression)
		}
		return a / b, nil
	case "%":
		if b == 0 {
			return 0, fmt.Errorf("modulo by zero: %w", ErrInvalidExpression)
		}
		// result takes the sign of the divisor
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return m, nil
	}
	return 0, fmt.Errorf("unknown operator %q: %w", op, ErrInvalidExpression)
}

// lexExpression splits an expression into alternating number and operator
// components. Operators are recognised whether or not they are spaced.
func lexExpression(expr string) ([]string, error) {
	var (
		components []string
		number     strings.Builder
	)
	flush := func() {
		if number.Len() > 0 {
			components = append(components, number.String())
			number.Reset()
		}
	}

	for _, r := range expr {
		switch {
		case unicode.IsSpace(r):
			continue
		case strings.ContainsRune(operators, r):
			flush()
			components = append(components, string(r))
		case unicode.IsDigit(r) || r == '.':
			number.WriteRune(r)
		default:
			return nil, fmt.Errorf("unexpected %q in expression: %w", r, ErrInvalidExpression)
		}
	}
	flush()

	for i, c := range components {
		isOp := len(c) == 1 && strings.Contains(operators, c)
		if isOp != (i%2 == 1) {
			return nil, fmt.Errorf("operators and numbers must alternate in %q: %w", expr, ErrInvalidExpression)
		}
	}
	return components, nil
}

// FormatNumber renders a result without a trailing fractional zero.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CalculatorTool evaluates "calculate <expression>"
type CalculatorTool struct{}

// NewCalculatorTool creates the calculator tool
func NewCalculatorTool() *CalculatorTool {
	return &CalculatorTool{}
}

func (t *CalculatorTool) Name() string { return ToolNameCalculate }

func (t *CalculatorTool) Description() string {
	return "Evaluate + - * / % strictly left to right"
}

// Execute never fails: bad input becomes the fixed invalid-calculation reply
func (t *CalculatorTool) Execute(ctx context.Context, binding pattern.Binding) (*Result, error) {
	v, err := Evaluate(strings.Join(binding, " "))
	if err != nil {
		return Reply(InvalidCalculationMessage), nil
	}
	return Reply(FormatNumber(v)), nil
}
