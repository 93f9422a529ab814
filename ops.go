package calculator

import "math"

// round9 truncates accumulated floating point error to nine decimal
// places. Every successful engine result passes through it, which is why
// "0.1 0.2 +" is exactly 0.3.
func round9(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

// factorial computes n! for non-negative integral n.
func factorial(n float64) (float64, error) {
	if n < 0 || n != math.Trunc(n) {
		return 0, &DomainError{X: n, Func: "!"}
	}
	if n == 0 || n == 1 {
		return 1, nil
	}
	r := 1.0
	for i := 2.0; i <= n; i++ {
		r *= i
		// Past 170! the product is infinite and further factors
		// cannot change it.
		if math.IsInf(r, 0) {
			break
		}
	}
	return r, nil
}

// Apply evaluates a single operator. Unary operators take their operand
// in a; the evaluator passes b as zero for them, and the factorial
// misuse check relies on that. The named functions are matched before
// the single-character operators.
func Apply(op string, a, b float64) (float64, error) {
	switch op {
	case "sqrt":
		if a < 0 {
			return 0, &DomainError{X: a, Func: op}
		}
		return round9(math.Sqrt(a)), nil
	case "sin":
		return round9(math.Sin(a)), nil
	case "cos":
		return round9(math.Cos(a)), nil
	case "tan":
		// Exact comparison, not an epsilon: only arguments whose
		// reduction lands precisely on pi/2 are rejected.
		if math.Mod(math.Abs(a), math.Pi) == math.Pi/2 {
			return 0, &DomainError{X: a, Func: op}
		}
		return round9(math.Tan(a)), nil
	case "arcsin":
		if a < -1 || a > 1 {
			return 0, &DomainError{X: a, Func: op}
		}
		return round9(math.Asin(a)), nil
	case "arccos":
		if a < -1 || a > 1 {
			return 0, &DomainError{X: a, Func: op}
		}
		return round9(math.Acos(a)), nil
	case "arctan":
		return round9(math.Atan(a)), nil
	case "log":
		if a <= 0 {
			return 0, &DomainError{X: a, Func: op}
		}
		return round9(math.Log10(a)), nil
	case "ln":
		if a <= 0 {
			return 0, &DomainError{X: a, Func: op}
		}
		return round9(math.Log(a)), nil
	}
	if len(op) != 1 {
		return 0, &OperatorError{Operator: op}
	}
	var r float64
	switch op[0] {
	case '+':
		r = a + b
	case '-':
		r = a - b
	case '*':
		r = a * b
	case '/':
		if b == 0 {
			return 0, &DomainError{X: b, Func: op}
		}
		r = a / b
	case '^':
		// pow is unconditional; NaN results propagate as values.
		r = math.Pow(a, b)
	case '!':
		if b != 0 {
			return 0, &CallError{Func: op, Len: 2}
		}
		f, err := factorial(a)
		if err != nil {
			return 0, err
		}
		r = f
	default:
		return 0, &OperatorError{Operator: op}
	}
	return round9(r), nil
}
