package calculator

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ahrtr/gocontainer/set"
)

// operators holds every name the engine dispatches as an operator.
// Classification is exact and case-sensitive; "ans" is in the set even
// though the engine itself cannot apply it, so that History.Resolve is
// the only place it gains a meaning.
var operators = set.New()

func init() {
	for _, op := range []string{
		"+", "-", "*", "/", "^", "!",
		"sqrt", "sin", "cos", "tan",
		"arcsin", "arccos", "arctan",
		"log", "ln", "ans",
	} {
		operators.Add(op)
	}
}

// IsOperator reports whether tok is an operator name.
func IsOperator(tok string) bool {
	return operators.Contains(tok)
}

// IsUnary reports whether tok is an operator taking a single operand.
// "ans" is not unary; it dispatches through the binary path.
func IsUnary(tok string) bool {
	switch tok {
	case "!", "sqrt", "sin", "cos", "tan", "arcsin", "arccos", "arctan", "log", "ln":
		return true
	}
	return false
}

// IsNumber reports whether tok parses entirely as a floating point
// number. At most one trailing newline is tolerated. Literals beyond the
// float64 range still classify as numbers and evaluate to infinities.
func IsNumber(tok string) bool {
	_, ok := parseNumber(tok)
	return ok
}

func parseNumber(tok string) (float64, bool) {
	s := strings.TrimSuffix(tok, "\n")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var num *strconv.NumError
		if errors.As(err, &num) && num.Err == strconv.ErrRange {
			return v, true
		}
		return 0, false
	}
	return v, true
}
