package calculator_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/zephyrtronium/bigfloat"

	calculator "github.com/TomShaw333/RustCalculatorSuite"
)

func TestApply(t *testing.T) {
	cases := []struct {
		name string
		op   string
		a, b float64
		want float64
		code calculator.ErrorCode
	}{
		{"add", "+", 2, 3, 5, calculator.Success},
		{"sub", "-", 3, 4, -1, calculator.Success},
		{"mul", "*", 2.5, 4, 10, calculator.Success},
		{"div", "/", 1, 3, 0.333333333, calculator.Success},
		{"divzero", "/", 1, 0, 0, calculator.DivisionByZero},
		{"pow", "^", 2, 10, 1024, calculator.Success},
		{"pownegexp", "^", 2, -2, 0.25, calculator.Success},
		{"round", "+", 0.1, 0.2, 0.3, calculator.Success},
		{"fact", "!", 5, 0, 120, calculator.Success},
		{"factzero", "!", 0, 0, 1, calculator.Success},
		{"factone", "!", 1, 0, 1, calculator.Success},
		{"factneg", "!", -1, 0, 0, calculator.FactorialError},
		{"factfrac", "!", 3.5, 0, 0, calculator.FactorialError},
		{"factarity", "!", 3, 2, 0, calculator.InvalidOperator},
		{"sqrt", "sqrt", 16, 0, 4, calculator.Success},
		{"sqrtneg", "sqrt", -4, 0, 0, calculator.SquareRootInvalidOperator},
		{"sin", "sin", 0, 0, 0, calculator.Success},
		{"cos", "cos", 0, 0, 1, calculator.Success},
		{"tan", "tan", 2, 0, -2.185039863, calculator.Success},
		{"tanfar", "tan", 1e10, 0, -0.558349638, calculator.Success},
		{"tanasymptote", "tan", math.Pi / 2, 0, 0, calculator.TanInvalidOperator},
		{"arcsin", "arcsin", 1, 0, 1.570796327, calculator.Success},
		{"arcsinrange", "arcsin", 1.5, 0, 0, calculator.InvalidTrigOperator},
		{"arccos", "arccos", 1, 0, 0, calculator.Success},
		{"arccosrange", "arccos", -2, 0, 0, calculator.InvalidTrigOperator},
		{"arctan", "arctan", 1, 0, 0.785398163, calculator.Success},
		{"log", "log", 1000, 0, 3, calculator.Success},
		{"logzero", "log", 0, 0, 0, calculator.LogError},
		{"logneg", "log", -5, 0, 0, calculator.LogError},
		{"ln", "ln", 1, 0, 0, calculator.Success},
		{"lnzero", "ln", 0, 0, 0, calculator.LnError},
		{"unknownchar", "@", 1, 2, 0, calculator.InvalidOperator},
		{"unknownword", "mod", 1, 2, 0, calculator.InvalidOperator},
		{"ans", "ans", 1, 2, 0, calculator.InvalidOperator},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := calculator.Apply(c.op, c.a, c.b)
			if code := calculator.CodeOf(err); code != c.code {
				t.Fatalf("Apply(%q, %v, %v) error %v, want code %v", c.op, c.a, c.b, err, c.code)
			}
			if err != nil {
				return
			}
			if got != c.want {
				t.Errorf("Apply(%q, %v, %v) = %v, want %v", c.op, c.a, c.b, got, c.want)
			}
		})
	}
}

// TestApplyOracle cross-checks the transcendental operators against
// arbitrary-precision references. The engine result is rounded to nine
// decimals, so agreement within 1e-9 is exact agreement.
func TestApplyOracle(t *testing.T) {
	cases := []struct {
		name string
		op   string
		a, b float64
	}{
		{"pow", "^", 2, 0.5},
		{"powbig", "^", 1.5, 10},
		{"ln", "ln", 2, 0},
		{"log", "log", 7, 0},
		{"sqrt", "sqrt", 2, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := calculator.Apply(c.op, c.a, c.b)
			if err != nil {
				t.Fatal(err)
			}
			want, _ := oracle(c.op, c.a, c.b).Float64()
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("Apply(%q, %v, %v) = %v, want about %v", c.op, c.a, c.b, got, want)
			}
		})
	}
}

// TestBuiltinsOracle checks the builtin constants against their
// arbitrary-precision counterparts.
func TestBuiltinsOracle(t *testing.T) {
	pi, err := calculator.Evaluate([]string{"pi"})
	if err != nil {
		t.Fatal(err)
	}
	wantPi, _ := bigfloat.Pi(new(big.Float).SetPrec(128)).Float64()
	if math.Abs(pi-wantPi) > 1e-9 {
		t.Errorf("pi = %v, want about %v", pi, wantPi)
	}
	e, err := calculator.Evaluate([]string{"e"})
	if err != nil {
		t.Fatal(err)
	}
	one := big.NewFloat(1).SetPrec(128)
	wantE, _ := bigfloat.Exp(new(big.Float).SetPrec(128), one).Float64()
	if math.Abs(e-wantE) > 1e-9 {
		t.Errorf("e = %v, want about %v", e, wantE)
	}
}

func oracle(op string, a, b float64) *big.Float {
	x := big.NewFloat(a).SetPrec(128)
	y := big.NewFloat(b).SetPrec(128)
	z := new(big.Float).SetPrec(128)
	switch op {
	case "^":
		return bigfloat.Pow(z, x, y)
	case "ln":
		return bigfloat.Log(z, x)
	case "log":
		bigfloat.Log(z, x)
		ten := bigfloat.Log(new(big.Float).SetPrec(128), big.NewFloat(10).SetPrec(128))
		return z.Quo(z, ten)
	case "sqrt":
		return z.Sqrt(x)
	}
	panic("unknown op " + op)
}
