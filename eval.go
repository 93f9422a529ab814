package calculator

import "strings"

// Bounds shared by the evaluator and the converter.
const (
	// MaxStackDepth is the default operand stack bound.
	MaxStackDepth = 100
	// MaxExprLength is the default token count bound. It is also the
	// byte capacity of converted infix text, including the terminator
	// slot of the original fixed buffer.
	MaxExprLength = 1000
)

// Context is a reusable evaluation context holding the operand stack, the
// variable table, and the configured bounds. A Context may be reused for
// any number of evaluations, but it is not safe to use concurrently.
type Context struct {
	stack []float64
	vars  varTable
	extra []variable
	depth int
	size  int
}

// ContextOption is an option for NewContext.
type ContextOption interface {
	ctxOption()
}

type varopt struct {
	name  string
	value float64
}

type varsopt map[string]float64

type depthopt int

type sizeopt int

func (varopt) ctxOption()   {}
func (varsopt) ctxOption()  {}
func (depthopt) ctxOption() {}
func (sizeopt) ctxOption()  {}

// SetVar returns an option defining a variable for every evaluation in
// the context. Builtin names are scanned first, so pi and e cannot be
// replaced.
func SetVar(name string, value float64) ContextOption {
	return varopt{name, value}
}

// SetVars returns an option defining each variable in vars.
func SetVars(vars map[string]float64) ContextOption {
	return varsopt(vars)
}

// StackLimit returns an option bounding the operand stack. Values below
// one leave the default of MaxStackDepth.
func StackLimit(n int) ContextOption {
	return depthopt(n)
}

// ExprLimit returns an option bounding the token count of evaluated
// expressions. Values below one leave the default of MaxExprLength.
func ExprLimit(n int) ContextOption {
	return sizeopt(n)
}

// NewContext creates an evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := &Context{depth: MaxStackDepth, size: MaxExprLength}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case varopt:
			ctx.extra = append(ctx.extra, variable{opt.name, opt.value})
		case varsopt:
			for name, value := range opt {
				ctx.extra = append(ctx.extra, variable{name, value})
			}
		case depthopt:
			if int(opt) > 0 {
				ctx.depth = int(opt)
			}
		case sizeopt:
			if int(opt) > 0 {
				ctx.size = int(opt)
			}
		}
	}
	return ctx
}

// Evaluate computes the value of an RPN token sequence. The variable
// table is rebuilt from the builtins and the context's variables before
// any token is read, so evaluations do not observe each other. Failures
// return a zero value and an error whose CodeOf names the category.
func (ctx *Context) Evaluate(tokens []string) (float64, error) {
	if tokens == nil {
		return 0, &NoExpressionError{}
	}
	ctx.stack = ctx.stack[:0]
	ctx.vars.reset()
	for _, v := range ctx.extra {
		ctx.vars.define(v.name, v.value)
	}
	for _, tok := range tokens {
		switch {
		case IsOperator(tok):
			var r float64
			var err error
			if IsUnary(tok) {
				if len(ctx.stack) == 0 {
					return 0, &CallError{Func: tok, Len: 0}
				}
				r, err = Apply(tok, ctx.pop(), 0)
			} else {
				if len(ctx.stack) < 2 {
					return 0, &UnderflowError{Op: tok, Left: len(ctx.stack)}
				}
				b := ctx.pop()
				a := ctx.pop()
				r, err = Apply(tok, a, b)
			}
			if err != nil {
				return 0, err
			}
			if err := ctx.push(r); err != nil {
				return 0, err
			}
		case IsNumber(tok):
			v, _ := parseNumber(tok)
			if err := ctx.push(v); err != nil {
				return 0, err
			}
			// The length check fires after a number lands, matching
			// the stack check's precedence for overlong expressions
			// that also overflow.
			if len(tokens) > ctx.size {
				return 0, &LengthError{Length: len(tokens), Limit: ctx.size}
			}
		default:
			v, ok := ctx.vars.lookup(tok)
			if !ok {
				return 0, &NameError{Name: tok}
			}
			if err := ctx.push(v); err != nil {
				return 0, err
			}
		}
	}
	if len(ctx.stack) != 1 {
		return 0, &UnderflowError{Left: len(ctx.stack)}
	}
	return round9(ctx.stack[0]), nil
}

func (ctx *Context) push(v float64) error {
	if len(ctx.stack) >= ctx.depth {
		return &OverflowError{Limit: ctx.depth}
	}
	ctx.stack = append(ctx.stack, v)
	return nil
}

func (ctx *Context) pop() float64 {
	v := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return v
}

// Evaluate computes the value of an RPN token sequence with a fresh
// context.
func Evaluate(tokens []string, opts ...ContextOption) (float64, error) {
	return NewContext(opts...).Evaluate(tokens)
}

// EvaluateString splits src on whitespace and evaluates the tokens.
func EvaluateString(src string, opts ...ContextOption) (float64, error) {
	return Evaluate(strings.Fields(src), opts...)
}
