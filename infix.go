package calculator

import "strings"

// ToInfix renders an RPN token sequence as infix text. Parenthesization
// is decided by a coarse textual scan of the operand texts rather than by
// structure, so output may carry redundant parentheses; it never drops a
// required pair. Output longer than MaxExprLength-1 bytes is truncated.
func ToInfix(tokens []string) (string, error) {
	if tokens == nil {
		return "", &NoExpressionError{}
	}
	var stack []string
	for _, tok := range tokens {
		if !IsOperator(tok) {
			if len(stack) >= MaxStackDepth {
				return "", &OverflowError{Limit: MaxStackDepth}
			}
			stack = append(stack, tok)
			continue
		}
		if IsUnary(tok) {
			if len(stack) < 1 {
				return "", &UnderflowError{Op: tok, Left: 0}
			}
			stack[len(stack)-1] = unaryText(tok, stack[len(stack)-1])
			continue
		}
		if len(stack) < 2 {
			return "", &UnderflowError{Op: tok, Left: len(stack)}
		}
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-1]
		stack[len(stack)-1] = binaryText(tok, a, b)
	}
	if len(stack) != 1 {
		return "", &UnderflowError{Left: len(stack)}
	}
	out := stack[0]
	if len(out) > MaxExprLength-1 {
		out = out[:MaxExprLength-1]
	}
	return out, nil
}

// ToInfixString splits src on whitespace and converts the tokens.
func ToInfixString(src string) (string, error) {
	return ToInfix(strings.Fields(src))
}

// binaryText renders a binary application. The operator symbol is the
// first byte of the token.
func binaryText(tok, a, b string) string {
	op := rune(tok[0])
	if needsParens(a, op) {
		a = "(" + a + ")"
	}
	if needsParens(b, op) {
		b = "(" + b + ")"
	}
	return a + " " + string(op) + " " + b
}

// unaryText renders a unary application: postfix for factorial, call
// style for the named functions. An operand that is already fully
// parenthesized becomes the call's parentheses.
func unaryText(tok, a string) string {
	if tok == "!" {
		if needsParens(a, '!') {
			return "(" + a + ")!"
		}
		return a + "!"
	}
	if wrapped(a) {
		return tok + a
	}
	return tok + "(" + a + ")"
}

// wrapped reports whether expr is already enclosed in parentheses, by
// the same first-and-last byte test the parenthesization scan uses.
func wrapped(expr string) bool {
	return len(expr) > 1 && expr[0] == '(' && expr[len(expr)-1] == ')'
}

// needsParens reports whether expr must be parenthesized as an operand
// of op. The scan looks at the characters of expr, not its structure:
// any character at all demands parens under a postfix operator, a + or -
// anywhere demands them under * and /, and a * or / anywhere demands
// them under ^.
func needsParens(expr string, op rune) bool {
	if len(expr) <= 1 {
		return false
	}
	if wrapped(expr) {
		return false
	}
	for _, c := range expr {
		switch {
		case op == '!' || op == '√':
			return true
		case (op == '*' || op == '/') && (c == '+' || c == '-'):
			return true
		case op == '^' && (c == '*' || c == '/'):
			return true
		}
	}
	return false
}
