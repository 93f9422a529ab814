// Package calculator evaluates Reverse Polish Notation expressions.
//
// Expressions arrive as token sequences: "3 4 -" is the subtraction
// 3 - 4. Numbers and variables push onto an operand stack, operators pop
// their operands and push the result. Every successful result is rounded
// to nine decimal places, so "0.1 0.2 +" is exactly 0.3.
//
// The package also renders token sequences back to infix text, keeps a
// bounded calculation history with "ans" substitution, and reports
// failures as typed errors carrying the stable numeric codes the rest of
// the suite stores and serves.
package calculator
