// Package expr implements the small expression language used for transition guards
// and initializer parameters.
//
// Expressions are compiled once, when a machine is initialized, and evaluated against
// an Env at dispatch time. Evaluation is a walk over a fixed tree; it never parses.
//
// Grammar, lowest precedence first:
//
//	expr    := or ( "?" expr ":" expr )?
//	or      := and ( "||" and )*
//	and     := cmp ( "&&" cmp )*
//	cmp     := add ( ("=="|"!="|"<"|"<="|">"|">=") add )?
//	add     := mul ( ("+"|"-") mul )*
//	mul     := unary ( ("*"|"/"|"%") unary )*
//	unary   := ("!"|"-") unary | primary
//	primary := NUMBER | STRING | "true" | "false" | IDENT ("." IDENT)* | "(" expr ")"
//
// Values are float64, string or bool. Integer bindings are widened to float64.
// Every failure is an *Error carrying the 1-based byte position in the source.
package expr
