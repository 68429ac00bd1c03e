// Package calc implements the calculator engine: a four-field input state machine
// driven by one token at a time, plus the pure evaluation function it uses.
//
// # Token Vocabulary
//
//	0-9 .      operand entry
//	+ - * /    pending binary operator
//	=          evaluate the pending operation
//	C          clear
//
// Any other token is ignored. The engine never returns an error: a division by
// zero surfaces as the display literal "Error", and an operand that does not parse
// as a number makes evaluation fall back to the second operand unchanged.
//
// # Chaining
//
// There is no operator precedence. Pressing a second operator after a second
// operand has been typed evaluates the pending operation first, so
//
//	2 + 3 * 4 =
//
// displays 20, not 14. Pressing an operator while the engine is still waiting for
// a second operand only replaces the pending operator.
//
// # Concurrency
//
// Engine is not safe for concurrent use. Each HandleInput call runs to completion
// and callers that share an engine must serialize access (see internal/session).
package calc
