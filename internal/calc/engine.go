package calc

import "strings"

// State is the engine's complete input state.
//
// Invariant: Operator != OpNone iff PreviousValue != "".
type State struct {
	// CurrentInput is the operand being typed or the last result. Never empty.
	CurrentInput string `json:"current_input" yaml:"current_input"`

	// PreviousValue is the pending operand; "" means no pending operation.
	PreviousValue string `json:"previous_value,omitempty" yaml:"previous_value,omitempty"`

	// Operator is the pending binary operator.
	Operator Operator `json:"operator,omitempty" yaml:"operator,omitempty"`

	// WaitingForSecondOperand is set right after an operator or equals is
	// accepted: the next digit starts a fresh operand instead of appending.
	WaitingForSecondOperand bool `json:"waiting_for_second_operand" yaml:"waiting_for_second_operand"`
}

// InitialState returns the cleared state.
func InitialState() State {
	return State{CurrentInput: "0"}
}

// Pending reports whether an operator and operand are waiting for evaluation.
func (s State) Pending() bool {
	return s.Operator != OpNone && s.PreviousValue != ""
}

// Outcome is what a single HandleInput call produced.
type Outcome struct {
	// Display is CurrentInput after the call.
	Display string

	// Entry is the history entry emitted by a successful "=", nil otherwise.
	Entry *Entry

	// Ignored is true when the token was outside the vocabulary.
	Ignored bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithPrecision sets the number of decimal places results are rounded to.
func WithPrecision(places int) Option {
	return func(e *Engine) {
		if places >= 0 {
			e.precision = places
		}
	}
}

// Engine is the calculator state machine.
type Engine struct {
	state     State
	precision int
}

// New creates an engine in the cleared state.
func New(opts ...Option) *Engine {
	e := &Engine{
		state:     InitialState(),
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// Precision returns the configured rounding precision.
func (e *Engine) Precision() int {
	return e.precision
}

// HandleInput applies one token. Unrecognized tokens leave the state untouched.
func (e *Engine) HandleInput(tok Token) Outcome {
	var out Outcome

	switch tok.Kind() {
	case KindClear:
		e.state = InitialState()
	case KindDigit, KindDecimal:
		e.inputDigit(tok)
	case KindOperator:
		e.inputOperator(Operator(tok))
	case KindEquals:
		out.Entry = e.equals()
	default:
		out.Ignored = true
	}

	out.Display = e.state.CurrentInput
	return out
}

func (e *Engine) inputDigit(tok Token) {
	s := &e.state

	if s.WaitingForSecondOperand {
		s.CurrentInput = string(tok)
		s.WaitingForSecondOperand = false
		return
	}

	if tok == Decimal {
		if strings.Contains(s.CurrentInput, ".") {
			return
		}
		s.CurrentInput += string(tok)
		return
	}

	if s.CurrentInput == "0" {
		s.CurrentInput = string(tok)
		return
	}
	s.CurrentInput += string(tok)
}

func (e *Engine) inputOperator(op Operator) {
	s := &e.state

	switch {
	case s.PreviousValue == "":
		s.PreviousValue = s.CurrentInput
	case s.WaitingForSecondOperand:
		s.PreviousValue = s.CurrentInput
	default:
		result := evaluate(s.PreviousValue, s.CurrentInput, s.Operator, e.precision)
		s.CurrentInput = result
		s.PreviousValue = result
	}

	s.Operator = op
	s.WaitingForSecondOperand = true
}

func (e *Engine) equals() *Entry {
	s := &e.state
	if !s.Pending() {
		return nil
	}

	expression := s.PreviousValue + " " + string(s.Operator) + " " + s.CurrentInput
	result := evaluate(s.PreviousValue, s.CurrentInput, s.Operator, e.precision)

	s.CurrentInput = result
	s.PreviousValue = ""
	s.Operator = OpNone
	s.WaitingForSecondOperand = true

	return &Entry{Expression: expression, Result: result}
}
