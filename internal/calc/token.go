package calc

// Token is one normalized unit of user input.
type Token string

// Control tokens.
const (
	Clear   Token = "C"
	Equals  Token = "="
	Decimal Token = "."
)

// Kind classifies a token.
type Kind int

const (
	KindInvalid Kind = iota
	KindDigit
	KindDecimal
	KindOperator
	KindEquals
	KindClear
)

func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindDecimal:
		return "decimal"
	case KindOperator:
		return "operator"
	case KindEquals:
		return "equals"
	case KindClear:
		return "clear"
	default:
		return "invalid"
	}
}

// Kind returns the token's class, KindInvalid for anything outside the vocabulary.
func (t Token) Kind() Kind {
	switch t {
	case Clear:
		return KindClear
	case Equals:
		return KindEquals
	case Decimal:
		return KindDecimal
	case Token(OpAdd), Token(OpSub), Token(OpMul), Token(OpDiv):
		return KindOperator
	}
	if len(t) == 1 && t[0] >= '0' && t[0] <= '9' {
		return KindDigit
	}
	return KindInvalid
}

// Valid reports whether the token belongs to the vocabulary.
func (t Token) Valid() bool {
	return t.Kind() != KindInvalid
}

// Operator is a pending binary operator. The zero value means no operator.
type Operator string

const (
	OpNone Operator = ""
	OpAdd  Operator = "+"
	OpSub  Operator = "-"
	OpMul  Operator = "*"
	OpDiv  Operator = "/"
)
