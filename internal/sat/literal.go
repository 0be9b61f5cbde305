package sat

import "fmt"

// Literal represents a literal, which either represents a boolean variable or
// its negation. The variable ID and the polarity are both recoverable from the
// literal's integer encoding, which is the literal value algebra referenced
// throughout this package: the literal's value is the XOR of its polarity with
// its variable's value.
type Literal int

// PositiveLiteral returns the positive literal of variable v.
func PositiveLiteral(v VariableID) Literal {
	return Literal(v * 2)
}

// NegativeLiteral returns the negative literal of variable v.
func NegativeLiteral(v VariableID) Literal {
	return Literal(v*2 + 1)
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() VariableID {
	return VariableID(l / 2)
}

// IsPositive returns true if and only if the literal represents the value of
// its boolean variable (i.e. not its negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the opposite literal.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

// ValueGiven returns the value of the literal if its variable were assigned
// varValue. This is the literal value algebra of §3: unassigned stays
// unassigned, otherwise the literal value is the variable value XORed with
// the literal's polarity.
func (l Literal) ValueGiven(varValue LBool) LBool {
	return literalValue(l.IsPositive(), varValue)
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("!%d", l.VarID())
}
