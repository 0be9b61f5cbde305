package sat

import (
	"fmt"
	"sort"
	"strings"
)

// literalValue returns the value of a literal of the given polarity when its
// variable holds varValue. This is the literal value algebra of spec §3; a
// Clause only ever knows a member's polarity as a bare bool (it does not keep
// Literal values around), so this variant takes polarity directly rather
// than going through Literal.ValueGiven.
func literalValue(positive bool, varValue LBool) LBool {
	if varValue == Unassigned {
		return Unassigned
	}
	if positive {
		return varValue
	}
	return varValue.Opposite()
}

// Clause is a disjunction of literals, represented as a set of
// (VariableID, polarity) pairs plus a derived partition of that set into
// three buckets keyed by the current value of each member's literal. The
// buckets are the clause's only mutable state and are always kept consistent
// with the solver's variable assignment by Assign/Reset (spec §3 invariant 1).
//
// Clause deliberately has no back-reference to its owning Solver: every
// mutating method that needs outside information (the current or prior value
// of a variable) takes it as an explicit argument instead, so the clause
// never reads global state mid-transition (spec §9 design notes).
type Clause struct {
	id ClauseID

	// literals maps each variable in the clause to its polarity in this
	// clause (true = positive literal). A variable appears at most once.
	literals map[VariableID]bool

	// byValue partitions literals by the current value of the corresponding
	// literal (not the variable): byValue[v] = {x : literalValue(literals[x],
	// variables[x].value) == v}.
	byValue map[LBool]map[VariableID]struct{}
}

func newClause(id ClauseID) *Clause {
	return &Clause{
		id:       id,
		literals: map[VariableID]bool{},
		byValue: map[LBool]map[VariableID]struct{}{
			True:       {},
			False:      {},
			Unassigned: {},
		},
	}
}

// AddLiteral inserts (varID, positive) into the clause, bucketing it
// according to currentValue (the variable's value at the time of the call —
// always Unassigned during ordinary clause construction, but whatever value
// the variable already holds when a learnt clause is assembled from the
// implication graph after a conflict). It is called only while a clause is
// under construction.
//
// If the clause already contains varID with the same polarity, the duplicate
// literal is silently absorbed and AddLiteral returns true. If it contains
// varID with the opposite polarity, the clause is a tautology: AddLiteral
// rejects it by returning false and the caller must discard the clause
// without registering it anywhere.
func (c *Clause) AddLiteral(varID VariableID, positive bool, currentValue LBool) bool {
	if existing, ok := c.literals[varID]; ok {
		return existing == positive
	}
	c.literals[varID] = positive
	c.byValue[literalValue(positive, currentValue)][varID] = struct{}{}
	return true
}

// RemoveLiteral undoes a single AddLiteral(varID, ...) call. It is only used
// to roll back a clause under construction that turned out to be a
// tautology after some of its literals were already inserted.
func (c *Clause) RemoveLiteral(varID VariableID, currentValue LBool) {
	positive, ok := c.literals[varID]
	if !ok {
		return
	}
	delete(c.byValue[literalValue(positive, currentValue)], varID)
	delete(c.literals, varID)
}

// Assign is the delta notification for a variable transitioning from
// Unassigned to Lift(value): it moves varID from the Unassigned bucket to
// whichever bucket its literal now belongs to. It returns false iff the
// clause is now in conflict (spec §3 invariant 5).
//
// Assign never touches the propagation queue; centralizing that decision in
// Solver.Assign keeps Clause free of side effects on state it does not own
// (spec §9 design notes).
func (c *Clause) Assign(varID VariableID, value bool) bool {
	positive := c.literals[varID]
	delete(c.byValue[Unassigned], varID)
	c.byValue[literalValue(positive, Lift(value))][varID] = struct{}{}
	return !c.IsConflict()
}

// Reset is the inverse delta: the caller is about to set the variable back
// to Unassigned, and passes oldValue — the value the variable held just
// before this call — so that Reset can locate the bucket to move varID out
// of without consulting solver-global state mid-transition.
func (c *Clause) Reset(varID VariableID, oldValue LBool) {
	positive := c.literals[varID]
	delete(c.byValue[literalValue(positive, oldValue)], varID)
	c.byValue[Unassigned][varID] = struct{}{}
}

// IsConflict reports whether the clause has no true literal and no
// unassigned literal left, i.e. every literal is currently false
// (spec §3 invariant 5).
func (c *Clause) IsConflict() bool {
	return len(c.byValue[Unassigned]) == 0 && len(c.byValue[True]) == 0
}

// isUnit reports whether the clause has no true literal and exactly one
// unassigned literal (spec §3 invariant 6).
func (c *Clause) isUnit() bool {
	return len(c.byValue[True]) == 0 && len(c.byValue[Unassigned]) == 1
}

// Value returns True if any literal is true, else Unassigned if any literal
// is unassigned, else False (the clause is in conflict).
func (c *Clause) Value() LBool {
	switch {
	case len(c.byValue[True]) > 0:
		return True
	case len(c.byValue[Unassigned]) > 0:
		return Unassigned
	default:
		return False
	}
}

// ToDecideNum returns the number of literals that still need to be decided
// before this clause's truth value is settled: 0 if it is already satisfied,
// otherwise the number of unassigned literals.
func (c *Clause) ToDecideNum() int {
	if len(c.byValue[True]) != 0 {
		return 0
	}
	return len(c.byValue[Unassigned])
}

// LiteralsByValue returns the (read-only) set of variable IDs whose literal
// currently has value v.
func (c *Clause) LiteralsByValue(v LBool) map[VariableID]struct{} {
	return c.byValue[v]
}

// Literal returns the polarity of varID in this clause, and whether varID is
// a member of the clause at all.
func (c *Clause) Literal(varID VariableID) (positive bool, ok bool) {
	positive, ok = c.literals[varID]
	return
}

// Size returns the number of literals in the clause.
func (c *Clause) Size() int {
	return len(c.literals)
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	ids := make([]int, 0, len(c.literals))
	for v := range c.literals {
		ids = append(ids, int(v))
	}
	sort.Ints(ids)

	sb := strings.Builder{}
	sb.WriteString("Clause[")
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(' ')
		}
		v := VariableID(id)
		if !c.literals[v] {
			sb.WriteByte('!')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	sb.WriteByte(']')
	return sb.String()
}
