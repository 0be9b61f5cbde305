package sat

// Variable holds the mutable state the solver keeps about a single boolean
// variable: its current value, the clauses that reference it, and the
// external name it was given on input (used only to map results back out).
type Variable struct {
	value VariableValue
	// clauses lists the IDs of every clause that contains this variable. The
	// order is irrelevant. Entries are appended as clauses are built and are
	// only ever removed while a single tautological clause under
	// construction is being rolled back (see Solver.AddClause).
	clauses []ClauseID
	// originalName is the external identifier this variable was known by in
	// the input (e.g. the DIMACS literal's absolute value minus one).
	originalName int
}

// VariableValue is an alias kept for readability at call sites that talk
// about variable assignments rather than literal or clause values; it is the
// same lifted boolean as LBool.
type VariableValue = LBool

func newVariable(name int) Variable {
	return Variable{value: Unassigned, originalName: name}
}

// addClause registers clauseID as referencing this variable.
func (v *Variable) addClause(clauseID ClauseID) {
	v.clauses = append(v.clauses, clauseID)
}

// removeClause undoes a single addClause(clauseID) call. It is only used to
// roll back the back-pointers of a clause that turns out to be tautological
// partway through construction.
func (v *Variable) removeClause(clauseID ClauseID) {
	for i, c := range v.clauses {
		if c == clauseID {
			v.clauses = append(v.clauses[:i], v.clauses[i+1:]...)
			return
		}
	}
}
