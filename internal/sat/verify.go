package sat

import "fmt"

// VerifyAssignment checks that result satisfies every clause in clauses,
// independently of whatever solver produced it. It is grounded on
// original_source's main(), which re-checks every clause against
// get_result() after solve() returns true rather than trusting the solver's
// own SAT verdict.
//
// It returns nil if every clause has at least one literal whose polarity
// matches result[name], or an error naming the first clause that does not.
func VerifyAssignment(clauses [][]RawLiteral, result map[int]bool) error {
	for i, clause := range clauses {
		satisfied := false
		for _, lit := range clause {
			value, ok := result[lit.Name]
			if !ok {
				return fmt.Errorf("clause %d: variable %d has no assignment", i, lit.Name)
			}
			if lit.Positive == value {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return fmt.Errorf("clause %d is not satisfied by the given assignment", i)
		}
	}
	return nil
}
