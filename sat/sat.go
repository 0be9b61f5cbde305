package sat

import isat "github.com/satcdcl/satcdcl/internal/sat"

// LBool and its three values mirror the internal lifted boolean.
type LBool = isat.LBool

const (
	Unassigned = isat.Unassigned
	True       = isat.True
	False      = isat.False
)

// Literal is the dense internal literal encoding, re-exported so that front
// ends (e.g. a DIMACS parser) can build clauses without reaching into
// internal/sat directly.
type Literal = isat.Literal

// PositiveLiteral and NegativeLiteral take a plain int rather than a
// VariableID: external callers (DIMACS front ends in particular) think in
// terms of the bare 0-based variable index, not the internal named type.
func PositiveLiteral(v int) Literal { return isat.PositiveLiteral(isat.VariableID(v)) }
func NegativeLiteral(v int) Literal { return isat.NegativeLiteral(isat.VariableID(v)) }

// RawLiteral is the (polarity, external name) pair Initiate ingests.
type RawLiteral = isat.RawLiteral

// Statistics reports the solver's search counters.
type Statistics = isat.Statistics

// Options configures a Solver.
type Options = isat.Options

// DefaultOptions is the zero-frills configuration: baseline decision policy,
// no stop condition, no verbose output.
var DefaultOptions = isat.DefaultOptions

// DecisionPolicy picks the next branching variable and polarity.
type DecisionPolicy = isat.DecisionPolicy

// ActivityBumper is the optional extension a DecisionPolicy implements to
// receive conflict feedback.
type ActivityBumper = isat.ActivityBumper

// FirstUnassignedPolicy is the baseline decision policy: any unassigned
// variable, tried true first.
type FirstUnassignedPolicy = isat.FirstUnassignedPolicy

// ActivityOrderPolicy is the VSIDS-style decision policy.
type ActivityOrderPolicy = isat.ActivityOrderPolicy

// NewActivityOrderPolicy returns an ActivityOrderPolicy with the given
// activity decay and phase-saving setting.
func NewActivityOrderPolicy(decay float64, phaseSaving bool) *ActivityOrderPolicy {
	return isat.NewActivityOrderPolicy(decay, phaseSaving)
}

// VerifyAssignment checks a result against the original clauses,
// independently of whichever Solver produced it.
func VerifyAssignment(clauses [][]RawLiteral, result map[int]bool) error {
	return isat.VerifyAssignment(clauses, result)
}

// Solver is the public façade over the internal CDCL engine. Every method
// other than AddVariable is promoted unchanged from *isat.Solver; AddVariable
// is shadowed to return a plain int, matching the DIMACS front ends' and the
// teacher's original convention of a bare 0-based variable index.
type Solver struct {
	*isat.Solver
}

// NewSolver returns a new, empty Solver configured with ops.
func NewSolver(ops Options) *Solver {
	return &Solver{isat.NewSolver(ops)}
}

// NewDefaultSolver returns a solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return &Solver{isat.NewDefaultSolver()}
}

// AddVariable allocates a new variable and returns its plain int index.
func (s *Solver) AddVariable() int {
	return int(s.Solver.AddVariable())
}
