package sat

import (
	"log"

	"github.com/rhartert/yagh"
)

// DecisionPolicy picks the next variable to branch on and the polarity to
// try first, as described in spec §4.4. Implementations must only ever
// return a variable that is currently unassigned.
type DecisionPolicy interface {
	Decide(s *Solver) (VariableID, bool)
}

// ActivityBumper is an optional extension a DecisionPolicy may implement to
// be told which variables took part in a conflict. The solver driver calls
// BumpActivity via a type assertion after every conflict analysis; policies
// that do not implement it (e.g. FirstUnassignedPolicy) are simply skipped.
type ActivityBumper interface {
	BumpActivity(v VariableID)
}

// FirstUnassignedPolicy is the baseline decision policy from spec §4.4: pick
// an arbitrary unassigned variable and propose polarity true. Go's map
// iteration order already is arbitrary, so no extra bookkeeping is needed.
type FirstUnassignedPolicy struct{}

func (FirstUnassignedPolicy) Decide(s *Solver) (VariableID, bool) {
	for v := range s.variablesByValue[Unassigned] {
		return v, true
	}
	panic("sat: Decide called with no unassigned variable")
}

// ActivityOrderPolicy is a VSIDS-style decision policy: it keeps a
// continuously-decayed activity score per variable in a binary heap
// (github.com/rhartert/yagh) and always proposes the unassigned variable
// with the highest activity. It is grounded on the teacher's
// internal/sat/ordering.go VarOrder, generalized from a structure tied to a
// two-watched-literal solver's assigns/reason slices to one tied only to
// this solver's variablesByValue partition.
type ActivityOrderPolicy struct {
	heap *yagh.IntMap[float64]

	scores   []float64
	scoreInc float64
	decay    float64

	// phases remembers the last value each variable was assigned, so that
	// once phase saving kicks in (after the variable has been assigned at
	// least once) the policy re-proposes the same polarity instead of always
	// defaulting to true.
	phases      []LBool
	phaseSaving bool
}

// NewActivityOrderPolicy returns an ActivityOrderPolicy with the given
// activity decay (teacher default: 0.95) and phase-saving setting.
func NewActivityOrderPolicy(decay float64, phaseSaving bool) *ActivityOrderPolicy {
	return &ActivityOrderPolicy{
		heap:        yagh.New[float64](0),
		scoreInc:    1,
		decay:       decay,
		phaseSaving: phaseSaving,
	}
}

// growTo ensures the policy has bookkeeping for every variable up to n-1,
// called by the solver whenever AddVariable allocates a new VariableID.
func (p *ActivityOrderPolicy) growTo(n int) {
	for len(p.scores) < n {
		v := VariableID(len(p.scores))
		p.scores = append(p.scores, 0)
		p.phases = append(p.phases, Unassigned)
		p.heap.GrowBy(1)
		p.heap.Put(int(v), 0)
	}
}

func (p *ActivityOrderPolicy) Decide(s *Solver) (VariableID, bool) {
	for {
		next, ok := p.heap.Pop()
		if !ok {
			log.Panicln("sat: ActivityOrderPolicy heap exhausted with unassigned variables remaining")
		}
		v := VariableID(next.Elem)
		if s.variables[v].value != Unassigned {
			continue // already assigned, wait to be reinserted on backtrack
		}
		switch p.phases[v] {
		case False:
			return v, false
		default:
			return v, true
		}
	}
}

// Reinsert adds v back to the set of decidable variables. The solver calls
// this from Reset, mirroring VarOrder.Reinsert in the teacher.
func (p *ActivityOrderPolicy) Reinsert(v VariableID, lastValue LBool) {
	if p.phaseSaving {
		p.phases[v] = lastValue
	}
	p.heap.Put(int(v), -p.scores[v])
}

// BumpActivity implements ActivityBumper.
func (p *ActivityOrderPolicy) BumpActivity(v VariableID) {
	p.scores[v] += p.scoreInc
	if p.heap.Contains(int(v)) {
		p.heap.Put(int(v), -p.scores[v])
	}
	if p.scores[v] > 1e100 {
		p.rescale()
	}
}

// Decay slightly reduces the relative weight of past activity bumps compared
// to future ones, the VSIDS decay step.
func (p *ActivityOrderPolicy) Decay() {
	p.scoreInc /= p.decay
	if p.scoreInc > 1e100 {
		p.rescale()
	}
}

func (p *ActivityOrderPolicy) rescale() {
	p.scoreInc *= 1e-100
	for v, sc := range p.scores {
		p.scores[v] = sc * 1e-100
		if p.heap.Contains(v) {
			p.heap.Put(v, -p.scores[v])
		}
	}
}
