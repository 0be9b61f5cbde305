package sat

import "testing"

func TestFirstUnassignedPolicy_picksAnyUnassigned(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()
	s.AddVariable()
	s.Assign(0, true)

	v, polarity := FirstUnassignedPolicy{}.Decide(s)
	if v != 1 {
		t.Errorf("Decide() variable = %d, want 1 (the only unassigned one)", v)
	}
	if !polarity {
		t.Errorf("Decide() polarity = false, want true (baseline always proposes true)")
	}
}

func TestFirstUnassignedPolicy_panicsWithNoneLeft(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()
	s.Assign(0, true)

	defer func() {
		if recover() == nil {
			t.Errorf("Decide() did not panic with no unassigned variable left")
		}
	}()
	FirstUnassignedPolicy{}.Decide(s)
}

func TestActivityOrderPolicy_decideFollowsHighestActivity(t *testing.T) {
	p := NewActivityOrderPolicy(0.95, false)
	s := NewSolver(Options{Policy: p, MaxConflicts: -1, Timeout: -1})
	s.AddVariable()
	s.AddVariable()
	s.AddVariable()

	p.BumpActivity(2)
	p.BumpActivity(2)
	p.BumpActivity(1)

	v, _ := p.Decide(s)
	if v != 2 {
		t.Errorf("Decide() = %d, want 2 (highest bumped activity)", v)
	}
}

func TestActivityOrderPolicy_phaseSaving(t *testing.T) {
	p := NewActivityOrderPolicy(0.95, true)
	s := NewSolver(Options{Policy: p, MaxConflicts: -1, Timeout: -1})
	s.AddVariable()

	// Simulate a decision that gets undone by backjump: Assign then Reset,
	// the latter driving the real Reinsert(v, lastValue) call.
	s.Assign(0, false)
	s.Reset(0)

	_, polarity := p.Decide(s)
	if polarity {
		t.Errorf("Decide() polarity = true, want false (phase saving should re-propose the last value)")
	}
}

func TestActivityOrderPolicy_skipsAlreadyAssigned(t *testing.T) {
	p := NewActivityOrderPolicy(0.95, false)
	s := NewSolver(Options{Policy: p, MaxConflicts: -1, Timeout: -1})
	s.AddVariable()
	s.AddVariable()

	s.Assign(0, true) // variable 0 is assigned but still sits in the heap

	v, _ := p.Decide(s)
	if v != 1 {
		t.Errorf("Decide() = %d, want 1 (variable 0 is already assigned)", v)
	}
}
