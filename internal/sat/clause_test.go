package sat

import "testing"

func TestClause_AddLiteral_tautologyRejected(t *testing.T) {
	c := newClause(0)
	if !c.AddLiteral(1, true, Unassigned) {
		t.Fatalf("AddLiteral(1, true): want accepted")
	}
	if c.AddLiteral(1, false, Unassigned) {
		t.Fatalf("AddLiteral(1, false): want rejected (tautology)")
	}
}

func TestClause_AddLiteral_duplicateAbsorbed(t *testing.T) {
	c := newClause(0)
	if !c.AddLiteral(1, true, Unassigned) {
		t.Fatalf("AddLiteral(1, true): want accepted")
	}
	if !c.AddLiteral(1, true, Unassigned) {
		t.Fatalf("AddLiteral(1, true) again: want accepted (duplicate)")
	}
	if got := c.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}

func TestClause_isUnit_falseWithTwoUnassigned(t *testing.T) {
	c := newClause(0)
	c.AddLiteral(1, true, Unassigned)
	c.AddLiteral(2, false, Unassigned)

	if c.isUnit() {
		t.Fatalf("isUnit() = true with two unassigned literals, want false")
	}
	if c.IsConflict() {
		t.Fatalf("IsConflict() = true with two unassigned literals, want false")
	}
}

func TestClause_Assign_unitBecomesConflict(t *testing.T) {
	c := newClause(0)
	c.AddLiteral(1, true, Unassigned) // literal "1"

	if !c.isUnit() {
		t.Fatalf("isUnit() = false, want true for a single-literal clause")
	}

	ok := c.Assign(1, false) // 1 assigned false => literal "1" is false
	if ok {
		t.Errorf("Assign() = true, want false (clause should be in conflict)")
	}
	if !c.IsConflict() {
		t.Errorf("IsConflict() = false, want true")
	}
}

func TestClause_Assign_unitBecomesSatisfied(t *testing.T) {
	c := newClause(0)
	c.AddLiteral(1, true, Unassigned)

	ok := c.Assign(1, true)
	if !ok {
		t.Errorf("Assign() = false, want true")
	}
	if c.Value() != True {
		t.Errorf("Value() = %s, want True", c.Value())
	}
}

func TestClause_Assign_becomesUnit(t *testing.T) {
	c := newClause(0)
	c.AddLiteral(1, true, Unassigned)
	c.AddLiteral(2, true, Unassigned)

	c.Assign(1, false) // literal "1" now false
	if !c.isUnit() {
		t.Fatalf("isUnit() = false, want true after the only other literal went false")
	}
	if got := c.LiteralsByValue(Unassigned); len(got) != 1 {
		t.Errorf("len(LiteralsByValue(Unassigned)) = %d, want 1", len(got))
	}
}

func TestClause_Reset_undoesAssign(t *testing.T) {
	c := newClause(0)
	c.AddLiteral(1, true, Unassigned)
	c.AddLiteral(2, true, Unassigned)

	c.Assign(1, false)
	c.Reset(1, False)

	if !c.isUnit() {
		// Two unassigned literals: not unit, not conflict, just undecided.
	}
	if got := len(c.LiteralsByValue(Unassigned)); got != 2 {
		t.Errorf("len(LiteralsByValue(Unassigned)) after Reset = %d, want 2", got)
	}
}

func TestClause_RemoveLiteral_undoesAddLiteral(t *testing.T) {
	c := newClause(0)
	c.AddLiteral(1, true, Unassigned)
	c.AddLiteral(2, true, Unassigned)

	c.RemoveLiteral(1, Unassigned)

	if _, ok := c.Literal(1); ok {
		t.Errorf("Literal(1) reports membership after RemoveLiteral")
	}
	if got := c.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
	if got := len(c.LiteralsByValue(Unassigned)); got != 1 {
		t.Errorf("len(LiteralsByValue(Unassigned)) = %d, want 1", got)
	}
}

func TestClause_RemoveLiteral_unknownVariableIsNoop(t *testing.T) {
	c := newClause(0)
	c.AddLiteral(1, true, Unassigned)

	c.RemoveLiteral(2, Unassigned) // never added to c; must be a no-op

	if got := c.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1 (RemoveLiteral on an unknown variable)", got)
	}
}

func TestClause_Literal(t *testing.T) {
	c := newClause(0)
	c.AddLiteral(1, false, Unassigned)

	positive, ok := c.Literal(1)
	if !ok || positive {
		t.Errorf("Literal(1) = (%v, %v), want (false, true)", positive, ok)
	}
	if _, ok := c.Literal(2); ok {
		t.Errorf("Literal(2) reports membership for a variable never added")
	}
}
