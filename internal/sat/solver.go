package sat

import (
	"fmt"
	"io"
	"os"
	"time"
)

// RawLiteral is the external representation of a single literal, as used by
// Initiate: a polarity and an arbitrary non-negative integer variable name
// (spec §6). It is distinct from Literal, which is the core's dense internal
// encoding keyed by VariableID.
type RawLiteral struct {
	Positive bool
	Name     int
}

// Statistics reports the informational counters spec §6 asks for.
type Statistics struct {
	TimeCost      time.Duration
	Decisions     int64
	Backjumps     int64
	Conflicts     int64
	AvgLearntSize float64
}

// Options configures a Solver. Most of the teacher's original Options (clause
// decay, restarts) do not survive into this spec: restarts and
// clause-activity-based deletion are explicitly out of scope. What remains is
// the decision policy to use and how much progress reporting to do.
type Options struct {
	// Policy selects the decision policy. A nil Policy defaults to
	// FirstUnassignedPolicy{}.
	Policy DecisionPolicy

	// Verbose, if true, makes Solve print a periodic search-progress table
	// the way the teacher's Solver does, plus one line per implication-graph
	// push and per backjump (spec §7).
	Verbose bool

	// Out is where verbose progress is written. Defaults to os.Stderr.
	Out io.Writer

	// MaxConflicts, if >= 0, makes Solve give up (returning Unassigned)
	// after that many conflicts. -1 means unlimited.
	MaxConflicts int64

	// Timeout, if >= 0, makes Solve give up after that much wall-clock time.
	// -1 means unlimited.
	Timeout time.Duration
}

// DefaultOptions mirrors the teacher's DefaultOptions: no stop condition, no
// verbose output, baseline decision policy.
var DefaultOptions = Options{
	MaxConflicts: -1,
	Timeout:      -1,
}

// Solver is a CDCL SAT solver: the mutable index of clauses, variables, and
// literal values; the propagation queue; the implication graph; and the
// search loop that ties them together (spec §2).
type Solver struct {
	variables []Variable
	clauses   []*Clause

	// numConstraints is the number of clauses present at the end of the last
	// Initiate/AddClause burst at decision level 0, i.e. before any learnt
	// clause was appended. Everything at or after this index in clauses is a
	// learnt clause.
	numConstraints int

	variablesByValue map[LBool]map[VariableID]struct{}
	propagationQueue *Queue[ClauseID]
	graph            *ImplicationGraph
	policy           DecisionPolicy

	nameToID map[int]VariableID

	// unsat is latched once a root-level (decision level 0) conflict is
	// found; Solve short-circuits to False forever after.
	unsat bool

	verbose   bool
	out       io.Writer
	startTime time.Time

	hasStopCond  bool
	maxConflicts int64
	timeout      time.Duration

	stats         Statistics
	avgLearntSize EMA
}

// NewDefaultSolver returns a solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// NewSolver returns a new, empty Solver configured with ops.
func NewSolver(ops Options) *Solver {
	policy := ops.Policy
	if policy == nil {
		policy = FirstUnassignedPolicy{}
	}

	out := ops.Out
	if out == nil {
		out = os.Stderr
	}

	s := &Solver{
		variablesByValue: map[LBool]map[VariableID]struct{}{
			True:       {},
			False:      {},
			Unassigned: {},
		},
		propagationQueue: NewQueue[ClauseID](128),
		graph:            newImplicationGraph(),
		policy:           policy,
		nameToID:         map[int]VariableID{},
		verbose:          ops.Verbose,
		out:              out,
		maxConflicts:     -1,
		timeout:          -1,
		avgLearntSize:    NewEMA(0.05),
	}

	if ops.MaxConflicts >= 0 {
		s.hasStopCond = true
		s.maxConflicts = ops.MaxConflicts
	}
	if ops.Timeout >= 0 {
		s.hasStopCond = true
		s.timeout = ops.Timeout
	}

	return s
}

// SetDecisionPolicy swaps the solver's decision policy. It must be called
// before Solve (or between independent Initiate/Solve cycles), never during
// a search.
func (s *Solver) SetDecisionPolicy(p DecisionPolicy) {
	s.policy = p
	if order, ok := p.(*ActivityOrderPolicy); ok {
		order.growTo(len(s.variables))
	}
}

func (s *Solver) shouldStop() bool {
	if !s.hasStopCond {
		return false
	}
	if s.maxConflicts >= 0 && s.stats.Conflicts >= s.maxConflicts {
		return true
	}
	if s.timeout >= 0 && time.Since(s.startTime) >= s.timeout {
		return true
	}
	return false
}

// NumVariables returns the number of variables registered so far.
func (s *Solver) NumVariables() int {
	return len(s.variables)
}

// NumAssigns returns the number of currently assigned variables.
func (s *Solver) NumAssigns() int {
	return s.graph.Len()
}

// NumConstraints returns the number of problem (non-learnt) clauses.
func (s *Solver) NumConstraints() int {
	return s.numConstraints
}

// NumLearnts returns the number of learnt clauses recorded so far.
func (s *Solver) NumLearnts() int {
	return len(s.clauses) - s.numConstraints
}

// VarValue returns the current value of variable v.
func (s *Solver) VarValue(v VariableID) LBool {
	return s.variables[v].value
}

// LitValue returns the current value of literal l.
func (s *Solver) LitValue(l Literal) LBool {
	return l.ValueGiven(s.variables[l.VarID()].value)
}

// AddVariable allocates a new variable and returns its ID. Variables are
// created in order of first appearance and are never removed (spec §3
// lifecycle).
func (s *Solver) AddVariable() VariableID {
	id := VariableID(len(s.variables))
	s.variables = append(s.variables, newVariable(int(id)))
	s.variablesByValue[Unassigned][id] = struct{}{}
	s.graph.growTo(len(s.variables))
	if order, ok := s.policy.(*ActivityOrderPolicy); ok {
		order.growTo(len(s.variables))
	}
	return id
}

// AddClause constructs a new clause from lits and adds it to the problem.
// Every variable referenced by a literal in lits must already have been
// created with AddVariable. AddClause can only be called at decision level 0
// (i.e. outside of Solve, or at the very start of a fresh search).
//
// If the clause is a tautology (it contains a variable with both polarities)
// it is silently discarded — per spec §4.1, this is not an error. If
// construction reveals a root-level conflict (e.g. an empty clause, or a
// clause whose every literal is already false), the solver is marked
// permanently unsatisfiable rather than returning an error, matching the
// "unsatisfiable is a normal outcome" error-handling design (spec §9).
func (s *Solver) AddClause(lits []Literal) error {
	if s.graph.DecisionLevel() != 0 {
		return fmt.Errorf("sat: AddClause called below the root decision level")
	}

	id := ClauseID(len(s.clauses))
	c := newClause(id)

	registered := make([]VariableID, 0, len(lits))
	accepted := true
	for _, l := range lits {
		v := l.VarID()
		s.variables[v].addClause(id)
		registered = append(registered, v)
		if !c.AddLiteral(v, l.IsPositive(), s.variables[v].value) {
			accepted = false
			break
		}
	}
	if !accepted {
		// Tautology: roll back every literal registered on c and every
		// back-pointer registered for this clause ID, then discard c
		// without ever adding it to s.clauses.
		for _, v := range registered {
			c.RemoveLiteral(v, s.variables[v].value)
			s.variables[v].removeClause(id)
		}
		return nil
	}

	s.clauses = append(s.clauses, c)
	s.numConstraints = len(s.clauses)

	if c.IsConflict() {
		s.unsat = true
		return nil
	}
	if c.isUnit() {
		s.propagationQueue.Push(id)
	}
	return nil
}

// Initiate ingests a full CNF problem given as a sequence of clauses, each a
// sequence of (polarity, external variable name) pairs (spec §6). Variable
// names are arbitrary non-negative integers; dense VariableIDs are allocated
// on first appearance. Initiate is built entirely on top of AddVariable and
// AddClause and may be called at most once on a fresh Solver, before Solve.
func (s *Solver) Initiate(clauses [][]RawLiteral) error {
	lits := make([]Literal, 0, 8)
	for _, clause := range clauses {
		lits = lits[:0]
		for _, rl := range clause {
			v, ok := s.nameToID[rl.Name]
			if !ok {
				v = s.AddVariable()
				s.variables[v].originalName = rl.Name
				s.nameToID[rl.Name] = v
			}
			if rl.Positive {
				lits = append(lits, PositiveLiteral(v))
			} else {
				lits = append(lits, NegativeLiteral(v))
			}
		}
		if err := s.AddClause(lits); err != nil {
			return err
		}
	}
	return nil
}

// Assign sets varID's value to value, notifying every clause that references
// it, and returns the first clause observed to be in conflict as a result (or
// nil if none). Every referencing clause is notified even after a conflict
// is found, to keep every clause's buckets consistent (spec §4.5).
//
// Precondition: variables[varID].value == Unassigned.
func (s *Solver) Assign(varID VariableID, value bool) *Clause {
	claim(s.variables[varID].value == Unassigned, "Assign called on an already-assigned variable")

	delete(s.variablesByValue[Unassigned], varID)
	s.variablesByValue[Lift(value)][varID] = struct{}{}

	var conflict *Clause
	for _, cid := range s.variables[varID].clauses {
		c := s.clauses[cid]
		ok := c.Assign(varID, value)
		if !ok && conflict == nil {
			conflict = c
		}
		if c.isUnit() {
			s.propagationQueue.Push(cid)
		}
	}

	// The global variable value is updated last: every clause-level delta
	// above computed its bucket move from the (value, polarity) pair
	// directly, never by re-reading this field mid-transition (spec §4.1
	// ordering discipline).
	s.variables[varID].value = Lift(value)

	return conflict
}

// Reset undoes a single Assign, returning varID to Unassigned.
//
// Precondition: variables[varID].value != Unassigned.
func (s *Solver) Reset(varID VariableID) {
	old := s.variables[varID].value
	claim(old != Unassigned, "Reset called on an already-unassigned variable")

	delete(s.variablesByValue[old], varID)
	s.variablesByValue[Unassigned][varID] = struct{}{}

	for _, cid := range s.variables[varID].clauses {
		s.clauses[cid].Reset(varID, old)
	}

	s.variables[varID].value = Unassigned

	if order, ok := s.policy.(*ActivityOrderPolicy); ok {
		order.Reinsert(varID, old)
	}
}

// Propagate drains the propagation queue, assigning every forced literal it
// finds, until either the queue empties (returns nil) or an assignment
// conflicts (returns the conflicting clause and clears the queue, per
// spec §4.2 — the queue is allowed to be stale afterwards; the caller
// reconstructs it during backjump).
func (s *Solver) Propagate() *Clause {
	for !s.propagationQueue.IsEmpty() {
		cid := s.propagationQueue.Pop()
		c := s.clauses[cid]

		claim(!c.IsConflict(), "popped an already-conflicting clause from the propagation queue")

		if c.Value() == True {
			continue // stale: already satisfied
		}
		if !c.isUnit() {
			continue // stale: no longer unit
		}

		var forced VariableID
		for v := range c.LiteralsByValue(Unassigned) {
			forced = v
			break
		}
		positive, _ := c.Literal(forced)

		conflict := s.Assign(forced, positive)
		s.graph.PushPropagated(forced, c)
		s.logPush(forced, c)

		if conflict != nil {
			s.propagationQueue.Clear()
			return conflict
		}
	}
	return nil
}

// record builds and installs the learnt clause identified by positions (the
// result of ImplicationGraph.ConflictAnalysis) and enqueues it for
// propagation. It must be called with the propagation queue empty.
func (s *Solver) record(positions []int) ClauseID {
	claim(s.propagationQueue.IsEmpty(), "propagation queue must be empty before recording a learnt clause")

	id := ClauseID(len(s.clauses))
	learnt := newClause(id)
	for _, pos := range positions {
		v := s.graph.At(pos).variable
		value := s.variables[v].value
		claim(value != Unassigned, "learnt clause references an unassigned variable")
		// The learnt literal's polarity is the negation of the variable's
		// current value, so the learnt clause forbids the current partial
		// assignment (spec §4.3).
		positive := value == False
		accepted := learnt.AddLiteral(v, positive, value)
		claim(accepted, "learnt clause literals must be pairwise distinct variables")
	}
	for v := range learnt.literals {
		s.variables[v].addClause(id)
	}

	s.clauses = append(s.clauses, learnt)
	s.avgLearntSize.Add(float64(learnt.Size()))
	s.propagationQueue.Push(id)

	if bumper, ok := s.policy.(ActivityBumper); ok {
		for _, pos := range positions {
			bumper.BumpActivity(s.graph.At(pos).variable)
		}
	}
	if order, ok := s.policy.(*ActivityOrderPolicy); ok {
		order.Decay()
	}

	return id
}

// backjumpLevel computes the target decision level for a learnt clause
// derived from the given conflict-analysis positions (spec §4.5).
func (s *Solver) backjumpLevel(positions []int) int {
	if len(positions) == 1 {
		return 0
	}
	level := 0
	for _, pos := range positions[1:] {
		if l := s.graph.At(pos).level; l > level {
			level = l
		}
	}
	return level
}

// Solve runs the main CDCL loop to completion and returns True (SAT), False
// (UNSAT), or Unassigned (a configured stop condition was hit first).
func (s *Solver) Solve() LBool {
	if s.unsat {
		return False
	}

	s.startTime = time.Now()
	s.printSeparator()
	s.printSearchHeader()
	s.printSeparator()

	for len(s.variablesByValue[Unassigned]) > 0 {
		if s.shouldStop() {
			s.printSearchStats()
			s.printSeparator()
			return Unassigned
		}

		if s.propagationQueue.IsEmpty() {
			varID, polarity := s.policy.Decide(s)
			s.graph.PushDecision(varID)
			s.logPushDecision(varID)
			s.stats.Decisions++

			conflict := s.Assign(varID, polarity)
			claim(conflict == nil, "a decision must never immediately conflict")
		}

		conflict := s.Propagate()
		if conflict == nil {
			continue
		}

		s.stats.Conflicts++
		if s.stats.Conflicts%10000 == 0 {
			s.printSearchStats()
		}

		if s.graph.DecisionLevel() == 0 {
			s.unsat = true
			s.printSearchStats()
			s.printSeparator()
			return False
		}

		positions := s.graph.ConflictAnalysis(conflict)
		if len(positions) == 1 && positions[0] == 0 && !s.graph.At(0).isDecision() {
			s.unsat = true
			s.printSearchStats()
			s.printSeparator()
			return False
		}

		target := s.backjumpLevel(positions)
		s.record(positions)

		for s.graph.DecisionLevel() > target {
			s.Reset(s.graph.Top().variable)
			s.graph.Pop()
		}
		s.stats.Backjumps++
		s.logBackjump(target)
	}

	s.stats.TimeCost = time.Since(s.startTime)
	s.printSearchStats()
	s.printSeparator()
	return True
}

// Result returns, for every variable that appeared in the input, whether it
// is assigned true. It is only meaningful after Solve has returned True.
func (s *Solver) Result() map[int]bool {
	result := make(map[int]bool, len(s.variables))
	for _, v := range s.variables {
		claim(v.value != Unassigned, "Result called with an unassigned variable")
		result[v.originalName] = v.value == True
	}
	return result
}

// Statistics returns the solver's current search statistics (spec §6).
func (s *Solver) Statistics() Statistics {
	stats := s.stats
	stats.TimeCost = time.Since(s.startTime)
	stats.AvgLearntSize = s.avgLearntSize.Val()
	return stats
}

func (s *Solver) printSeparator() {
	if !s.verbose {
		return
	}
	fmt.Fprintln(s.out, "c ---------------------------------------------------------------------------")
}

func (s *Solver) printSearchHeader() {
	if !s.verbose {
		return
	}
	fmt.Fprintln(s.out, "c            time      decisions      conflicts      backjumps   avg learnt sz")
}

func (s *Solver) printSearchStats() {
	if !s.verbose {
		return
	}
	fmt.Fprintf(s.out,
		"c %14.3fs %14d %14d %14d %14.2f\n",
		time.Since(s.startTime).Seconds(),
		s.stats.Decisions,
		s.stats.Conflicts,
		s.stats.Backjumps,
		s.avgLearntSize.Val())
}

func (s *Solver) logPushDecision(v VariableID) {
	if !s.verbose {
		return
	}
	fmt.Fprintf(s.out, "c [decision] L%d %d\n", s.graph.DecisionLevel(), s.variables[v].originalName)
}

func (s *Solver) logPush(v VariableID, from *Clause) {
	if !s.verbose {
		return
	}
	fmt.Fprintf(s.out, "c [propagate] L%d %d from %s\n", s.graph.DecisionLevel(), s.variables[v].originalName, from)
}

func (s *Solver) logBackjump(level int) {
	if !s.verbose {
		return
	}
	fmt.Fprintf(s.out, "c [backjump] L%d stack depth: %d\n", level, s.graph.Len())
}
