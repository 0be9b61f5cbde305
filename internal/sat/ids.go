package sat

// VariableID is a dense index identifying a variable inside a Solver. IDs are
// allocated in order of first appearance and are never reused or reclaimed.
type VariableID int

// ClauseID is a dense index identifying a clause inside a Solver. The clause
// database is append-only: problem clauses and learnt clauses share the same
// ID space and a ClauseID is never reused or reclaimed.
type ClauseID int
