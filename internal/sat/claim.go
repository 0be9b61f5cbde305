package sat

import "fmt"

// claim is the single assertion primitive used throughout the core to guard
// internal invariants. A failing claim indicates a solver bug, never a
// property of the input formula, and is therefore fatal: it panics rather
// than returning an error so that callers cannot accidentally proceed with a
// corrupted solver state.
func claim(cond bool, format string, args ...any) {
	if !cond {
		panic("sat: invariant violation: " + fmt.Sprintf(format, args...))
	}
}
