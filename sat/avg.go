// Package sat is the public façade over the CDCL engine in internal/sat: it
// re-exports the types and constructors a front end (DIMACS parsing, the
// CLI) needs, translating at the boundary between the internal dense
// VariableID type and the plain ints external callers think in.
package sat

import isat "github.com/satcdcl/satcdcl/internal/sat"

// EMA is re-exported only because front ends that report their own progress
// (e.g. a custom CLI reporter) may want the same smoothing the core uses
// internally for Statistics.AvgLearntSize.
type EMA = isat.EMA

// NewEMA returns an EMA with the given decay factor.
func NewEMA(decay float64) EMA {
	return isat.NewEMA(decay)
}
