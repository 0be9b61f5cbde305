package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/satcdcl/satcdcl/internal/dimacs"
	isat "github.com/satcdcl/satcdcl/internal/sat"
	"github.com/satcdcl/satcdcl/parsers"
	"github.com/satcdcl/satcdcl/sat"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagGzip = flag.Bool(
	"gzip",
	false,
	"the instance file is gzip-compressed",
)

var flagVerify = flag.Bool(
	"verify",
	false,
	"re-check a SAT result against the original clauses before reporting it",
)

var flagPolicy = flag.String(
	"policy",
	"first",
	`decision policy to use: "first" (baseline) or "activity" (VSIDS)`,
)

var flagVerbose = flag.Bool(
	"v",
	false,
	"print search progress to stderr",
)

var flagReader = flag.String(
	"reader",
	"lib",
	`DIMACS front end to use: "lib" (github.com/rhartert/dimacs tokenizer) or "hand" (hand-rolled internal/dimacs reader)`,
)

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		gzip:         *flagGzip,
		verify:       *flagVerify,
		policy:       *flagPolicy,
		verbose:      *flagVerbose,
		reader:       *flagReader,
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
	}, nil
}

type config struct {
	instanceFile string
	gzip         bool
	verify       bool
	policy       string
	verbose      bool
	reader       string
	memProfile   bool
	cpuProfile   bool
}

func newPolicy(name string) (sat.DecisionPolicy, error) {
	switch name {
	case "", "first":
		return sat.FirstUnassignedPolicy{}, nil
	case "activity":
		return sat.NewActivityOrderPolicy(0.95, true), nil
	default:
		return nil, fmt.Errorf("unknown decision policy %q (want \"first\" or \"activity\")", name)
	}
}

// recordingSolver forwards every clause it is given to the real solver while
// keeping its own copy, so that -verify can re-check the result against the
// original clauses without re-parsing the instance file.
type recordingSolver struct {
	*sat.Solver
	clauses [][]sat.Literal
}

func (r *recordingSolver) AddClause(lits []sat.Literal) error {
	clause := make([]sat.Literal, len(lits))
	copy(clause, lits)
	r.clauses = append(r.clauses, clause)
	return r.Solver.AddClause(lits)
}

// handRolledWriter adapts a recordingSolver to internal/dimacs's writer
// interface, whose AddVariable returns the internal VariableID type rather
// than the public façade's plain int. It performs no bookkeeping of its
// own: every call is forwarded straight through to rs, so the two front
// ends stay interchangeable from the CLI's point of view.
type handRolledWriter struct {
	rs *recordingSolver
}

func (w *handRolledWriter) AddVariable() isat.VariableID {
	return isat.VariableID(w.rs.AddVariable())
}

func (w *handRolledWriter) AddClause(lits []isat.Literal) error {
	return w.rs.AddClause(lits)
}

// loadInstance dispatches to the selected DIMACS front end: "lib" wraps
// github.com/rhartert/dimacs (parsers.LoadDIMACS), "hand" uses the
// hand-rolled internal/dimacs.LoadDIMACS.
func loadInstance(readerName, instanceFile string, gzipped bool, s *recordingSolver) error {
	switch readerName {
	case "", "lib":
		return parsers.LoadDIMACS(instanceFile, gzipped, s)
	case "hand":
		return dimacs.LoadDIMACS(instanceFile, gzipped, &handRolledWriter{rs: s})
	default:
		return fmt.Errorf("unknown DIMACS reader %q (want \"lib\" or \"hand\")", readerName)
	}
}

func verify(clauses [][]sat.Literal, result map[int]bool) error {
	raw := make([][]sat.RawLiteral, len(clauses))
	for i, clause := range clauses {
		rawClause := make([]sat.RawLiteral, len(clause))
		for j, l := range clause {
			rawClause[j] = sat.RawLiteral{Positive: l.IsPositive(), Name: int(l.VarID())}
		}
		raw[i] = rawClause
	}
	return sat.VerifyAssignment(raw, result)
}

func run(cfg *config) error {
	policy, err := newPolicy(cfg.policy)
	if err != nil {
		return err
	}

	opts := sat.DefaultOptions
	opts.Policy = policy
	opts.Verbose = cfg.verbose
	opts.Out = os.Stderr

	s := &recordingSolver{Solver: sat.NewSolver(opts)}
	if err := loadInstance(cfg.reader, cfg.instanceFile, cfg.gzip, s); err != nil {
		return fmt.Errorf("could not parse instance: %w", err)
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumConstraints())

	t := time.Now()
	status := s.Solve()
	elapsed := time.Since(t)

	stats := s.Statistics()
	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c decisions:  %d\n", stats.Decisions)
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", stats.Conflicts, float64(stats.Conflicts)/elapsed.Seconds())
	fmt.Printf("c backjumps:  %d\n", stats.Backjumps)

	switch status {
	case sat.True:
		result := s.Result()
		if cfg.verify {
			if err := verify(s.clauses, result); err != nil {
				return fmt.Errorf("solver reported SAT but the result does not verify: %w", err)
			}
		}
		fmt.Println("SAT")
		for name, value := range result {
			sign := ""
			if !value {
				sign = "-"
			}
			fmt.Fprintf(os.Stderr, "v %s%d\n", sign, name+1)
		}
	case sat.False:
		fmt.Println("UNSAT")
	default:
		fmt.Println("s UNKNOWN")
	}

	return nil
}

func main() {
	// A failed internal claim panics; report it and exit with status 1.
	defer func() {
		if r := recover(); r != nil {
			log.Fatalf("internal error: %v", r)
		}
	}()

	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
		return
	}
}
