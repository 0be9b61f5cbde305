package main

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/satcdcl/satcdcl/internal/dimacs"
	"github.com/satcdcl/satcdcl/parsers"
	"github.com/satcdcl/satcdcl/sat"
)

// This test suite evaluates the solver's correctness end to end by running a
// single Initiate (via DIMACS parsing)-then-Solve cycle over a set of
// instances and checking both the SAT/UNSAT verdict and, for satisfiable
// instances, that the produced assignment actually satisfies every clause
// (see testdataDir). There is deliberately no model-enumeration loop here:
// repeatedly re-solving the same Solver after blocking the last model found
// is an incremental usage pattern this solver does not support — each
// instance gets exactly one Initiate+Solve cycle (spec's single-cycle
// contract).

// Directory containing the test cases used to validate the solver. Each test
// case is a DIMACS CNF file ("*.cnf") plus a sibling "*.cnf.status" file
// containing the literal string "SAT" or "UNSAT".
var testdataDir = "testdata"

type testCase struct {
	instanceName string
	instanceFile string
	statusFile   string
}

// listTestCases returns the list of test cases contained in the file tree
// rooted in the given directory.
func listTestCases(dir string) ([]testCase, error) {
	testCases := []testCase{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".cnf") {
			return nil // not an instance file
		}
		testCases = append(testCases, testCase{
			instanceName: d.Name(),
			instanceFile: path,
			statusFile:   path + ".status",
		})
		return nil
	})

	return testCases, err
}

// TestSolve verifies that the solver reaches the expected SAT/UNSAT verdict
// on every instance in testdataDir and, when SAT, that the produced
// assignment is a genuine model. Test cases are evaluated in parallel.
func TestSolve(t *testing.T) {
	testCases, err := listTestCases(testdataDir)
	if err != nil {
		t.Fatalf("Error listing test cases: %s", err)
	}
	if len(testCases) == 0 {
		t.Fatal("no test cases found")
	}

	for i := 0; i < len(testCases); i++ {
		tc := testCases[i]
		t.Run(tc.instanceName, func(t *testing.T) {
			t.Parallel()

			want, err := dimacs.ParseStatus(tc.statusFile)
			if err != nil {
				t.Fatalf("Error reading status file: %s", err)
			}

			s := &recordingSolver{Solver: sat.NewDefaultSolver()}
			if err := parsers.LoadDIMACS(tc.instanceFile, false, s); err != nil {
				t.Fatalf("Instance parsing error: %s", err)
			}

			got := s.Solve()

			switch want {
			case "SAT":
				if got != sat.True {
					t.Fatalf("Solve() = %s, want True (SAT)", got)
				}
				if err := verify(s.clauses, s.Result()); err != nil {
					t.Errorf("produced assignment does not satisfy the instance: %s", err)
				}
			case "UNSAT":
				if got != sat.False {
					t.Fatalf("Solve() = %s, want False (UNSAT)", got)
				}
			default:
				t.Fatalf("unrecognized expected status %q", want)
			}
		})
	}
}
