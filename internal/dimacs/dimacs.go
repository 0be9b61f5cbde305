package dimacs

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/satcdcl/satcdcl/internal/sat"
)

type dimacsWritter interface {
	AddVariable() sat.VariableID
	AddClause([]sat.Literal) error
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS reads a DIMACS CNF instance from filename and forwards it to dw,
// one AddVariable per declared (or discovered) variable followed by one
// AddClause per clause line.
//
// The "p cnf <nvars> <nclauses>" header is tolerated but not required: when
// present, it preallocates nvars variables up front; when absent, variables
// are allocated lazily, growing to cover the largest variable index seen so
// far as clauses are read. Comment lines ("c ...") are skipped wherever they
// appear, and a line starting with '%' terminates input immediately, per
// the DIMACS convention some generators use to mark end-of-file.
func LoadDIMACS(filename string, gzipped bool, dw dimacsWritter) error {
	reader, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer reader.Close()

	scanner := bufio.NewScanner(reader)

	nVarsAdded := 0
	growVars := func(upTo int) {
		for nVarsAdded <= upTo {
			dw.AddVariable()
			nVarsAdded++
		}
	}

	headerSeen := false
	nClauses := -1 // -1 means "unknown": keep reading until EOF or '%'.

	litBuffer := make([]sat.Literal, 32)
	for scanner.Scan() {
		if nClauses == 0 {
			break
		}

		line := scanner.Text()
		if line == "" || line[0] == 'c' {
			continue
		}
		if line[0] == '%' {
			break // end-of-input marker
		}

		if !headerSeen {
			headerSeen = true
			if line[0] == 'p' {
				parts := strings.Fields(line)
				if len(parts) < 4 || parts[1] != "cnf" {
					return fmt.Errorf("instance of type %q are not supported", line)
				}
				nVars, err := strconv.Atoi(parts[2])
				if err != nil {
					return fmt.Errorf("could not parse header: %w", err)
				}
				nClauses, err = strconv.Atoi(parts[3])
				if err != nil {
					return fmt.Errorf("could not parse header: %w", err)
				}
				if nVars > 0 {
					growVars(nVars - 1)
				}
				continue
			}
			// No header line: the first non-comment line is already a clause.
		}

		litBuffer = litBuffer[:0] // reset
		parts := strings.Fields(line)
		for _, p := range parts {
			l, err := strconv.Atoi(p)
			if err != nil {
				return err
			}
			switch {
			case l < 0:
				growVars(-l - 1)
				litBuffer = append(litBuffer, sat.NegativeLiteral(sat.VariableID(-l-1)))
			case l > 0:
				growVars(l - 1)
				litBuffer = append(litBuffer, sat.PositiveLiteral(sat.VariableID(l-1)))
			default:
				// drop 0
			}
		}

		dw.AddClause(litBuffer)
		if nClauses > 0 {
			nClauses--
		}
	}

	return nil
}
