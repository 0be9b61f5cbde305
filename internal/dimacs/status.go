package dimacs

import (
	"fmt"
	"os"
	"strings"
)

// ParseStatus reads a "*.cnf.status" sidecar file, the expected-verdict
// fixture convention used by the root test suite: the literal string "SAT"
// or "UNSAT", nothing else.
func ParseStatus(filename string) (string, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}

	status := strings.TrimSpace(string(raw))
	switch status {
	case "SAT", "UNSAT":
		return status, nil
	default:
		return "", fmt.Errorf("dimacs: unrecognized status %q in %s", status, filename)
	}
}
