package depsolver

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoWorkers is returned when the solver pool has no free members. It
// is transient; callers decide their own retry policy.
var ErrNoWorkers = errors.New("no depsolver workers available")

// UnreachableError reports a constraint that references a package absent
// from the universe.
type UnreachableError struct {
	Name PackageName
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("unreachable package %q: referenced by a constraint but not present in the universe", e.Name)
}

// NoSolutionError reports an unsatisfiable run-list. When it comes out of
// culprit search, Prefix is the shortest failing prefix of the run-list
// and Disabled holds the packages the solver had to force out of their
// required domains to produce any model at all. A bare NoSolutionError
// (nil Prefix) means the solver returned no assignment outright.
type NoSolutionError struct {
	Prefix   []Constraint
	Disabled []Assignment
}

func (e *NoSolutionError) Error() string {
	if len(e.Prefix) == 0 {
		return "no solution: the solver returned no assignment"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "no solution for run-list prefix of length %d:", len(e.Prefix))
	for _, c := range e.Prefix {
		fmt.Fprintf(&buf, "\n\t%s", c)
	}
	if len(e.Disabled) > 0 {
		fmt.Fprintf(&buf, "\nunsatisfiable packages:")
		for _, d := range e.Disabled {
			if d.Version.real() {
				fmt.Fprintf(&buf, "\n\t%s %s", d.Name, d.Version)
			} else {
				fmt.Fprintf(&buf, "\n\t%s", d.Name)
			}
		}
	}
	return buf.String()
}

// TimeoutError reports that the solver exceeded its deadline. Where names
// the phase that was running when the deadline hit.
type TimeoutError struct {
	Where string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("solve timed out during %s", e.Where)
}

// FormatError renders any error coming out of Solve as a human-readable
// report. Errors the solver does not recognize fall through to their own
// Error text.
func FormatError(err error) string {
	switch e := err.(type) {
	case *UnreachableError:
		return fmt.Sprintf("Package %s is referenced by the run-list or a dependency, but no versions of it exist in the universe.", e.Name)
	case *NoSolutionError:
		if len(e.Prefix) == 0 {
			return "The run-list cannot be satisfied by any combination of package versions."
		}
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "The run-list cannot be satisfied. The first %d goal(s) already conflict:\n", len(e.Prefix))
		for _, c := range e.Prefix {
			fmt.Fprintf(&buf, "    %s\n", c)
		}
		if len(e.Disabled) > 0 {
			fmt.Fprintf(&buf, "No version of the following package(s) fits:\n")
			for _, d := range e.Disabled {
				fmt.Fprintf(&buf, "    %s\n", d.Name)
			}
		}
		return buf.String()
	case *TimeoutError:
		return fmt.Sprintf("The solver gave up: it exceeded its deadline during %s.", e.Where)
	}

	if errors.Is(err, ErrNoWorkers) {
		return "All solver workers are busy; try again."
	}
	return err.Error()
}
