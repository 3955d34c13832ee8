package fd

import (
	"testing"
	"time"
)

// chain builds the canonical two-package model: a root fixed to its only
// version, requiring dep version ids within [lo, hi].
func chain(lo, hi int) *Session {
	s := newSession()
	s.NewProblem("test", 2)
	root := s.AddPackage(0, 0, 0)
	s.MarkPackageRequired(root)
	dep := s.AddPackage(-1, 2, -1)
	s.AddVersionConstraint(root, 0, dep, lo, hi)
	return s
}

func TestSolveValid(t *testing.T) {
	s := chain(1, 2)
	res, err := s.Solve(0)
	if err != nil {
		t.Fatalf("Unexpected solve error: %s", err)
	}
	if res.Status != StatusValid {
		t.Fatalf("Expected valid, got %s", res.Status)
	}
	if res.Assignments[1].Value != 1 {
		t.Errorf("Expected the lowest admissible id 1, got %d", res.Assignments[1].Value)
	}
}

func TestUnconstrainedPackageStaysUnused(t *testing.T) {
	s := newSession()
	s.NewProblem("test", 2)
	root := s.AddPackage(0, 0, 0)
	s.MarkPackageRequired(root)
	s.AddPackage(-1, 4, -1)

	res, err := s.Solve(0)
	if err != nil {
		t.Fatalf("Unexpected solve error: %s", err)
	}
	if res.Status != StatusValid {
		t.Fatalf("Expected valid, got %s", res.Status)
	}
	if got := res.Assignments[1].Value; got != -1 {
		t.Errorf("Nothing demands the package; expected the unused sentinel, got %d", got)
	}
	if res.Assignments[root].Value != 0 {
		t.Errorf("The required root must take its only version")
	}
}

func TestEmptyRangeExcludesVersion(t *testing.T) {
	// Version 0 of the middle package drags in an unsatisfiable clause;
	// the solver must skip to version 1.
	s := newSession()
	s.NewProblem("test", 3)
	root := s.AddPackage(0, 0, 0)
	s.MarkPackageRequired(root)
	mid := s.AddPackage(-1, 1, -1)
	ghost := s.AddPackage(-1, -1, -1)
	s.AddVersionConstraint(root, 0, mid, 0, 1)
	s.AddVersionConstraint(mid, 0, ghost, 0, -1)

	res, err := s.Solve(0)
	if err != nil {
		t.Fatalf("Unexpected solve error: %s", err)
	}
	if res.Status != StatusValid {
		t.Fatalf("Expected valid, got %s", res.Status)
	}
	if res.Assignments[mid].Value != 1 {
		t.Errorf("Expected version 1 of the middle package, got %d", res.Assignments[mid].Value)
	}
}

func TestSolveInvalidFlagsDisabled(t *testing.T) {
	// The root demands a version id the dep does not have.
	s := chain(5, 5)
	res, err := s.Solve(0)
	if err != nil {
		t.Fatalf("Unexpected solve error: %s", err)
	}
	if res.Status != StatusInvalid {
		t.Fatalf("Expected invalid, got %s", res.Status)
	}
	if res.DisabledCount == 0 {
		t.Fatalf("An invalid model must flag at least one disabled package")
	}
	found := false
	for _, pa := range res.Assignments {
		if pa.Disabled {
			if pa.Value >= 0 {
				t.Errorf("Disabled package %d must not carry a version", pa.Index)
			}
			found = true
		}
	}
	if !found {
		t.Errorf("DisabledCount is %d but no assignment is flagged", res.DisabledCount)
	}
}

func TestSolveTimeoutStatus(t *testing.T) {
	s := chain(1, 2)
	res, err := s.Solve(time.Nanosecond)
	if err != nil {
		t.Fatalf("Unexpected solve error: %s", err)
	}
	if res.Status != StatusTimeout {
		t.Fatalf("Expected timeout, got %s", res.Status)
	}
}

func TestNewProblemResetsSession(t *testing.T) {
	s := chain(5, 5)
	if res, _ := s.Solve(0); res.Status != StatusInvalid {
		t.Fatalf("Fixture expected to be invalid")
	}

	s.NewProblem("fresh", 1)
	root := s.AddPackage(0, 0, 0)
	s.MarkPackageRequired(root)
	res, err := s.Solve(0)
	if err != nil {
		t.Fatalf("Unexpected solve error: %s", err)
	}
	if res.Status != StatusValid {
		t.Errorf("A reset session must not remember prior clauses; got %s", res.Status)
	}
}
