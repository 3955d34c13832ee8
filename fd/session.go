// Package fd is a small finite-domain constraint solver specialized for
// package/version selection problems. A Session holds one problem: a set
// of integer variables ("packages") with inclusive bound domains, a
// required marking that forbids a variable's unused sentinel, and
// conditional clauses of the form "package P at version V forces package
// D into [min, max]". Sessions are rented from a Pool, are not safe for
// concurrent use, and are fully reset by NewProblem.
package fd

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Status classifies the outcome of a Solve call.
type Status uint8

const (
	// StatusValid is a complete assignment satisfying every constraint.
	StatusValid Status = iota
	// StatusInvalid is the best assignment the solver could produce only
	// by disabling one or more packages out of their required domains.
	StatusInvalid
	// StatusNoSolution means no assignment exists at any disable budget.
	StatusNoSolution
	// StatusTimeout means the deadline expired mid-search.
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	case StatusNoSolution:
		return "no solution"
	case StatusTimeout:
		return "timeout"
	}
	return "unknown"
}

// PackageAssignment is the solved state of one variable. Value is the
// chosen version id, or negative when the package went unused. Disabled
// marks packages the solver forced out of their required domain.
type PackageAssignment struct {
	Index    int
	Value    int
	Disabled bool
}

// Result is the outcome of one Solve.
type Result struct {
	Status        Status
	DisabledCount int
	Assignments   []PackageAssignment
}

type pkgVar struct {
	min, max int
	def      int
	required bool
}

type clause struct {
	dep      int
	min, max int
}

// Session is one solver worker. Rent it from a Pool, describe a problem,
// solve, return it.
type Session struct {
	label   string
	vars    []pkgVar
	clauses [][][]clause
	l       *logrus.Logger
}

func newSession() *Session {
	l := logrus.New()
	l.Level = logrus.WarnLevel
	return &Session{l: l}
}

// SetLogger replaces the session's logger. A nil logger is ignored.
func (s *Session) SetLogger(l *logrus.Logger) {
	if l != nil {
		s.l = l
	}
}

// NewProblem discards any prior state and starts a fresh problem. The
// package count is a capacity hint; AddPackage calls define the actual
// variables.
func (s *Session) NewProblem(label string, packages int) {
	s.label = label
	s.vars = make([]pkgVar, 0, packages)
	s.clauses = make([][][]clause, 0, packages)
}

// AddPackage appends a variable with the inclusive domain [min, max] and
// a preferred starting value, returning its index. Indices are assigned
// in call order.
func (s *Session) AddPackage(min, max, def int) int {
	s.vars = append(s.vars, pkgVar{min: min, max: max, def: def})
	nvers := max + 1
	if nvers < 0 {
		nvers = 0
	}
	s.clauses = append(s.clauses, make([][]clause, nvers))
	return len(s.vars) - 1
}

// MarkPackageRequired forbids the unused sentinel for the package: its
// effective lower bound becomes at least zero, and the only way out is
// for the solver to disable it.
func (s *Session) MarkPackageRequired(idx int) {
	s.vars[idx].required = true
}

// AddVersionConstraint posts the clause "pkg at version forces dep into
// [min, max]". A min greater than max is legal; it makes that version of
// pkg unchoosable (short of disabling dep).
func (s *Session) AddVersionConstraint(pkg, version, dep, min, max int) {
	s.clauses[pkg][version] = append(s.clauses[pkg][version], clause{
		dep: dep,
		min: min,
		max: max,
	})
}

// Solve searches for an assignment. A zero timeout means no deadline.
//
// The search first looks for a model that honors every constraint
// (StatusValid). If none exists, it retries with a growing budget of
// "disabled" packages - a package released from its required gate at unit
// cost - and reports the first model found that way as StatusInvalid,
// with the disabled packages flagged in the assignments. Only when even
// the maximum budget yields nothing does it report StatusNoSolution.
func (s *Session) Solve(timeout time.Duration) (Result, error) {
	sr := &searcher{
		sess: s,
		l:    s.l,
	}
	if timeout > 0 {
		sr.deadline = time.Now().Add(timeout)
	}
	return sr.run()
}
