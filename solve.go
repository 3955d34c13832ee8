package depsolver

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/chef/depsolver/fd"
)

// Assignment is one (package, version) pair of a solution.
type Assignment struct {
	Name    PackageName
	Version Version
}

func (a Assignment) String() string {
	return fmt.Sprintf("%s %s", a.Name, a.Version)
}

// Solver runs constraint problems against a pool of finite-domain solver
// sessions. It holds no per-solve state; one Solver may serve concurrent
// Solve calls, each renting its own session.
type Solver struct {
	pool *fd.Pool
	l    *logrus.Logger
}

var (
	defaultPoolOnce sync.Once
	defaultPool     *fd.Pool
)

// NewSolver creates a Solver over the given session pool. A nil pool
// selects a process-wide default; a nil logger gets a default logger at
// warn level.
func NewSolver(pool *fd.Pool, l *logrus.Logger) *Solver {
	if pool == nil {
		defaultPoolOnce.Do(func() {
			defaultPool = fd.NewPool(4)
		})
		pool = defaultPool
	}
	if l == nil {
		l = logrus.New()
		l.Level = logrus.WarnLevel
	}
	return &Solver{pool: pool, l: l}
}

// Solve is a convenience wrapper over a default Solver.
func Solve(g *Graph, goals []Constraint) ([]Assignment, error) {
	return NewSolver(nil, nil).Solve(g, goals)
}

// Solve finds one version per package such that every goal and every
// chosen version's constraints hold, or explains why it cannot.
func (s *Solver) Solve(g *Graph, goals []Constraint) ([]Assignment, error) {
	return s.SolveTimeout(g, goals, 0)
}

// SolveTimeout is Solve with a deadline on each solver invocation. A
// zero timeout means none.
//
// On an unsatisfiable run-list the returned error is a *NoSolutionError
// carrying the minimal failing prefix of the goals and the packages the
// solver had to disable for it; other failures are *UnreachableError,
// *TimeoutError, or ErrNoWorkers.
func (s *Solver) SolveTimeout(g *Graph, goals []Constraint, timeout time.Duration) ([]Assignment, error) {
	if len(goals) == 0 {
		return nil, errors.New("solve requires at least one goal")
	}

	if s.l.Level >= logrus.DebugLevel {
		s.l.WithFields(logrus.Fields{
			"packages": g.Len(),
			"goals":    len(goals),
		}).Debug("Beginning solve")
	}

	asgn, disabled, err := s.solveOnce(g, goals, timeout)
	if err != nil {
		return nil, err
	}
	if asgn != nil {
		return asgn, nil
	}

	// The full run-list is unsatisfiable; isolate the shortest prefix
	// that already breaks.
	return nil, s.culpritSearch(g, goals, timeout, disabled)
}

// solveOnce runs the whole pipeline a single time: trim, index, encode,
// solve, unmap. A satisfiable problem returns a non-nil assignment list.
// An unsatisfiable one returns (nil, disabled, nil) so the caller can
// decide between culprit search and reporting. Everything else is an
// error.
func (s *Solver) solveOnce(g *Graph, goals []Constraint, timeout time.Duration) (asgn, disabled []Assignment, err error) {
	trimmed, err := g.reachable(goals)
	if err != nil {
		return nil, nil, err
	}
	p := newProblem(trimmed)

	sess, err := s.pool.TakeMember()
	if err != nil {
		return nil, nil, ErrNoWorkers
	}
	ok := true
	defer func() {
		s.pool.ReturnMember(sess, ok)
	}()
	sess.SetLogger(s.l)

	if err := encode(sess, trimmed, p, goals); err != nil {
		return nil, nil, err
	}

	res, err := sess.Solve(timeout)
	if err != nil {
		return nil, nil, errors.Wrap(err, "solver session failed")
	}

	switch res.Status {
	case fd.StatusValid:
		asgn = []Assignment{}
		for _, pa := range res.Assignments {
			if pa.Index == 0 || pa.Value < 0 {
				continue
			}
			name, ver := p.unmap(pa.Index, pa.Value)
			asgn = append(asgn, Assignment{Name: name, Version: ver})
		}
		return asgn, nil, nil

	case fd.StatusInvalid:
		for _, pa := range res.Assignments {
			if !pa.Disabled || pa.Index == 0 {
				continue
			}
			name, ver := p.unmap(pa.Index, pa.Value)
			disabled = append(disabled, Assignment{Name: name, Version: ver})
		}
		if s.l.Level >= logrus.InfoLevel {
			s.l.WithFields(logrus.Fields{
				"disabled": len(disabled),
			}).Info("Solve found no valid model; entering culprit analysis")
		}
		return nil, disabled, nil

	case fd.StatusTimeout:
		ok = false
		return nil, nil, &TimeoutError{Where: "solve"}

	default:
		return nil, nil, &NoSolutionError{}
	}
}

// culpritSearch re-runs the pipeline on run-list prefixes of growing
// length until one fails, and reports that minimal failing prefix. The
// full run-list is already known unsatisfiable, so by induction the
// search always terminates with a failure to report; each iteration
// re-encodes from scratch on a freshly rented session, which keeps the
// cost quadratic in the run-list length and is fine for the short
// run-lists seen in practice.
func (s *Solver) culpritSearch(g *Graph, goals []Constraint, timeout time.Duration, lastDisabled []Assignment) error {
	for n := 1; n < len(goals); n++ {
		prefix := goals[:n]

		if s.l.Level >= logrus.DebugLevel {
			s.l.WithField("prefix", n).Debug("Culprit search trying run-list prefix")
		}

		asgn, disabled, err := s.solveOnce(g, prefix, timeout)
		if err != nil {
			return err
		}
		if asgn != nil {
			continue
		}
		return &NoSolutionError{Prefix: prefix, Disabled: disabled}
	}

	return &NoSolutionError{Prefix: goals, Disabled: lastDisabled}
}
