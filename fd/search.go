package fd

import (
	"time"

	"github.com/sirupsen/logrus"
)

// model is one point in the search space: current inclusive bounds per
// variable, the disabled set, and the remaining disable budget. Search
// clones the model at every choice point rather than undoing trails; the
// problems this solver sees are small enough that copying wins on
// simplicity.
type model struct {
	lo, hi   []int
	disabled []bool
	budget   int
}

func (m *model) clone() *model {
	n := &model{
		lo:       make([]int, len(m.lo)),
		hi:       make([]int, len(m.hi)),
		disabled: make([]bool, len(m.disabled)),
		budget:   m.budget,
	}
	copy(n.lo, m.lo)
	copy(n.hi, m.hi)
	copy(n.disabled, m.disabled)
	return n
}

type searcher struct {
	sess     *Session
	l        *logrus.Logger
	deadline time.Time
	timedOut bool
	nodes    int
	solution *model
}

func (sr *searcher) run() (Result, error) {
	nvars := len(sr.sess.vars)

	if sr.l.Level >= logrus.DebugLevel {
		sr.l.WithFields(logrus.Fields{
			"label":    sr.sess.label,
			"packages": nvars,
		}).Debug("Beginning finite-domain search")
	}

	// Budget 0 is the strict pass; every further pass trades one more
	// disabled package for satisfiability, so the first budget that
	// produces a model is also the cheapest diagnosis.
	for budget := 0; budget <= nvars; budget++ {
		m := sr.initialModel(budget)
		if m != nil && sr.search(0, m) {
			return sr.report(budget), nil
		}
		if sr.timedOut {
			return Result{Status: StatusTimeout}, nil
		}
	}

	return Result{Status: StatusNoSolution}, nil
}

// initialModel sets up bounds, applies required gates, and runs the
// first propagation pass over variables fixed by their posted domains.
// Returns nil if that pass already fails at this budget.
func (sr *searcher) initialModel(budget int) *model {
	nvars := len(sr.sess.vars)
	m := &model{
		lo:       make([]int, nvars),
		hi:       make([]int, nvars),
		disabled: make([]bool, nvars),
		budget:   budget,
	}

	var fixed []int
	for i, v := range sr.sess.vars {
		m.lo[i], m.hi[i] = v.min, v.max
		if v.required && m.lo[i] < 0 {
			m.lo[i] = 0
		}
		if m.lo[i] > m.hi[i] {
			// Domain empty before search even starts; only a disable
			// can absorb it.
			if m.budget == 0 {
				return nil
			}
			m.budget--
			m.disabled[i] = true
			continue
		}
		if m.lo[i] == m.hi[i] {
			fixed = append(fixed, i)
		}
	}

	if !sr.propagate(m, fixed) {
		return nil
	}
	return m
}

func (sr *searcher) search(i int, m *model) bool {
	sr.nodes++
	if !sr.deadline.IsZero() && !time.Now().Before(sr.deadline) {
		sr.timedOut = true
		return false
	}

	nvars := len(sr.sess.vars)
	for i < nvars && (m.disabled[i] || m.lo[i] == m.hi[i]) {
		// Disabled variables take no value; variables already fixed by
		// posting or propagation had their clauses applied when they
		// became fixed.
		i++
	}
	if i == nvars {
		sr.solution = m.clone()
		return true
	}

	for _, v := range sr.candidates(i, m) {
		if sr.timedOut {
			return false
		}
		next := m.clone()
		next.lo[i], next.hi[i] = v, v
		if !sr.propagate(next, []int{i}) {
			continue
		}
		if sr.search(i+1, next) {
			return true
		}
	}

	// Every value conflicted. Disabling this package is the remaining
	// move, if the budget still allows one.
	if m.budget > 0 {
		if sr.l.Level >= logrus.DebugLevel {
			sr.l.WithFields(logrus.Fields{
				"package": i,
				"budget":  m.budget - 1,
			}).Debug("Disabling package after exhausting its domain")
		}
		next := m.clone()
		next.budget--
		next.disabled[i] = true
		return sr.search(i+1, next)
	}

	return false
}

// candidates yields the values to try for variable i: the posted default
// first when it is still admissible, then the rest of the current bounds
// in ascending order. Ascending order is what makes the solver prefer
// the unused sentinel, then low version ids.
func (sr *searcher) candidates(i int, m *model) []int {
	def := sr.sess.vars[i].def
	vals := make([]int, 0, m.hi[i]-m.lo[i]+1)
	if def >= m.lo[i] && def <= m.hi[i] {
		vals = append(vals, def)
	}
	for v := m.lo[i]; v <= m.hi[i]; v++ {
		if v != def {
			vals = append(vals, v)
		}
	}
	return vals
}

// propagate applies the clauses of every newly fixed variable, tightening
// dependency bounds to a fixed point. A tightening that would empty a
// domain either consumes a disable credit for the target or fails the
// whole branch. Bounds propagation is eager: a variable squeezed to a
// single value by bounds alone immediately has its own clauses applied.
func (sr *searcher) propagate(m *model, queue []int) bool {
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if m.disabled[p] {
			continue
		}
		v := m.lo[p]
		if v < 0 || v >= len(sr.sess.clauses[p]) {
			// Unused packages impose nothing.
			continue
		}

		for _, cl := range sr.sess.clauses[p][v] {
			d := cl.dep
			if m.disabled[d] {
				continue
			}
			nlo, nhi := m.lo[d], m.hi[d]
			if cl.min > nlo {
				nlo = cl.min
			}
			if cl.max < nhi {
				nhi = cl.max
			}
			if nlo > nhi {
				if m.budget > 0 {
					m.budget--
					m.disabled[d] = true
					continue
				}
				return false
			}
			if nlo != m.lo[d] || nhi != m.hi[d] {
				wasFixed := m.lo[d] == m.hi[d]
				m.lo[d], m.hi[d] = nlo, nhi
				if nlo == nhi && !wasFixed {
					queue = append(queue, d)
				}
			}
		}
	}
	return true
}

func (sr *searcher) report(budget int) Result {
	m := sr.solution
	res := Result{Status: StatusValid}

	for i := range sr.sess.vars {
		pa := PackageAssignment{Index: i, Value: -1}
		if m.disabled[i] {
			pa.Disabled = true
			res.DisabledCount++
		} else {
			pa.Value = m.lo[i]
		}
		res.Assignments = append(res.Assignments, pa)
	}

	if res.DisabledCount > 0 {
		res.Status = StatusInvalid
	}

	if sr.l.Level >= logrus.DebugLevel {
		sr.l.WithFields(logrus.Fields{
			"label":    sr.sess.label,
			"status":   res.Status,
			"disabled": res.DisabledCount,
			"nodes":    sr.nodes,
			"budget":   budget,
		}).Debug("Finite-domain search complete")
	}
	return res
}
