package depsolver

import (
	"github.com/chef/depsolver/fd"
)

// encode posts the whole problem into a solver session, in a fixed
// order: the synthetic run-list package first (single version, required),
// then every package of the trimmed graph with the domain [-1, N-1],
// then the version-scoped dependency clauses. The -1 sentinel means
// "unused": the solver propagates bounds eagerly on every posted clause,
// and without the extra free point a package narrowed to one version by
// bounds alone would drag its dependencies in even when nothing requires
// it. The run-list's goals are posted as the dependency list of its one
// synthetic version, which makes goal posting and dependency posting the
// same operation.
func encode(sess *fd.Session, g *Graph, p *problem, goals []Constraint) error {
	sess.NewProblem("depsolver", p.packageCount())

	rl := sess.AddPackage(0, 0, 0)
	sess.MarkPackageRequired(rl)

	for i := 1; i < p.packageCount(); i++ {
		sess.AddPackage(-1, p.realVersionCount(i)-1, -1)
	}

	if err := postClauses(sess, p, rl, 0, goals); err != nil {
		return err
	}

	var werr error
	g.walk(func(pe *packageEntry) bool {
		idx := p.index[pe.name]
		id := 0
		for _, ve := range pe.versions {
			if !ve.version.real() {
				continue
			}
			if err := postClauses(sess, p, idx, id, ve.constraints); err != nil {
				werr = err
				return true
			}
			id++
		}
		return false
	})
	return werr
}

// postClauses translates each constraint to the admitted version-id range
// of its target package and posts the conditional clause. A constraint on
// a package the problem has no index for means the universe never defined
// it; reachability normally catches that first, but the encoder keeps the
// same check.
func postClauses(sess *fd.Session, p *problem, pkg, versionID int, cs []Constraint) error {
	for _, c := range cs {
		dep, lo, hi, err := p.mapConstraint(c)
		if err != nil {
			return &UnreachableError{Name: c.Name}
		}
		sess.AddVersionConstraint(pkg, versionID, dep, lo, hi)
	}
	return nil
}
