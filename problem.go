package depsolver

import (
	"github.com/pkg/errors"
)

// runListPackage is the reserved name of the synthetic package that
// encodes the run-list. The leading NUL keeps it out of any namespace a
// caller could plausibly use.
const runListPackage PackageName = "\x00run-list"

var errNoMatchingPackage = errors.New("no matching package")

// problem is the bidirectional mapping between the symbolic universe and
// the numeric model handed to the finite-domain solver: package name to
// package index, and per package the declared real versions whose
// positions are the version ids. Index 0 is always the synthetic run-list
// package, which has exactly one synthetic version. A problem is built
// fresh for every solve and discarded afterwards.
type problem struct {
	names    []PackageName
	versions [][]Version
	index    map[PackageName]int
}

// newProblem assigns numeric identifiers over the trimmed graph: package
// indices in the graph's canonical iteration order starting at 1, and
// within each package version ids 0..N-1 in declared order. Both
// assignments are stable for a fixed input, which is what makes the
// solver's low-index preference deterministic.
func newProblem(g *Graph) *problem {
	p := &problem{
		index: make(map[PackageName]int, g.Len()+1),
	}

	p.names = append(p.names, runListPackage)
	p.versions = append(p.versions, []Version{mkver(0, 0, 0)})
	p.index[runListPackage] = 0

	g.walk(func(pe *packageEntry) bool {
		p.index[pe.name] = len(p.names)
		p.names = append(p.names, pe.name)
		p.versions = append(p.versions, pe.realVersions())
		return false
	})

	return p
}

// packageCount is the total number of model variables, the run-list
// package included.
func (p *problem) packageCount() int {
	return len(p.names)
}

// realVersionCount returns how many real versions the package at idx
// declares; zero for placeholder packages.
func (p *problem) realVersionCount(idx int) int {
	return len(p.versions[idx])
}

// mapConstraint translates a constraint into the target package's index
// and the inclusive range of version ids it admits. A constraint nothing
// matches comes back with lo > hi, which the solver treats as forcing
// exclusion of whichever version posted it. A constraint on a package
// absent from the problem is errNoMatchingPackage.
func (p *problem) mapConstraint(c Constraint) (idx, lo, hi int, err error) {
	idx, has := p.index[c.Name]
	if !has {
		return 0, 0, 0, errNoMatchingPackage
	}

	lo, hi = 0, -1
	first := true
	for id, v := range p.versions[idx] {
		if c.Matches(v) {
			if first {
				lo = id
				first = false
			}
			hi = id
		}
	}
	return idx, lo, hi, nil
}

// unmap recovers the symbolic (name, version) pair behind a numeric
// (package index, version id) assignment.
func (p *problem) unmap(idx, versionID int) (PackageName, Version) {
	if versionID < 0 || versionID >= len(p.versions[idx]) {
		return p.names[idx], NoVersion
	}
	return p.names[idx], p.versions[idx][versionID]
}
