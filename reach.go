package depsolver

// reachable produces the subgraph of g containing exactly the packages
// transitively reachable from the goal constraints. A goal naming a
// package the universe never defines is an immediate UnreachableError;
// a package referenced only by some version's dependency list is instead
// injected as a placeholder entry carrying a single sentinel version and
// no real versions, so that the encoder can still target its index while
// any constraint on it stays unsatisfiable. Versions whose constraints
// reference such placeholders are deliberately kept; dropping them here
// would cost culprit output its most useful detail.
func (g *Graph) reachable(goals []Constraint) (*Graph, error) {
	sub := NewGraph()
	for _, goal := range goals {
		pe, has := g.t.Get(string(goal.Name))
		if !has {
			return nil, &UnreachableError{Name: goal.Name}
		}
		g.copyReachable(sub, pe)
	}
	return sub, nil
}

// copyReachable copies pe into sub and recurses into every package any of
// its versions' constraints reference. Each package is visited at most
// once, so the walk terminates on cyclic graphs.
func (g *Graph) copyReachable(sub *Graph, pe *packageEntry) {
	if _, seen := sub.t.Get(string(pe.name)); seen {
		return
	}
	sub.t.Insert(string(pe.name), pe)

	for _, ve := range pe.versions {
		for _, c := range ve.constraints {
			dep, has := g.t.Get(string(c.Name))
			if !has {
				if _, seen := sub.t.Get(string(c.Name)); !seen {
					sub.t.Insert(string(c.Name), &packageEntry{
						name:     c.Name,
						versions: []versionEntry{{version: missingVersion}},
					})
				}
				continue
			}
			g.copyReachable(sub, dep)
		}
	}
}
