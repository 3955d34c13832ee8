package depsolver

// versionEntry is one declarable version of a package together with the
// constraints that version places on other packages. Constraint order is
// preserved as declared; it drives the solver's preference heuristic.
type versionEntry struct {
	version     Version
	constraints []Constraint
}

// packageEntry is the full declaration of one package: its name and its
// versions, in declared order.
type packageEntry struct {
	name     PackageName
	versions []versionEntry
}

// realVersions returns the entry's non-sentinel versions, in declared
// order.
func (pe *packageEntry) realVersions() []Version {
	var vs []Version
	for _, ve := range pe.versions {
		if ve.version.real() {
			vs = append(vs, ve.version)
		}
	}
	return vs
}

// VersionSpec declares one version of a package and its dependency
// constraints, for bulk graph construction.
type VersionSpec struct {
	Version string
	Deps    []Constraint
}

// PackageSpec declares a package and all of its versions, for bulk graph
// construction.
type PackageSpec struct {
	Name     string
	Versions []VersionSpec
}

// Graph is the dependency universe: an ordered mapping from package name
// to that package's declared versions. It grows monotonically through the
// Add methods and is never mutated by a solve.
type Graph struct {
	t packageTrie
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{t: newPackageTrie()}
}

// Len returns the number of packages in the graph.
func (g *Graph) Len() int {
	return g.t.Len()
}

// AddPackageVersion records one version of a package, with the dependency
// constraints that version declares. Re-adding an existing (package,
// version) pair merges the constraint lists: incoming constraints are
// appended in order, minus any that are already present. Malformed raw
// versions panic; use ParseVersion to validate untrusted input first.
func (g *Graph) AddPackageVersion(name string, rawVersion interface{}, deps ...Constraint) *Graph {
	v, err := ParseVersion(rawVersion)
	if err != nil {
		panic(err)
	}
	g.addVersion(PackageName(name), v, deps)
	return g
}

// AddPackage records a package with all of the given versions, in order.
func (g *Graph) AddPackage(name string, vers []VersionSpec) *Graph {
	for _, vs := range vers {
		g.AddPackageVersion(name, vs.Version, vs.Deps...)
	}
	return g
}

// AddPackages records several packages at once.
func (g *Graph) AddPackages(pkgs []PackageSpec) *Graph {
	for _, ps := range pkgs {
		g.AddPackage(ps.Name, ps.Versions)
	}
	return g
}

func (g *Graph) addVersion(name PackageName, v Version, deps []Constraint) {
	pe, has := g.t.Get(string(name))
	if !has {
		pe = &packageEntry{name: name}
		g.t.Insert(string(name), pe)
	}

	for i := range pe.versions {
		if pe.versions[i].version.Equal(v) {
			pe.versions[i].constraints = mergeConstraints(pe.versions[i].constraints, deps)
			return
		}
	}

	pe.versions = append(pe.versions, versionEntry{
		version:     v,
		constraints: mergeConstraints(nil, deps),
	})
}

// walk visits every package entry in the graph's canonical order.
func (g *Graph) walk(fn func(pe *packageEntry) bool) {
	g.t.Walk(func(_ string, pe *packageEntry) bool {
		return fn(pe)
	})
}
