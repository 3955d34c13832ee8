package depsolver

import (
	"reflect"
	"testing"
)

func TestGraphAddAndMerge(t *testing.T) {
	g := NewGraph()
	g.AddPackageVersion("app1", "0.1", Eq("app2", "0.2"))
	g.AddPackageVersion("app1", "0.2")

	pe, has := g.t.Get("app1")
	if !has {
		t.Fatalf("app1 missing from graph after add")
	}
	if len(pe.versions) != 2 {
		t.Fatalf("Expected 2 versions of app1, got %d", len(pe.versions))
	}

	// Re-adding an existing version merges constraints, keeping the old
	// order in front and dropping exact duplicates.
	g.AddPackageVersion("app1", "0.1", Eq("app2", "0.2"), GTE("app3", "0.2"))
	if len(pe.versions[0].constraints) != 2 {
		t.Fatalf("Expected 2 constraints on app1 0.1 after merge, got %d: %v",
			len(pe.versions[0].constraints), pe.versions[0].constraints)
	}
	if !pe.versions[0].constraints[0].eq(Eq("app2", "0.2")) {
		t.Errorf("Merge must preserve the original constraint order")
	}
	if !pe.versions[0].constraints[1].eq(GTE("app3", "0.2")) {
		t.Errorf("Merge must append the genuinely new constraint")
	}

	if len(pe.versions) != 2 {
		t.Errorf("Merging must not introduce a duplicate version entry")
	}
}

func TestGraphVersionOrderPreserved(t *testing.T) {
	// Declared order drives the solver's preference; canonicalization
	// must never re-sort it.
	g := NewGraph()
	g.AddPackageVersion("a", "2.0")
	g.AddPackageVersion("a", "1.0")
	g.AddPackageVersion("a", "3.0")

	pe, _ := g.t.Get("a")
	want := []string{"2.0", "1.0", "3.0"}
	for i, ve := range pe.versions {
		if ve.version.String() != want[i] {
			t.Errorf("Version position %d: expected %s, got %s", i, want[i], ve.version)
		}
	}
}

func TestGraphAddOrderIndependence(t *testing.T) {
	specs := []PackageSpec{
		{Name: "a", Versions: []VersionSpec{{Version: "1.0", Deps: []Constraint{On("b")}}}},
		{Name: "b", Versions: []VersionSpec{{Version: "1.0"}, {Version: "2.0"}}},
		{Name: "c", Versions: []VersionSpec{{Version: "0.1"}}},
	}

	forward := NewGraph().AddPackages(specs)
	backward := NewGraph()
	for i := len(specs) - 1; i >= 0; i-- {
		backward.AddPackage(specs[i].Name, specs[i].Versions)
	}

	collect := func(g *Graph) map[string][]string {
		out := make(map[string][]string)
		g.walk(func(pe *packageEntry) bool {
			var vs []string
			for _, ve := range pe.versions {
				vs = append(vs, ve.version.String())
			}
			out[string(pe.name)] = vs
			return false
		})
		return out
	}

	if !reflect.DeepEqual(collect(forward), collect(backward)) {
		t.Errorf("Package and version sets must not depend on add order")
	}
}

func TestGraphWalkIsSorted(t *testing.T) {
	g := NewGraph()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		g.AddPackageVersion(name, "1.0")
	}

	var names []string
	g.walk(func(pe *packageEntry) bool {
		names = append(names, string(pe.name))
		return false
	})

	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Expected sorted walk %v, got %v", want, names)
	}
}
