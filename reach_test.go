package depsolver

import (
	"testing"
)

func TestReachableTrimsUnrelated(t *testing.T) {
	g := basicUniverse()
	g.AddPackageVersion("orphan", "1.0")

	sub, err := g.reachable([]Constraint{Eq("app1", "0.1")})
	if err != nil {
		t.Fatalf("Unexpected error trimming: %s", err)
	}

	for _, want := range []string{"app1", "app2", "app3"} {
		if _, has := sub.t.Get(want); !has {
			t.Errorf("Package %s is reachable from the goal but missing from the trimmed graph", want)
		}
	}
	if _, has := sub.t.Get("orphan"); has {
		t.Errorf("Package orphan is not referenced by any goal and must be trimmed")
	}
}

func TestReachableInjectsPlaceholder(t *testing.T) {
	g := NewGraph()
	g.AddPackageVersion("top", "1.0", Eq("ghost", "1.0"))

	sub, err := g.reachable([]Constraint{Eq("top", "1.0")})
	if err != nil {
		t.Fatalf("Unexpected error trimming: %s", err)
	}

	pe, has := sub.t.Get("ghost")
	if !has {
		t.Fatalf("Referenced-but-undefined package must be injected as a placeholder")
	}
	if len(pe.versions) != 1 || pe.versions[0].version.real() {
		t.Errorf("Placeholder must carry exactly one sentinel version, got %v", pe.versions)
	}
	if len(pe.realVersions()) != 0 {
		t.Errorf("Placeholder must have no real versions")
	}

	// The version referencing the missing package stays in the graph;
	// trimming it away would impoverish culprit output.
	top, _ := sub.t.Get("top")
	if len(top.versions) != 1 {
		t.Errorf("Version referencing a missing package must survive trimming")
	}
}

func TestReachableUnknownGoal(t *testing.T) {
	g := basicUniverse()

	_, err := g.reachable([]Constraint{Eq("appX", "0.1")})
	ue, ok := err.(*UnreachableError)
	if !ok {
		t.Fatalf("Expected *UnreachableError, got %T: %v", err, err)
	}
	if ue.Name != "appX" {
		t.Errorf("Expected the error to name appX, got %s", ue.Name)
	}
}

func TestReachableCyclicGraphTerminates(t *testing.T) {
	g := NewGraph()
	g.AddPackageVersion("a", "1.0", On("b"))
	g.AddPackageVersion("b", "1.0", On("a"))

	sub, err := g.reachable([]Constraint{On("a")})
	if err != nil {
		t.Fatalf("Unexpected error on cyclic graph: %s", err)
	}
	if sub.Len() != 2 {
		t.Errorf("Expected both cycle members in the trimmed graph, got %d packages", sub.Len())
	}
}
