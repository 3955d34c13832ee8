package depsolver

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// universeFile is the on-disk YAML shape of a dependency universe:
//
//	packages:
//	  app1:
//	    - version: "0.1"
//	      dependencies: ["app2 = 0.2", "app3 >= 0.2"]
//	    - version: "0.2"
type universeFile struct {
	Packages map[string][]universeVersion `yaml:"packages"`
}

type universeVersion struct {
	Version      string   `yaml:"version"`
	Dependencies []string `yaml:"dependencies"`
}

// LoadUniverse reads a YAML universe description into a graph. Package
// declarations are applied in name order so that repeated loads build
// identical graphs; within a package, declared version order is kept.
func LoadUniverse(r io.Reader) (*Graph, error) {
	var uf universeFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&uf); err != nil {
		return nil, errors.Wrap(err, "malformed universe file")
	}

	names := make([]string, 0, len(uf.Packages))
	for name := range uf.Packages {
		names = append(names, name)
	}
	sort.Strings(names)

	g := NewGraph()
	for _, name := range names {
		for _, uv := range uf.Packages[name] {
			v, err := ParseVersion(uv.Version)
			if err != nil {
				return nil, errors.Wrapf(err, "package %q", name)
			}
			deps := make([]Constraint, 0, len(uv.Dependencies))
			for _, raw := range uv.Dependencies {
				c, err := ParseConstraint(raw)
				if err != nil {
					return nil, errors.Wrapf(err, "package %q version %q", name, uv.Version)
				}
				deps = append(deps, c)
			}
			g.addVersion(PackageName(name), v, deps)
		}
	}
	return g, nil
}
