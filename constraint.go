package depsolver

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// PackageName is the canonical, case-sensitive identity of a package.
// All raw name forms are coerced to it at the graph boundary.
type PackageName string

// ConstraintOp enumerates the predicate shapes a constraint can take.
type ConstraintOp uint8

const (
	// OpAny admits every version of the named package.
	OpAny ConstraintOp = iota
	OpEqual
	OpGTE
	OpLTE
	OpGT
	OpLT
	// OpPessimistic is `~>`: at least the anchor version, below the
	// anchor with its least-significant written component bumped.
	OpPessimistic
	// OpBetween is the closed interval [Ver, Ver2].
	OpBetween
)

func (op ConstraintOp) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpGTE:
		return ">="
	case OpLTE:
		return "<="
	case OpGT:
		return ">"
	case OpLT:
		return "<"
	case OpPessimistic:
		return "~>"
	case OpBetween:
		return "-"
	}
	return "*"
}

// A Constraint is a predicate over the versions of one named package.
type Constraint struct {
	Name PackageName
	Op   ConstraintOp
	Ver  Version
	// Ver2 is the upper bound of an OpBetween interval; unused otherwise.
	Ver2 Version
}

// On constrains nothing: any version of the named package.
func On(name string) Constraint {
	return Constraint{Name: PackageName(name), Op: OpAny}
}

// Eq pins the named package to exactly the given version.
func Eq(name, ver string) Constraint {
	return Constraint{Name: PackageName(name), Op: OpEqual, Ver: MustVersion(ver)}
}

// GTE admits the given version and everything above it.
func GTE(name, ver string) Constraint {
	return Constraint{Name: PackageName(name), Op: OpGTE, Ver: MustVersion(ver)}
}

// LTE admits the given version and everything below it.
func LTE(name, ver string) Constraint {
	return Constraint{Name: PackageName(name), Op: OpLTE, Ver: MustVersion(ver)}
}

// GT admits strictly newer versions than the given one.
func GT(name, ver string) Constraint {
	return Constraint{Name: PackageName(name), Op: OpGT, Ver: MustVersion(ver)}
}

// LT admits strictly older versions than the given one.
func LT(name, ver string) Constraint {
	return Constraint{Name: PackageName(name), Op: OpLT, Ver: MustVersion(ver)}
}

// Pessimistic is the `~>` operator anchored at the given version.
func Pessimistic(name, ver string) Constraint {
	return Constraint{Name: PackageName(name), Op: OpPessimistic, Ver: MustVersion(ver)}
}

// Between admits versions in the closed interval [lo, hi].
func Between(name, lo, hi string) Constraint {
	return Constraint{Name: PackageName(name), Op: OpBetween, Ver: MustVersion(lo), Ver2: MustVersion(hi)}
}

// Matches indicates whether the given version is admitted by the
// constraint. The sentinels are admitted by nothing, including OpAny;
// only real versions participate in solutions.
func (c Constraint) Matches(v Version) bool {
	if !v.real() {
		return false
	}

	switch c.Op {
	case OpAny:
		return true
	case OpEqual:
		return v.Equal(c.Ver)
	case OpGTE:
		return v.Compare(c.Ver) >= 0
	case OpLTE:
		return v.Compare(c.Ver) <= 0
	case OpGT:
		return v.Compare(c.Ver) > 0
	case OpLT:
		return v.Compare(c.Ver) < 0
	case OpPessimistic:
		return v.Compare(c.Ver) >= 0 && v.LessThan(c.Ver.pessimisticBound())
	case OpBetween:
		return v.Compare(c.Ver) >= 0 && v.Compare(c.Ver2) <= 0
	}
	return false
}

func (c Constraint) String() string {
	switch c.Op {
	case OpAny:
		return string(c.Name)
	case OpBetween:
		return fmt.Sprintf("%s %s - %s", c.Name, c.Ver, c.Ver2)
	default:
		return fmt.Sprintf("%s %s %s", c.Name, c.Op, c.Ver)
	}
}

// eq is structural equality over the canonicalized constraint, used to
// drop exact duplicates when merging version entries. Pessimistic
// constraints additionally compare their computed upper bound, since
// `~> 1.2` and `~> 1.2.0` anchor at equal versions but cut off at
// different points.
func (c Constraint) eq(o Constraint) bool {
	if c.Name != o.Name || c.Op != o.Op {
		return false
	}
	switch c.Op {
	case OpAny:
		return true
	case OpBetween:
		return c.Ver.Equal(o.Ver) && c.Ver2.Equal(o.Ver2)
	case OpPessimistic:
		return c.Ver.Equal(o.Ver) && c.Ver.pessimisticBound().Equal(o.Ver.pessimisticBound())
	default:
		return c.Ver.Equal(o.Ver)
	}
}

// ParseConstraint canonicalizes a constraint from its string grammar:
//
//	"name"                 any version
//	"name 1.2"             exactly 1.2
//	"name <op> 1.2"        op one of = >= <= > < ~>
//	"name 1.0 - 2.0"       closed interval
func ParseConstraint(s string) (Constraint, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		return On(fields[0]), nil
	case 2:
		v, err := ParseVersion(fields[1])
		if err != nil {
			return Constraint{}, err
		}
		return Constraint{Name: PackageName(fields[0]), Op: OpEqual, Ver: v}, nil
	case 3:
		op, ok := opFromString(fields[1])
		if !ok {
			return Constraint{}, errors.Errorf("unknown constraint operator %q in %q", fields[1], s)
		}
		v, err := ParseVersion(fields[2])
		if err != nil {
			return Constraint{}, err
		}
		return Constraint{Name: PackageName(fields[0]), Op: op, Ver: v}, nil
	case 4:
		if fields[2] != "-" {
			return Constraint{}, errors.Errorf("malformed interval constraint %q", s)
		}
		lo, err := ParseVersion(fields[1])
		if err != nil {
			return Constraint{}, err
		}
		hi, err := ParseVersion(fields[3])
		if err != nil {
			return Constraint{}, err
		}
		return Constraint{Name: PackageName(fields[0]), Op: OpBetween, Ver: lo, Ver2: hi}, nil
	default:
		return Constraint{}, errors.Errorf("malformed constraint %q", s)
	}
}

func opFromString(s string) (ConstraintOp, bool) {
	switch s {
	case "=", "==":
		return OpEqual, true
	case ">=":
		return OpGTE, true
	case "<=":
		return OpLTE, true
	case ">":
		return OpGT, true
	case "<":
		return OpLT, true
	case "~>":
		return OpPessimistic, true
	}
	return OpAny, false
}

// mergeConstraints appends every incoming constraint that is not already
// present, preserving the order of both lists. Duplicate detection is by
// canonical structural equality.
func mergeConstraints(existing, incoming []Constraint) []Constraint {
	for _, c := range incoming {
		dup := false
		for _, have := range existing {
			if have.eq(c) {
				dup = true
				break
			}
		}
		if !dup {
			existing = append(existing, c)
		}
	}
	return existing
}
