package depsolver

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

// The kind of a version value - a real parsed version, the no-version
// sentinel, or the placeholder version carried by packages that are
// referenced but absent from the universe.
type versionKind uint8

const (
	vReal versionKind = iota
	vNone
	vMissing
)

// Version is a parsed semantic version. The distinguished NoVersion
// sentinel sorts before every real version; it is reserved for synthetic
// entries and for reporting packages that ended up without a version.
type Version struct {
	sv   *semver.Version
	segs uint8
	kind versionKind
}

// NoVersion is the distinguished non-version. It precedes all real
// versions in the ordering.
var NoVersion = Version{kind: vNone}

// missingVersion marks the single unreachable entry injected for packages
// that the universe never defines.
var missingVersion = Version{kind: vMissing}

// ParseVersion canonicalizes a raw version. Raw forms are a string, a
// byte slice, or an already-parsed Version, which passes through
// untouched.
func ParseVersion(raw interface{}) (Version, error) {
	switch tv := raw.(type) {
	case Version:
		return tv, nil
	case string:
		return parseVersionString(tv)
	case []byte:
		return parseVersionString(string(tv))
	default:
		return Version{}, errors.Errorf("cannot interpret %T as a version", raw)
	}
}

// MustVersion is ParseVersion for inputs known to be well formed. It
// panics on malformed input.
func MustVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func parseVersionString(s string) (Version, error) {
	s = strings.TrimSpace(s)
	sv, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, errors.Wrapf(err, "malformed version %q", s)
	}

	// The number of components the caller actually wrote decides where a
	// pessimistic constraint's upper bound lands, and the parser
	// normalizes it away; count it off the raw text, before any
	// pre-release or build suffix.
	core := s
	if i := strings.IndexAny(core, "-+"); i != -1 {
		core = core[:i]
	}
	segs := uint8(strings.Count(core, ".")) + 1
	if segs > 3 {
		segs = 3
	}

	return Version{sv: sv, segs: segs, kind: vReal}, nil
}

func mkver(major, minor, patch int64) Version {
	sv := semver.MustParse(fmt.Sprintf("%d.%d.%d", major, minor, patch))
	return Version{sv: sv, segs: 3, kind: vReal}
}

func (v Version) String() string {
	switch v.kind {
	case vNone:
		return "<none>"
	case vMissing:
		return "<missing>"
	}
	return v.sv.Original()
}

// Compare orders versions by semver precedence, with NoVersion before
// every real version and the missing placeholder after.
func (v Version) Compare(o Version) int {
	if v.kind != o.kind {
		return int(rankOf(v.kind)) - int(rankOf(o.kind))
	}
	if v.kind != vReal {
		return 0
	}
	return v.sv.Compare(o.sv)
}

func rankOf(k versionKind) int8 {
	switch k {
	case vNone:
		return -1
	case vMissing:
		return 1
	}
	return 0
}

// Equal reports version equality under semver precedence.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// LessThan reports whether v precedes o.
func (v Version) LessThan(o Version) bool {
	return v.Compare(o) < 0
}

// real reports whether v is an actual version, as opposed to one of the
// sentinels.
func (v Version) real() bool {
	return v.kind == vReal
}

// pessimisticBound computes the exclusive upper bound of a `~>`
// constraint anchored at v: drop the rightmost component the user wrote,
// increment the new rightmost, zero everything below. So `~> 1.2.3`
// admits up to (but not including) 1.3.0, while `~> 1.2` and `~> 1`
// both admit up to 2.0.0.
func (v Version) pessimisticBound() Version {
	if v.segs >= 3 {
		return mkver(v.sv.Major(), v.sv.Minor()+1, 0)
	}
	return mkver(v.sv.Major()+1, 0, 0)
}
