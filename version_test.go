package depsolver

import (
	"testing"
)

func TestParseVersionForms(t *testing.T) {
	v, err := ParseVersion("1.2.3")
	if err != nil {
		t.Fatalf("Unexpected error parsing plain version: %s", err)
	}
	if v.String() != "1.2.3" {
		t.Errorf("Expected 1.2.3 back out, got %q", v)
	}

	b, err := ParseVersion([]byte("0.1"))
	if err != nil {
		t.Fatalf("Unexpected error parsing byte-slice version: %s", err)
	}
	if b.String() != "0.1" {
		t.Errorf("Expected 0.1 back out, got %q", b)
	}

	same, err := ParseVersion(v)
	if err != nil {
		t.Fatalf("Unexpected error passing a Version through: %s", err)
	}
	if !same.Equal(v) {
		t.Errorf("Version passthrough changed the value: %q vs %q", same, v)
	}

	if _, err := ParseVersion("not-a-version"); err == nil {
		t.Errorf("Expected an error for malformed input")
	}
	if _, err := ParseVersion(42); err == nil {
		t.Errorf("Expected an error for an uninterpretable raw type")
	}
}

func TestVersionOrdering(t *testing.T) {
	table := []struct {
		l, r string
		cmp  int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0", 0},
		{"0.1", "0.2", -1},
		{"1.9.0", "1.10.0", -1},
		{"2.0.0", "1.99.99", 1},
		{"1.0.0-alpha", "1.0.0", -1},
	}

	for _, tc := range table {
		got := MustVersion(tc.l).Compare(MustVersion(tc.r))
		if sign(got) != tc.cmp {
			t.Errorf("Compare(%s, %s): expected sign %d, got %d", tc.l, tc.r, tc.cmp, got)
		}
	}

	if !NoVersion.LessThan(MustVersion("0.0.0")) {
		t.Errorf("NoVersion must sort before every real version")
	}
	if !NoVersion.Equal(NoVersion) {
		t.Errorf("NoVersion must equal itself")
	}
	if missingVersion.real() || NoVersion.real() {
		t.Errorf("Sentinels must not report as real versions")
	}
}

func TestPessimisticBound(t *testing.T) {
	table := []struct {
		anchor string
		bound  string
	}{
		{"1.2.3", "1.3.0"},
		{"1.2.0", "1.3.0"},
		{"1.2", "2.0.0"},
		{"1", "2.0.0"},
		{"0.3.0-pre", "0.4.0"},
	}

	for _, tc := range table {
		got := MustVersion(tc.anchor).pessimisticBound()
		if !got.Equal(MustVersion(tc.bound)) {
			t.Errorf("pessimisticBound(%s): expected %s, got %s", tc.anchor, tc.bound, got)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
