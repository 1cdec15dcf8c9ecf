package buildinfo

import (
	"fmt"
	"strconv"
	"strings"
)

// Semver is a release version. Pre-release and build suffixes are kept
// verbatim and only take part in ordering when the numeric parts are equal.
type Semver struct {
	Major int
	Minor int
	Patch int
	Pre   string
}

// ParseSemver parses "1.2.3", "v1.2.3", "1.2.3-beta.1" or "1.2.3+sha".
func ParseSemver(s string) (Semver, error) {
	raw := s
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")

	var pre string
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		pre = s[i+1:]
		s = s[:i]
	}

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Semver{}, fmt.Errorf("invalid semver: %q", raw)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Semver{}, fmt.Errorf("invalid semver component %q in %q", p, raw)
		}
		nums[i] = n
	}

	return Semver{Major: nums[0], Minor: nums[1], Patch: nums[2], Pre: pre}, nil
}

// String returns the version as "major.minor.patch[-pre]".
func (v Semver) String() string {
	if v.Pre != "" {
		return fmt.Sprintf("%d.%d.%d-%s", v.Major, v.Minor, v.Patch, v.Pre)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1. A pre-release sorts before its release.
func (v Semver) Compare(other Semver) int {
	for _, d := range [3]int{v.Major - other.Major, v.Minor - other.Minor, v.Patch - other.Patch} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	switch {
	case v.Pre == other.Pre:
		return 0
	case v.Pre == "":
		return 1
	case other.Pre == "":
		return -1
	case v.Pre < other.Pre:
		return -1
	default:
		return 1
	}
}

// LessThan returns true if v < other.
func (v Semver) LessThan(other Semver) bool {
	return v.Compare(other) < 0
}
