// Package version decides whether an installed theme has drifted from the
// registry's resolved latest version.
package version

import "strconv"

// LatestSource resolves the registry's latest version string for a theme.
type LatestSource interface {
	LatestVersion(name string) (string, error)
}

// StampSource reads the version stamped inside an installed bundle.
// An empty string means the stamp file is missing (legacy install).
type StampSource interface {
	StampedVersion(name string) (string, error)
}

// NumericKey derives the ordering key for a version string by stripping
// every non-digit character and parsing the remaining digit sequence as
// an unsigned integer. "1.10" therefore keys as 110 and outranks "2.0"
// (20); this matches the upstream registry's ordering and is asserted
// literally in tests. Returns false for strings with no digits or whose
// digit sequence overflows uint64.
func NumericKey(version string) (uint64, bool) {
	digits := make([]byte, 0, len(version))
	for i := 0; i < len(version); i++ {
		if version[i] >= '0' && version[i] <= '9' {
			digits = append(digits, version[i])
		}
	}
	if len(digits) == 0 {
		return 0, false
	}

	key, err := strconv.ParseUint(string(digits), 10, 64)
	if err != nil {
		return 0, false
	}
	return key, true
}

// Resolver compares stamped versions against registry metadata.
type Resolver struct {
	latest LatestSource
	stamps StampSource
}

// NewResolver creates a resolver over the given sources.
func NewResolver(latest LatestSource, stamps StampSource) *Resolver {
	return &Resolver{latest: latest, stamps: stamps}
}

// IsUpdateDue reports whether the installed theme differs from the
// registry's latest version. A missing stamp fails open as "update due".
// Comparison is an exact string mismatch: a registry republish under an
// identical version string is treated as current.
func (r *Resolver) IsUpdateDue(name string) (bool, error) {
	latest, err := r.latest.LatestVersion(name)
	if err != nil {
		return false, err
	}

	stamped, err := r.stamps.StampedVersion(name)
	if err != nil {
		return false, err
	}
	if stamped == "" {
		return true, nil
	}

	return stamped != latest, nil
}
