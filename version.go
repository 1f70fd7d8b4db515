package jsonapi

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Supported JSON:API versions for this package.
const (
	MinSupportedVersion = "1.0"
	MaxTestedVersion    = "1.1"
)

// JSONAPI is the top-level "jsonapi" member describing the server's
// implementation.
type JSONAPI struct {
	Version string   `json:"version,omitempty"`
	Ext     []string `json:"ext,omitzero"`
	Profile []string `json:"profile,omitzero"`
	Meta    Meta     `json:"meta,omitzero"`
}

// Clone returns a deep copy of j.
func (j JSONAPI) Clone() JSONAPI {
	out := j
	if j.Ext != nil {
		out.Ext = append([]string{}, j.Ext...)
	}
	if j.Profile != nil {
		out.Profile = append([]string{}, j.Profile...)
	}
	out.Meta = j.Meta.Clone()
	return out
}

// SupportedRange returns the minimum and maximum JSON:API versions supported by this package.
func SupportedRange() (min, max string) {
	return MinSupportedVersion, MaxTestedVersion
}

var (
	minSupportedVersion version
	maxTestedVersion    version
)

func init() {
	var err error
	minSupportedVersion, err = parseVersion(MinSupportedVersion)
	if err != nil {
		panic(fmt.Sprintf("jsonapi: invalid MinSupportedVersion %q: %v", MinSupportedVersion, err))
	}
	maxTestedVersion, err = parseVersion(MaxTestedVersion)
	if err != nil {
		panic(fmt.Sprintf("jsonapi: invalid MaxTestedVersion %q: %v", MaxTestedVersion, err))
	}
}

// IsSupportedVersion reports whether the provided JSON:API version is within the supported range.
func IsSupportedVersion(v string) (bool, error) {
	parsed, err := parseVersion(v)
	if err != nil {
		return false, err
	}
	return compareVersion(parsed, minSupportedVersion) >= 0 && compareVersion(parsed, maxTestedVersion) <= 0, nil
}

type version struct {
	major int
	minor int
}

// parseVersion parses a MAJOR.MINOR version string.
func parseVersion(v string) (version, error) {
	parts := strings.Split(strings.TrimSpace(v), ".")
	if len(parts) != 2 {
		return version{}, fmt.Errorf("invalid version: %q", v)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return version{}, fmt.Errorf("invalid version: %q", v)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil || minor < 0 {
		return version{}, fmt.Errorf("invalid version: %q", v)
	}
	return version{major: major, minor: minor}, nil
}

func compareVersion(a, b version) int {
	if a.major != b.major {
		return cmp.Compare(a.major, b.major)
	}
	return cmp.Compare(a.minor, b.minor)
}
