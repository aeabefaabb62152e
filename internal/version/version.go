// Package version holds the orrery release version and its string
// formatting. Versions have the form major.minor.micro with an optional
// numbered dev/alpha/beta/candidate/post status.
package version

import (
	"errors"
	"fmt"
)

// Release levels, ordered from earliest to latest.
const (
	LevelDev       = "dev"
	LevelAlpha     = "alpha"
	LevelBeta      = "beta"
	LevelCandidate = "candidate"
	LevelFinal     = "final"
	LevelPost      = "post"
)

// ErrInvalidVersion reports a malformed Info.
var ErrInvalidVersion = errors.New("invalid version")

// levelSuffixes maps a release level to the suffix used in the version
// string. Final has no suffix; dev and post are separated by a dot.
var levelSuffixes = map[string]string{
	LevelDev:       ".dev",
	LevelAlpha:     "a",
	LevelBeta:      "b",
	LevelCandidate: "rc",
	LevelFinal:     "",
	LevelPost:      ".post",
}

// Info is a five-component version number.
type Info struct {
	Major, Minor, Micro int
	Level               string
	Serial              int
}

// Current is the version of this module.
var Current = Info{Major: 0, Minor: 2, Micro: 0, Level: LevelFinal}

// Validate checks the components for consistency.
func (i Info) Validate() error {
	if i.Major < 0 || i.Minor < 0 || i.Micro < 0 || i.Serial < 0 {
		return fmt.Errorf("%w: components must be non-negative", ErrInvalidVersion)
	}
	if _, ok := levelSuffixes[i.Level]; !ok {
		return fmt.Errorf("%w: unknown release level %q", ErrInvalidVersion, i.Level)
	}
	if i.Level == LevelFinal && i.Serial != 0 {
		return fmt.Errorf("%w: a final release cannot carry a serial", ErrInvalidVersion)
	}
	return nil
}

// String formats the version, for example "0.2.0", "1.0.0rc1", or
// "0.3.0.dev2". An invalid Info formats its numeric components only.
func (i Info) String() string {
	s := fmt.Sprintf("%d.%d.%d", i.Major, i.Minor, i.Micro)
	if err := i.Validate(); err != nil || i.Level == LevelFinal {
		return s
	}
	return fmt.Sprintf("%s%s%d", s, levelSuffixes[i.Level], i.Serial)
}

// Short returns the current version string.
func Short() string {
	return Current.String()
}
