package version

import "github.com/Masterminds/semver/v3"

// Release channels reported by Channel.
const (
	ChannelDev        = "dev"
	ChannelPrerelease = "prerelease"
	ChannelStable     = "stable"
)

// Parsed returns Version as a semantic version, or nil for builds stamped
// with something else (such as "dev").
func Parsed() *semver.Version {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil
	}
	return v
}

// Channel classifies the build for telemetry and the version command.
func Channel() string {
	v := Parsed()
	switch {
	case v == nil:
		return ChannelDev
	case v.Prerelease() != "":
		return ChannelPrerelease
	default:
		return ChannelStable
	}
}

// Satisfies reports whether the build version meets constraint, for
// example ">= 1.2". Dev builds satisfy every constraint.
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, err
	}
	v := Parsed()
	if v == nil {
		return true, nil
	}
	return c.Check(v), nil
}
