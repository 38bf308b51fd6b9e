package profiler

import "errors"

var (
	// ErrEmptyCluster is returned when a group has no high-entropy
	// subdomains, so there is no length range or character set to build a
	// pattern from.
	ErrEmptyCluster = errors.New("no high-entropy subdomains to profile")

	// ErrEmptyCharClass is returned when none of the profiled characters
	// survive into the character class (only non-alphanumeric, non-dash
	// characters were seen). The resulting "[]" class would never match.
	ErrEmptyCharClass = errors.New("character class would be empty")

	// ErrLengthLimit is returned when the longest high-entropy label is
	// longer than MaxRepeat, the largest repeat count the regexp package
	// compiles.
	ErrLengthLimit = errors.New("label length exceeds repeat limit")

	// ErrInvalidPattern is returned when a rule pattern does not compile.
	ErrInvalidPattern = errors.New("invalid rule pattern")
)

// IsNoRule reports whether err means the group produced no rule while its
// clusters are still valid.
func IsNoRule(err error) bool {
	return errors.Is(err, ErrEmptyCluster) ||
		errors.Is(err, ErrEmptyCharClass) ||
		errors.Is(err, ErrLengthLimit)
}
