package profiler

import (
	"fmt"
	"regexp"
	"strings"
)

// CompileRule compiles a synthesized rule pattern with Go's regexp package.
// RE2 has no "{,n}" form, so an omitted lower bound is rewritten to "{0,n}".
func CompileRule(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(strings.ReplaceAll(pattern, "{,", "{0,"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

// Filter returns the domains matched by pattern, sorted and deduplicated.
// The pattern is applied to the whole domain: it is anchored at the start
// and consumes the leading label together with the dot that ends it.
func Filter(pattern string, domains []string) ([]string, error) {
	re, err := CompileRule(pattern)
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, d := range SortedUnique(domains) {
		if re.MatchString(d) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}
