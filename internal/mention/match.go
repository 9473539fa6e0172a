package mention

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MaxOptions caps the number of options returned for any path.
const MaxOptions = 100

// IsSubsequence reports whether every character of pattern appears in text
// in order, ignoring case. The empty pattern matches everything.
func IsSubsequence(text, pattern string) bool {
	if pattern == "" {
		return true
	}
	return fuzzy.MatchFold(pattern, text)
}

// Score returns the longest run of text, starting at any offset, that
// matches a prefix of pattern contiguously and case-insensitively.
func Score(text, pattern string) int {
	if pattern == "" {
		return 0
	}
	t := []rune(strings.ToLower(text))
	p := []rune(strings.ToLower(pattern))
	best := 0
	for i := range t {
		run := 0
		for j := 0; j < len(p) && i+j < len(t); j++ {
			if t[i+j] != p[j] {
				break
			}
			run++
		}
		if run > best {
			best = run
		}
	}
	return best
}

// Rank filters options by subsequence match on FullName, orders them by
// descending Score (stable), and truncates to limit. A limit <= 0 disables
// truncation.
func Rank(options []Option, query string, limit int) []Option {
	type scored struct {
		option Option
		score  int
	}
	matches := make([]scored, 0, len(options))
	for _, option := range options {
		if !IsSubsequence(option.FullName, query) {
			continue
		}
		matches = append(matches, scored{option: option, score: Score(option.FullName, query)})
	}
	slices.SortStableFunc(matches, func(a, b scored) int {
		return b.score - a.score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	ranked := make([]Option, len(matches))
	for i, m := range matches {
		ranked[i] = m.option
	}
	return ranked
}
