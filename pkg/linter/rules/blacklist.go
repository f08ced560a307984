package rules

import (
	"fmt"
	"regexp"
)

// DefaultBlacklistPatterns name framework delegate and data source protocols whose
// conformers are exempt from documentation. Word characters are spelled as Unicode
// classes since RE2's \w only matches ASCII.
var DefaultBlacklistPatterns = []string{
	`^ABKInAppMessageControllerDelegate$`,
	`^CardIOPaymentViewControllerDelegate$`,
	`^CLLocationManagerDelegate$`,
	`^GMSMapViewDelegate$`,
	`^TuneDelegate$`,
	`^UI[\p{L}\p{N}_]+(Delegate|DataSource)[\p{L}\p{N}_]*$`,
	`^UISearchResultsUpdating$`,
}

// Blacklist matches inherited type names against compiled patterns
type Blacklist struct {
	patterns []*regexp.Regexp
}

// NewBlacklist compiles patterns once. A malformed pattern is an error.
func NewBlacklist(patterns []string) (*Blacklist, error) {
	b := &Blacklist{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid blacklist pattern %q: %w", p, err)
		}
		b.patterns = append(b.patterns, re)
	}
	return b, nil
}

// MustBlacklist is like NewBlacklist but panics on a malformed pattern
func MustBlacklist(patterns []string) *Blacklist {
	b, err := NewBlacklist(patterns)
	if err != nil {
		panic(err)
	}
	return b
}

// MatchesAny reports whether any name matches any pattern. Unanchored patterns match
// substrings.
func (b *Blacklist) MatchesAny(names []string) bool {
	if b == nil {
		return false
	}
	for _, name := range names {
		for _, re := range b.patterns {
			if re.MatchString(name) {
				return true
			}
		}
	}
	return false
}
