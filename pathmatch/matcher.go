package pathmatch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// ErrEmptyPattern is returned when compiling an empty pattern string.
var ErrEmptyPattern = errors.New("empty pattern")

// Pattern is a compiled glob rule. Immutable and safe for concurrent use.
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

// Compile converts a glob pattern into an anchored matcher.
func Compile(pattern string) (*Pattern, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	var b strings.Builder
	b.Grow(len(pattern) + 8)
	b.WriteByte('^')

	for i := 0; i < len(pattern); {
		switch {
		case strings.HasPrefix(pattern[i:], "**"):
			b.WriteString(".*")
			i += 2
		case pattern[i] == '*':
			b.WriteString("[^/]*")
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(pattern[i])))
			i++
		}
	}
	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}

	return &Pattern{raw: pattern, re: re}, nil
}

// String returns the original pattern text.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.raw
}

// Matches reports whether path matches the entire pattern. path must be the
// path component only, without a query string.
func (p *Pattern) Matches(path string) bool {
	if p == nil {
		return false
	}
	return p.re.MatchString(path)
}

// Match compiles pattern and tests path against it in one step.
func Match(path, pattern string) (bool, error) {
	p, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return p.Matches(path), nil
}

// Set is a concurrency-safe, deduplicating collection of compiled patterns.
//
// The set is semantically a set even though it is stored as a sequence:
// registration is idempotent, and pattern order affects only early-exit
// performance, never the boolean result.
type Set struct {
	mu       sync.RWMutex
	patterns []*Pattern
}

// NewSet compiles the given patterns into a [Set]. Duplicates are collapsed.
func NewSet(patterns ...string) (*Set, error) {
	s := &Set{}
	for _, raw := range patterns {
		if err := s.Add(raw); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add registers a pattern. Adding an already-registered pattern is a no-op.
func (s *Set) Add(pattern string) error {
	compiled, err := Compile(pattern)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.patterns {
		if existing.raw == pattern {
			return nil
		}
	}
	s.patterns = append(s.patterns, compiled)
	return nil
}

// Matches reports whether path matches at least one registered pattern,
// short-circuiting on the first hit.
func (s *Set) Matches(path string) bool {
	if s == nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.patterns {
		if p.Matches(path) {
			return true
		}
	}
	return false
}

// Patterns returns a defensive copy of the registered pattern texts.
func (s *Set) Patterns() []string {
	if s == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = p.raw
	}
	return out
}

// Len returns the number of registered patterns.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patterns)
}
