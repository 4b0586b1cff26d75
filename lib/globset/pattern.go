// Package globset holds sets of version script patterns of the form
// `literal` or `literal*`.
package globset

import (
	"errors"
	"strings"
)

var ErrPatternSyntax = errors.New("globset: '*' is only allowed as the last character")

// Pattern matches Prefix exactly, or any string starting with Prefix when
// HasSuffix is set.
type Pattern struct {
	Prefix    string
	HasSuffix bool
}

func Exact(s string) Pattern { return Pattern{Prefix: s} }

func Wildcard(prefix string) Pattern { return Pattern{Prefix: prefix, HasSuffix: true} }

// Universal is the `*` pattern.
var Universal = Wildcard("")

// ParsePattern accepts at most one '*', and only in last position.
func ParsePattern(s string) (Pattern, error) {
	i := strings.IndexByte(s, '*')
	switch {
	case i < 0:
		return Exact(s), nil
	case i == len(s)-1:
		return Wildcard(s[:i]), nil
	}
	return Pattern{}, ErrPatternSyntax
}

func (p Pattern) Match(s string) bool {
	if p.HasSuffix {
		return strings.HasPrefix(s, p.Prefix)
	}
	return s == p.Prefix
}

func (p Pattern) IsUniversal() bool { return p.HasSuffix && p.Prefix == "" }

func (p Pattern) String() string {
	if p.HasSuffix {
		return p.Prefix + "*"
	}
	return p.Prefix
}

// prefixEnd returns the smallest string greater than every string that
// starts with prefix, or ok=false when no such string exists (prefix is
// empty or all 0xff bytes).
func prefixEnd(prefix string) (end string, ok bool) {
	b := []byte(prefix)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xff {
			b[i]++
			return string(b[:i+1]), true
		}
	}
	return "", false
}
