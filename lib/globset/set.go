package globset

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Set is an ordered collection of pairwise non-intersecting patterns, keyed
// by prefix. Because no two patterns match a common string, the pattern with
// the greatest prefix not above a name is the only one that can match it.
//
// Patterns live in a treap so that a wildcard insert can cut out every
// pattern it subsumes with two splits and a merge.
//
// The zero value is an empty set. A Set is not safe for concurrent Insert.
type Set struct {
	root *node
	seed uint64
}

type node struct {
	pat         Pattern
	prio        uint64
	size        int
	left, right *node
}

func New(patterns ...Pattern) *Set {
	s := &Set{}
	for _, p := range patterns {
		s.Insert(p)
	}
	return s
}

// Insert adds p, dropping every pattern p subsumes. Inserting a pattern that
// is already covered by the set is a no-op.
func (s *Set) Insert(p Pattern) {
	switch {
	case !p.HasSuffix:
		if s.IsMatch(p.Prefix) {
			return
		}
		l, r := split(s.root, p.Prefix)
		s.root = merge(merge(l, s.newNode(p)), r)

	case p.Prefix == "":
		s.root = s.newNode(p)

	default:
		if n := floor(s.root, p.Prefix); n != nil && n.pat.HasSuffix && strings.HasPrefix(p.Prefix, n.pat.Prefix) {
			return
		}
		// [p.Prefix, end) holds exactly the keys starting with p.Prefix.
		l, rest := split(s.root, p.Prefix)
		var r *node
		if end, ok := prefixEnd(p.Prefix); ok {
			_, r = split(rest, end)
		}
		s.root = merge(merge(l, s.newNode(p)), r)
	}
}

func (s *Set) IsMatch(name string) bool {
	n := floor(s.root, name)
	return n != nil && n.pat.Match(name)
}

func (s *Set) Len() int { return s.root.len() }

// IsUniversal reports whether the set is exactly `*`.
func (s *Set) IsUniversal() bool {
	return s.root != nil && s.root.size == 1 && s.root.pat.IsUniversal()
}

// Patterns returns the set in prefix order.
func (s *Set) Patterns() []Pattern {
	out := make([]Pattern, 0, s.Len())
	var walk func(*node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.pat)
		walk(n.right)
	}
	walk(s.root)
	return out
}

func (s *Set) Equal(o *Set) bool {
	if s == nil || o == nil {
		return s == o
	}
	return slices.Equal(s.Patterns(), o.Patterns())
}

const stringLimit = 20

func (s *Set) String() string {
	pats := s.Patterns()
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range pats {
		if i == stringLimit {
			fmt.Fprintf(&b, " < + %d more entries >", len(pats)-stringLimit)
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (s *Set) newNode(p Pattern) *node {
	// splitmix64
	s.seed += 0x9e3779b97f4a7c15
	z := s.seed
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return &node{pat: p, prio: z ^ (z >> 31), size: 1}
}

func (n *node) len() int {
	if n == nil {
		return 0
	}
	return n.size
}

func (n *node) update() { n.size = 1 + n.left.len() + n.right.len() }

// floor returns the node with the greatest prefix <= key.
func floor(n *node, key string) (best *node) {
	for n != nil {
		if n.pat.Prefix <= key {
			best = n
			n = n.right
		} else {
			n = n.left
		}
	}
	return
}

// split cuts t into prefixes < key and prefixes >= key.
func split(t *node, key string) (l, r *node) {
	if t == nil {
		return nil, nil
	}
	if t.pat.Prefix < key {
		var rl *node
		rl, r = split(t.right, key)
		t.right = rl
		t.update()
		return t, r
	}
	var lr *node
	l, lr = split(t.left, key)
	t.left = lr
	t.update()
	return l, t
}

// merge joins two treaps where every prefix in a sorts before every prefix
// in b.
func merge(a, b *node) *node {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	if a.prio > b.prio {
		a.right = merge(a.right, b)
		a.update()
		return a
	}
	b.left = merge(a, b.left)
	b.update()
	return b
}
