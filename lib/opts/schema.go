// Package opts decodes an ld-style argument vector against a registry of
// flags, two byte short options and --long[=value] options.
package opts

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Producer builds the argument for a flag, which carries no value.
type Producer[A any] func() A

// Parser builds an argument from an option value or a plain token.
type Parser[A any] func(value string) (A, error)

type Schema[A any] struct {
	flags  map[string]Producer[A]
	shorts map[[2]byte]Parser[A]
	longs  map[string]Parser[A]
	plain  Parser[A]
}

// New returns an empty schema. plain handles every token that is neither a
// registered option nor starts with '-'.
func New[A any](plain Parser[A]) *Schema[A] {
	return &Schema[A]{
		flags:  map[string]Producer[A]{},
		shorts: map[[2]byte]Parser[A]{},
		longs:  map[string]Parser[A]{},
		plain:  plain,
	}
}

func (s *Schema[A]) SetPlainHandler(plain Parser[A]) { s.plain = plain }

func (s *Schema[A]) RegisterFlag(name string, produce Producer[A]) error {
	if _, exist := s.flags[name]; exist {
		return &DuplicateOptionError{Kind: KindFlag, Name: name}
	}
	s.flags[name] = produce
	return nil
}

func (s *Schema[A]) RegisterShort(name string, parse Parser[A]) error {
	if len(name) != 2 {
		return fmt.Errorf("opts: short option name %q must be 2 bytes long", name)
	}
	key := [2]byte{name[0], name[1]}
	if _, exist := s.shorts[key]; exist {
		return &DuplicateOptionError{Kind: KindShort, Name: name}
	}
	s.shorts[key] = parse
	return nil
}

func (s *Schema[A]) RegisterLong(name string, parse Parser[A]) error {
	if _, exist := s.longs[name]; exist {
		return &DuplicateOptionError{Kind: KindLong, Name: name}
	}
	s.longs[name] = parse
	return nil
}

// MustRegisterFlag panics on a registration error. Registration happens
// once at startup, so a failure here is a programming error.
func (s *Schema[A]) MustRegisterFlag(name string, produce Producer[A]) {
	if err := s.RegisterFlag(name, produce); err != nil {
		panic(err)
	}
}

func (s *Schema[A]) MustRegisterShort(name string, parse Parser[A]) {
	if err := s.RegisterShort(name, parse); err != nil {
		panic(err)
	}
}

func (s *Schema[A]) MustRegisterLong(name string, parse Parser[A]) {
	if err := s.RegisterLong(name, parse); err != nil {
		panic(err)
	}
}

// Names lists every registered spelling, sorted.
func (s *Schema[A]) Names() []string {
	names := maps.Keys(s.flags)
	names = append(names, maps.Keys(s.longs)...)
	for key := range s.shorts {
		names = append(names, string(key[:]))
	}
	slices.Sort(names)
	return names
}

// Stream returns an iterator decoding tokens against s. The schema must not
// be modified while a stream is in use.
func (s *Schema[A]) Stream(tokens []string) *Stream[A] {
	return &Stream[A]{schema: s, tokens: tokens}
}

func (s *Schema[A]) lookupShort(tok string) (Parser[A], bool) {
	if len(tok) < 2 {
		return nil, false
	}
	parse, ok := s.shorts[[2]byte{tok[0], tok[1]}]
	return parse, ok
}
