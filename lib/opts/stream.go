package opts

import (
	"fmt"
	"strings"
)

// Stream decodes one argument per call to Next, in token order. The first
// error ends the stream.
//
//	st := schema.Stream(args)
//	for st.Next() {
//		use(st.Argument())
//	}
//	if err := st.Err(); err != nil { ... }
type Stream[A any] struct {
	schema *Schema[A]
	tokens []string
	pos    int

	arg A
	tok string
	err error
}

func (st *Stream[A]) Next() bool {
	if st.err != nil || st.pos >= len(st.tokens) {
		return false
	}
	st.tok = st.tokens[st.pos]
	st.arg, st.err = st.decode(st.tok)
	return st.err == nil
}

// Argument is the argument decoded by the last successful Next.
func (st *Stream[A]) Argument() A { return st.arg }

// Token is the token the current argument (or error) started at.
func (st *Stream[A]) Token() string { return st.tok }

func (st *Stream[A]) Err() error { return st.err }

// Collect drains the stream.
func (st *Stream[A]) Collect() (args []A, err error) {
	for st.Next() {
		args = append(args, st.Argument())
	}
	err = st.Err()
	return
}

func (st *Stream[A]) decode(tok string) (arg A, err error) {
	s := st.schema

	if produce, ok := s.flags[tok]; ok {
		st.pos++
		return produce(), nil
	}

	if parse, ok := s.lookupShort(tok); ok {
		var value string
		if len(tok) == 2 {
			if value, err = st.valueAfter(tok); err != nil {
				return
			}
		} else {
			value = tok[2:]
			st.pos++
		}
		return st.apply(tok[:2], parse, value)
	}

	name, value, inline := strings.Cut(tok, "=")
	if parse, ok := s.longs[name]; ok {
		if inline {
			st.pos++
		} else if value, err = st.valueAfter(tok); err != nil {
			return
		}
		return st.apply(name, parse, value)
	}

	if strings.HasPrefix(tok, "-") {
		err = &UnrecognizedOptionError{Token: tok}
		return
	}
	if s.plain == nil {
		err = fmt.Errorf("opts: no handler for plain argument %q", tok)
		return
	}
	st.pos++
	return st.apply("", s.plain, tok)
}

// valueAfter consumes the option token and the one following it.
func (st *Stream[A]) valueAfter(option string) (string, error) {
	if st.pos+1 >= len(st.tokens) {
		return "", &MissingOptionValueError{Option: option}
	}
	value := st.tokens[st.pos+1]
	st.pos += 2
	return value, nil
}

func (st *Stream[A]) apply(option string, parse Parser[A], value string) (arg A, err error) {
	arg, err = parse(value)
	if err != nil {
		if option == "" {
			err = fmt.Errorf("opts: argument %q: %w", value, err)
		} else {
			err = fmt.Errorf("opts: option %s %q: %w", option, value, err)
		}
	}
	return
}
