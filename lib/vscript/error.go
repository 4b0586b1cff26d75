package vscript

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLex           = errors.New("lexing error")
	ErrWrongToken    = errors.New("wrong token")
	ErrUnexpectedEnd = errors.New("unexpected end")
	ErrExpectedEnd   = errors.New("expected end")
	ErrPatternSyntax = errors.New("invalid glob pattern")
)

// ParseError describes where and why a script was rejected. Kind is one of
// the Err* values above; Got is nil when input ended early.
type ParseError struct {
	Kind     error
	Got      *Token
	Expected []TokenKind
	Err      error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("vscript: ")
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	if e.Got != nil {
		fmt.Fprintf(&b, "; got %s %q at %d..%d", e.Got.Kind, e.Got.Text, e.Got.Span.Start, e.Got.Span.End)
	}
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			names[i] = k.String()
		}
		fmt.Fprintf(&b, "; expected one of %s", strings.Join(names, ", "))
	}
	return b.String()
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Span is the offending byte range. At end of input it is the empty span at
// len(src).
func (e *ParseError) Span(src []byte) Span {
	if e.Got != nil {
		return e.Got.Span
	}
	return Span{len(src), len(src)}
}

// Position converts a byte offset into a 1-based line and column.
func Position(src []byte, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for _, c := range src[:offset] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return
}

// Location renders the error span as "line:col-line:col".
func (e *ParseError) Location(src []byte) string {
	span := e.Span(src)
	sl, sc := Position(src, span.Start)
	el, ec := Position(src, span.End)
	return fmt.Sprintf("%d:%d-%d:%d", sl, sc, el, ec)
}
