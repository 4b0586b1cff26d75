package opts

import "fmt"

type OptionKind int

const (
	KindFlag OptionKind = iota
	KindShort
	KindLong
)

func (k OptionKind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindShort:
		return "short option"
	case KindLong:
		return "long option"
	}
	return "unknown"
}

type DuplicateOptionError struct {
	Kind OptionKind
	Name string
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("opts: duplicate %s %q", e.Kind, e.Name)
}

// UnrecognizedOptionError reports a token starting with '-' that matches no
// registered option.
type UnrecognizedOptionError struct {
	Token string
}

func (e *UnrecognizedOptionError) Error() string {
	return fmt.Sprintf("opts: unrecognized option %q", e.Token)
}

// MissingOptionValueError reports an option whose value should come from the
// next token when there is none.
type MissingOptionValueError struct {
	Option string
}

func (e *MissingOptionValueError) Error() string {
	return fmt.Sprintf("opts: option %q: argument missing", e.Option)
}
