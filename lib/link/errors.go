package link

import "fmt"

type DuplicateOutputError struct {
	First, Second string
}

func (e *DuplicateOutputError) Error() string {
	return fmt.Sprintf("link: output file specified twice: %q and %q", e.First, e.Second)
}

type DuplicateVersionScriptError struct {
	First, Second string
}

func (e *DuplicateVersionScriptError) Error() string {
	return fmt.Sprintf("link: multiple version scripts: %q and %q", e.First, e.Second)
}

// AmbiguousOutputKindError is returned for flag combinations with no
// defined output kind, such as -pie together with -shared.
type AmbiguousOutputKindError struct {
	PIE           bool
	Shared        bool
	VersionScript bool
}

func (e *AmbiguousOutputKindError) Error() string {
	return fmt.Sprintf("link: cannot infer type of output file (pie=%t, shared=%t, version script=%t)",
		e.PIE, e.Shared, e.VersionScript)
}

// VersionScriptError is a version script that failed to parse. Dump is the
// saved copy of the source, if one was written.
type VersionScriptError struct {
	Path      string
	Line, Col int
	Dump      string
	Err       error
}

func (e *VersionScriptError) Error() string {
	msg := fmt.Sprintf("link: version script %s:%d:%d: %s", e.Path, e.Line, e.Col, e.Err)
	if e.Dump != "" {
		msg += fmt.Sprintf(" (source saved to %s)", e.Dump)
	}
	return msg
}

func (e *VersionScriptError) Unwrap() error { return e.Err }
