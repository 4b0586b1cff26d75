// Package ldargs describes the GNU ld compatible command line accepted by
// the linker.
package ldargs

import (
	"fmt"
	"strings"
)

// Argument is one decoded command line argument. The set of
// implementations is closed; consumers switch on the concrete type.
type Argument interface {
	fmt.Stringer
	isArgument()
}

type (
	AsNeeded      bool
	BDynamic      struct{}
	BStatic       struct{}
	EhFrameHdr    struct{}
	GcSections    bool
	InputFile     string
	LibraryPath   string
	Output        string
	PicExecutable struct{}
	Shared        struct{}
	VersionScript string
	WholeArchive  bool
	Z             struct{ Keyword ZKeyword }
)

// Library is either a -l<name> search or a -l:<file> literal filename.
type Library struct {
	Kind LibraryKind
	// Value is the library name, or the filename with the colon stripped.
	Value string
}

type LibraryKind uint8

const (
	LibraryName LibraryKind = iota
	LibraryFile
)

func ParseLibrary(v string) Library {
	if file, ok := strings.CutPrefix(v, ":"); ok {
		return Library{Kind: LibraryFile, Value: file}
	}
	return Library{Kind: LibraryName, Value: v}
}

type ZKeyword string

const ZNoExecStack ZKeyword = "noexecstack"

type InvalidZKeywordError struct {
	Keyword string
}

func (e *InvalidZKeywordError) Error() string {
	return fmt.Sprintf("ldargs: unknown -z keyword %q", e.Keyword)
}

func ParseZKeyword(s string) (ZKeyword, error) {
	switch ZKeyword(s) {
	case ZNoExecStack:
		return ZNoExecStack, nil
	}
	return "", &InvalidZKeywordError{Keyword: s}
}

func (AsNeeded) isArgument()      {}
func (BDynamic) isArgument()      {}
func (BStatic) isArgument()       {}
func (EhFrameHdr) isArgument()    {}
func (GcSections) isArgument()    {}
func (InputFile) isArgument()     {}
func (Library) isArgument()       {}
func (LibraryPath) isArgument()   {}
func (Output) isArgument()        {}
func (PicExecutable) isArgument() {}
func (Shared) isArgument()        {}
func (VersionScript) isArgument() {}
func (WholeArchive) isArgument()  {}
func (Z) isArgument()             {}

// String methods render the canonical ld spelling of each argument.

func (a AsNeeded) String() string      { return toggle(bool(a), "as-needed") }
func (BDynamic) String() string        { return "-Bdynamic" }
func (BStatic) String() string         { return "-Bstatic" }
func (EhFrameHdr) String() string      { return "--eh-frame-hdr" }
func (a GcSections) String() string    { return toggle(bool(a), "gc-sections") }
func (a InputFile) String() string     { return string(a) }
func (a LibraryPath) String() string   { return "-L" + string(a) }
func (a Output) String() string        { return "--output=" + string(a) }
func (PicExecutable) String() string   { return "-pie" }
func (Shared) String() string          { return "-shared" }
func (a VersionScript) String() string { return "--version-script=" + string(a) }
func (a WholeArchive) String() string  { return toggle(bool(a), "whole-archive") }
func (a Z) String() string             { return "-z" + string(a.Keyword) }

func (l Library) String() string {
	if l.Kind == LibraryFile {
		return "-l:" + l.Value
	}
	return "-l" + l.Value
}

func toggle(on bool, name string) string {
	if on {
		return "--" + name
	}
	return "--no-" + name
}
