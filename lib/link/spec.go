// Package link folds decoded linker arguments into a LinkSpec: what to
// link, with which scoped flags, into what kind of output.
package link

import (
	"github.com/ii64/psvlink/lib/ldargs"
	"github.com/ii64/psvlink/lib/vscript"
)

const DefaultOutputFile = "a.out"

// Spec is the resolved link request handed to the back end.
type Spec struct {
	InputFiles    []InputFile
	LibraryPaths  []string
	Libraries     []InputLibrary
	OutputFile    string
	Output        OutputOptions
	EhFrameHeader bool
	ZKeywords     []ldargs.ZKeyword
}

// InputFile and InputLibrary carry the scoped toggles as they were when the
// input appeared on the command line.
type InputFile struct {
	Path         string
	GcSections   bool
	WholeArchive bool
}

type InputLibrary struct {
	Lib          ldargs.Library
	OnlyStatic   bool
	GcSections   bool
	WholeArchive bool
}

// OutputOptions is either Executable or Shared.
type OutputOptions interface {
	isOutput()
}

type Executable struct {
	PIC bool
}

type Shared struct {
	// VersionScript is nil when no --version-script was given.
	VersionScript     *vscript.Script
	VersionScriptPath string
}

func (Executable) isOutput() {}
func (Shared) isOutput()     {}

func (s *Spec) IsShared() bool {
	_, ok := s.Output.(Shared)
	return ok
}

// IsExported reports whether a defined global symbol gets an external
// entry in the output module. Executables export nothing; shared objects
// without a version script export everything.
func (s *Spec) IsExported(name string) bool {
	sh, ok := s.Output.(Shared)
	if !ok {
		return false
	}
	if sh.VersionScript == nil {
		return true
	}
	return sh.VersionScript.IsExported(name)
}
