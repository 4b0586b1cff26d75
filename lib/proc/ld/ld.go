// Package ld drives an external GNU ld as the object-merging back end.
package ld

import (
	"fmt"
	"strings"

	"github.com/ii64/psvlink/lib/ldargs"
	"github.com/ii64/psvlink/lib/link"
	"github.com/ii64/psvlink/lib/proc"
	"github.com/samber/lo"
)

var DEFAULT_LD = "ld"

type Ld struct {
	p *proc.Process
}

func (*Ld) checkFilesContainsOpts(args []string) ([]string, error) {
	var file string
	for _, file = range args {
		if strings.HasPrefix(file, "-") {
			goto InvalidFilename
		}
	}
	return args, nil
InvalidFilename:
	return nil, fmt.Errorf("ld: disallowed input %q", file)
}

func (l *Ld) Process() *proc.Process {
	return l.p
}

// Relocatable builds an ld invocation merging every input of spec into a
// single relocatable object at output. Objects come first, then libraries;
// whole-archive and static-only scopes are re-opened around each input
// exactly as they were on the original command line.
func Relocatable(spec *link.Spec, output string) (*Ld, error) {
	l := &Ld{}
	_, err := l.checkFilesContainsOpts(lo.Map(spec.InputFiles, func(in link.InputFile, _ int) string {
		return in.Path
	}))
	if err != nil {
		return nil, err
	}

	args := []string{"--relocatable", "-o", output}
	for _, p := range spec.LibraryPaths {
		args = append(args, ldargs.LibraryPath(p).String())
	}

	var files []string
	var sc scope
	for _, in := range spec.InputFiles {
		files = sc.wholeArchive(files, in.WholeArchive)
		files = append(files, in.Path)
	}
	for _, lib := range spec.Libraries {
		files = sc.onlyStatic(files, lib.OnlyStatic)
		files = sc.wholeArchive(files, lib.WholeArchive)
		files = append(files, lib.Lib.String())
	}
	files = sc.wholeArchive(files, false)
	files = sc.onlyStatic(files, false)

	l.p = proc.New(DEFAULT_LD, append(args, files...))
	return l, nil
}

// scope tracks positional toggles so each is emitted only when it changes.
type scope struct {
	whole, static bool
}

func (s *scope) wholeArchive(args []string, on bool) []string {
	if s.whole == on {
		return args
	}
	s.whole = on
	return append(args, ldargs.WholeArchive(on).String())
}

func (s *scope) onlyStatic(args []string, on bool) []string {
	if s.static == on {
		return args
	}
	s.static = on
	if on {
		return append(args, ldargs.BStatic{}.String())
	}
	return append(args, ldargs.BDynamic{}.String())
}
