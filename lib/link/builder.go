package link

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/ii64/psvlink/lib/ldargs"
	"github.com/ii64/psvlink/lib/util"
	"github.com/ii64/psvlink/lib/vscript"
)

type Options struct {
	// ReadFile loads version scripts; os.ReadFile when nil.
	ReadFile func(path string) ([]byte, error)
	// DiagDir receives a copy of any version script that fails to parse.
	DiagDir string
}

// ArgumentSource is satisfied by the ldargs argument stream.
type ArgumentSource interface {
	Next() bool
	Argument() ldargs.Argument
	Err() error
}

// Builder is a left to right fold over decoded arguments. The scoped
// toggles start cleared, matching ld's -Bdynamic default.
type Builder struct {
	opts Options

	onlyStatic   bool
	gcSections   bool
	wholeArchive bool

	pie    bool
	shared bool

	output        util.Cell[string]
	versionScript util.Cell[*vscript.Script]
	scriptPath    string

	spec Spec
}

func NewBuilder(opts Options) *Builder {
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}
	return &Builder{opts: opts}
}

// Resolve decodes argv with the ld schema and builds the link Spec.
func Resolve(argv []string, opts Options) (*Spec, error) {
	return Build(ldargs.NewSchema().Stream(argv), opts)
}

func Build(src ArgumentSource, opts Options) (spec *Spec, err error) {
	b := NewBuilder(opts)
	for src.Next() {
		if err = b.Add(src.Argument()); err != nil {
			return
		}
	}
	if err = src.Err(); err != nil {
		return
	}
	return b.Finish()
}

func (b *Builder) Add(arg ldargs.Argument) error {
	glog.V(2).Infof("link: argument %s", arg)

	switch a := arg.(type) {
	case ldargs.AsNeeded:
		// accepted for compatibility, no effect on what gets linked
	case ldargs.BDynamic:
		b.onlyStatic = false
	case ldargs.BStatic:
		b.onlyStatic = true
	case ldargs.EhFrameHdr:
		b.spec.EhFrameHeader = true
	case ldargs.GcSections:
		b.gcSections = bool(a)
	case ldargs.WholeArchive:
		b.wholeArchive = bool(a)
	case ldargs.InputFile:
		b.spec.InputFiles = append(b.spec.InputFiles, InputFile{
			Path:         string(a),
			GcSections:   b.gcSections,
			WholeArchive: b.wholeArchive,
		})
	case ldargs.Library:
		b.spec.Libraries = append(b.spec.Libraries, InputLibrary{
			Lib:          a,
			OnlyStatic:   b.onlyStatic,
			GcSections:   b.gcSections,
			WholeArchive: b.wholeArchive,
		})
	case ldargs.LibraryPath:
		b.spec.LibraryPaths = append(b.spec.LibraryPaths, string(a))
	case ldargs.Output:
		if err := b.output.Set(string(a)); err != nil {
			first, _ := b.output.Get()
			return &DuplicateOutputError{First: first, Second: string(a)}
		}
	case ldargs.VersionScript:
		return b.addVersionScript(string(a))
	case ldargs.PicExecutable:
		b.pie = true
	case ldargs.Shared:
		b.shared = true
	case ldargs.Z:
		b.spec.ZKeywords = append(b.spec.ZKeywords, a.Keyword)
	default:
		return fmt.Errorf("link: unhandled argument %T", arg)
	}
	return nil
}

func (b *Builder) addVersionScript(path string) error {
	if b.versionScript.IsSet() {
		return &DuplicateVersionScriptError{First: b.scriptPath, Second: path}
	}
	src, err := b.opts.ReadFile(path)
	if err != nil {
		return fmt.Errorf("link: cannot read version script: %w", err)
	}
	vs, err := vscript.Parse(src)
	if err != nil {
		return b.versionScriptError(path, src, err)
	}
	glog.V(1).Infof("link: version script %s: %s", path, vs)
	b.scriptPath = path
	return b.versionScript.Set(vs)
}

func (b *Builder) versionScriptError(path string, src []byte, err error) error {
	verr := &VersionScriptError{Path: path, Line: 1, Col: 1, Err: err}
	var perr *vscript.ParseError
	if errors.As(err, &perr) {
		verr.Line, verr.Col = vscript.Position(src, perr.Span(src).Start)
	}
	if b.opts.DiagDir != "" {
		dump, derr := vscript.DumpSource(b.opts.DiagDir, src)
		if derr != nil {
			glog.Warningf("link: cannot save version script for diagnostics: %v", derr)
		} else {
			verr.Dump = dump
		}
	}
	return verr
}

// Finish infers the output kind and returns the link Spec. The builder must not
// be used afterwards.
func (b *Builder) Finish() (*Spec, error) {
	vs, hasScript := b.versionScript.Get()
	switch {
	case !b.shared && !hasScript:
		b.spec.Output = Executable{PIC: b.pie}
	case !b.pie && b.shared:
		b.spec.Output = Shared{VersionScript: vs, VersionScriptPath: b.scriptPath}
	default:
		return nil, &AmbiguousOutputKindError{PIE: b.pie, Shared: b.shared, VersionScript: hasScript}
	}
	b.spec.OutputFile = b.output.GetOr(DefaultOutputFile)
	spec := b.spec
	return &spec, nil
}
