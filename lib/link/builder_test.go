package link

import (
	"io/fs"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ii64/psvlink/lib/ldargs"
	"github.com/ii64/psvlink/lib/opts"
	"github.com/ii64/psvlink/lib/vscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFiles(files map[string]string) Options {
	return Options{ReadFile: func(p string) ([]byte, error) {
		s, ok := files[p]
		if !ok {
			return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
		}
		return []byte(s), nil
	}}
}

func TestResolveScopedFlags(t *testing.T) {
	argv := []string{"--as-needed", "-Bstatic", "--whole-archive", "foo.o", "--no-whole-archive", "-Bdynamic", "-o", "out.elf", "-shared"}
	spec, err := Resolve(argv, Options{})
	require.NoError(t, err)

	want := &Spec{
		InputFiles: []InputFile{{Path: "foo.o", WholeArchive: true}},
		OutputFile: "out.elf",
		Output:     Shared{},
	}
	if diff := cmp.Diff(want, spec); diff != "" {
		t.Errorf("spec mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveSnapshots(t *testing.T) {
	argv := []string{
		"-L", "/sdk/lib", "a.o",
		"--gc-sections", "-Bstatic", "-lc", "b.o",
		"--whole-archive", "-l:libcore.rlib", "--no-whole-archive",
		"--no-gc-sections", "-Bdynamic", "-lm", "c.o",
		"--eh-frame-hdr", "-znoexecstack", "-L/usr/lib",
	}
	spec, err := Resolve(argv, Options{})
	require.NoError(t, err)

	want := &Spec{
		InputFiles: []InputFile{
			{Path: "a.o"},
			{Path: "b.o", GcSections: true},
			{Path: "c.o"},
		},
		LibraryPaths: []string{"/sdk/lib", "/usr/lib"},
		Libraries: []InputLibrary{
			{Lib: ldargs.Library{Kind: ldargs.LibraryName, Value: "c"}, OnlyStatic: true, GcSections: true},
			{Lib: ldargs.Library{Kind: ldargs.LibraryFile, Value: "libcore.rlib"}, OnlyStatic: true, GcSections: true, WholeArchive: true},
			{Lib: ldargs.Library{Kind: ldargs.LibraryName, Value: "m"}},
		},
		OutputFile:    DefaultOutputFile,
		Output:        Executable{},
		EhFrameHeader: true,
		ZKeywords:     []ldargs.ZKeyword{ldargs.ZNoExecStack},
	}
	if diff := cmp.Diff(want, spec); diff != "" {
		t.Errorf("spec mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveOutputKind(t *testing.T) {
	files := memFiles(map[string]string{"v.map": "{ global: f; local: *; };"})
	tests := []struct {
		name string
		argv []string
		want OutputOptions
	}{
		{"default", nil, Executable{}},
		{"pie", []string{"-pie"}, Executable{PIC: true}},
		{"shared", []string{"-Bshareable"}, Shared{}},
		{"shared with script", []string{"--version-script=v.map", "-shared"}, Shared{VersionScriptPath: "v.map"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Resolve(tt.argv, files)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, spec.Output, cmpopts.IgnoreTypes(&vscript.Script{})); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveConflicts(t *testing.T) {
	files := memFiles(map[string]string{
		"a.map": "{ global: a; local: *; };",
		"b.map": "{ global: b; local: *; };",
	})

	_, err := Resolve([]string{"-o", "a.elf", "x.o", "--output=b.elf"}, files)
	var oerr *DuplicateOutputError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, &DuplicateOutputError{First: "a.elf", Second: "b.elf"}, oerr)

	_, err = Resolve([]string{"-shared", "--version-script", "a.map", "--version-script=b.map"}, files)
	var verr *DuplicateVersionScriptError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "a.map", verr.First)

	for _, argv := range [][]string{
		{"-pie", "-shared"},
		{"--version-script=a.map"},
		{"-pie", "--version-script=a.map"},
	} {
		_, err = Resolve(argv, files)
		var kerr *AmbiguousOutputKindError
		assert.ErrorAs(t, err, &kerr, "%v", argv)
	}
}

func TestResolveInputErrors(t *testing.T) {
	_, err := Resolve([]string{"a.o", "--no-such-flag"}, Options{})
	var uerr *opts.UnrecognizedOptionError
	assert.ErrorAs(t, err, &uerr)

	_, err = Resolve([]string{"-o"}, Options{})
	var merr *opts.MissingOptionValueError
	assert.ErrorAs(t, err, &merr)

	_, err = Resolve([]string{"-zexecstack"}, Options{})
	var zerr *ldargs.InvalidZKeywordError
	assert.ErrorAs(t, err, &zerr)

	_, err = Resolve([]string{"-shared", "--version-script=missing.map"}, memFiles(nil))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestResolveBadVersionScript(t *testing.T) {
	src := "{\n  global:\n    ok;\n    bad*name;\n  local: *;\n};\n"
	o := memFiles(map[string]string{"bad.map": src})
	o.DiagDir = t.TempDir()

	_, err := Resolve([]string{"-shared", "--version-script", "bad.map"}, o)
	var verr *VersionScriptError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, vscript.ErrPatternSyntax)
	assert.Equal(t, 4, verr.Line)
	assert.Equal(t, 5, verr.Col)
	require.NotEmpty(t, verr.Dump)

	dumped, rerr := os.ReadFile(verr.Dump)
	require.NoError(t, rerr)
	assert.Equal(t, src, string(dumped))
}

func TestSpecIsExported(t *testing.T) {
	files := memFiles(map[string]string{"v.map": "{ global: module_*; api; local: *; };"})

	spec, err := Resolve([]string{"-shared", "--version-script=v.map"}, files)
	require.NoError(t, err)
	assert.True(t, spec.IsShared())
	assert.True(t, spec.IsExported("module_start"))
	assert.True(t, spec.IsExported("api"))
	assert.False(t, spec.IsExported("apix"))

	spec, err = Resolve([]string{"-shared"}, files)
	require.NoError(t, err)
	assert.True(t, spec.IsExported("anything"))

	spec, err = Resolve([]string{"-pie"}, files)
	require.NoError(t, err)
	assert.False(t, spec.IsShared())
	assert.False(t, spec.IsExported("main"))
}
