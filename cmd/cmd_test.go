package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ii64/psvlink/conf"
	"github.com/ii64/psvlink/lib/link"
	"github.com/ii64/psvlink/lib/proc/ld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string, perm os.FileMode) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return path
}

func TestMainResolveOnly(t *testing.T) {
	dir := t.TempDir()
	ver := writeFile(t, filepath.Join(dir, "exports.ver"), "{ global: module_*; local: *; };", 0o644)
	rsp := writeFile(t, filepath.Join(dir, "args.rsp"), "-lSceLibKernel_stub --version-script "+ver, 0o644)

	cfg := conf.Default()
	err := Main(cfg, []string{"-shared", "-o", filepath.Join(dir, "app.suprx"), "main.o", "@" + rsp})
	assert.NoError(t, err)
}

func TestMainResolveErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, filepath.Join(dir, "bad.ver"), "{ global: foo }", 0o644)

	tests := []struct {
		name string
		argv []string
	}{
		{"unknown option", []string{"--frobnicate"}},
		{"duplicate output", []string{"-o", "a", "-o", "b"}},
		{"bad version script", []string{"--version-script", bad}},
		{"response file cycle", []string{"@" + writeFile(t, filepath.Join(dir, "self.rsp"), "@"+filepath.Join(dir, "self.rsp"), 0o644)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Main(conf.Default(), tt.argv))
		})
	}
}

func TestMainVersionScriptDiag(t *testing.T) {
	dir := t.TempDir()
	diag := filepath.Join(dir, "diag")
	bad := writeFile(t, filepath.Join(dir, "bad.ver"), "{\n  global: foo\n}", 0o644)

	cfg := conf.Default()
	cfg.DiagDir = diag
	require.NoError(t, cfg.Vaildate())

	err := Main(cfg, []string{"--version-script", bad})
	var vsErr *link.VersionScriptError
	require.ErrorAs(t, err, &vsErr)
	assert.Equal(t, 3, vsErr.Line)
	assert.FileExists(t, vsErr.Dump)
}

func fakeLD(t *testing.T, dir, body string) *conf.Config {
	t.Helper()
	old := ld.DEFAULT_LD
	t.Cleanup(func() { ld.DEFAULT_LD = old })

	cfg := conf.Default()
	cfg.ExtLD = writeFile(t, filepath.Join(dir, "fake-ld"), "#!/bin/sh\n"+body+"\n", 0o755)
	require.NoError(t, cfg.Vaildate())
	return cfg
}

func TestBackendMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := fakeLD(t, dir, "exit 0")
	err := Main(cfg, []string{filepath.Join(dir, "missing.o")})
	assert.ErrorContains(t, err, "invalid input file")
}

func TestBackendLdFails(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "main.o"), "", 0o644)
	cfg := fakeLD(t, dir, "echo 'undefined reference to foo' >&2\nexit 1")

	err := Main(cfg, []string{"-o", filepath.Join(dir, "app"), in})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined reference to foo")
	assert.NoDirExists(t, cfg.TempDir)
}

func TestBackendNotElf(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "main.o"), "", 0o644)
	// Write garbage to the path following -o.
	cfg := fakeLD(t, dir, `while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then echo garbage > "$2"; fi
  shift
done`)
	cfg.KeepTemp = true

	err := Main(cfg, []string{"-o", filepath.Join(dir, "app"), in})
	assert.Error(t, err)
	assert.FileExists(t, filepath.Join(cfg.TempDir, "merged.o"))
	os.RemoveAll(cfg.TempDir)
}

func TestModuleName(t *testing.T) {
	assert.Equal(t, "app", moduleName("build/app.suprx"))
	assert.Equal(t, "a", moduleName("a.out"))
	assert.Equal(t, "libfoo", moduleName("libfoo"))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "src"), "payload", 0o644)
	dst := filepath.Join(dir, "dst")
	require.NoError(t, copyFile(src, dst))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}
