package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ii64/psvlink/lib/proc/ld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "psvlink.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ld: arm-vita-eabi-ld
image_writer: vita-elf-create
verbosity: 2
verify_header: false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "vita-elf-create", cfg.ImageWriter)
	assert.Equal(t, 2, cfg.Verbosity)
	assert.False(t, cfg.VerifyHeader)
	if _, set := os.LookupEnv(EnvLD); !set {
		assert.Equal(t, "arm-vita-eabi-ld", cfg.ExtLD)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.VerifyHeader)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("verbosity: [1"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvLD:          "/opt/vitasdk/bin/arm-vita-eabi-ld",
		EnvImageWriter: "vita-elf-create",
		EnvLog:         "3",
		EnvDiagDir:     "/tmp/diag",
		EnvPrintSpec:   "true",
	}))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		ExtLD:        "/opt/vitasdk/bin/arm-vita-eabi-ld",
		ImageWriter:  "vita-elf-create",
		DiagDir:      "/tmp/diag",
		Verbosity:    3,
		PrintSpec:    true,
		VerifyHeader: true,
	}, cfg)

	assert.Error(t, Default().ApplyEnv(envMap(map[string]string{EnvLog: "loud"})))
	assert.Error(t, Default().ApplyEnv(envMap(map[string]string{EnvPrintSpec: "maybe"})))
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, DefaultFile, ConfigPath(envMap(nil)))
	assert.Equal(t, "/etc/psvlink.yaml", ConfigPath(envMap(map[string]string{EnvConfig: "/etc/psvlink.yaml"})))
}

func TestVaildate(t *testing.T) {
	old := ld.DEFAULT_LD
	defer func() { ld.DEFAULT_LD = old }()

	dir := t.TempDir()
	cfg := &Config{ExtLD: "arm-vita-eabi-ld", DiagDir: filepath.Join(dir, "diag")}
	require.NoError(t, cfg.Vaildate())
	assert.Equal(t, "arm-vita-eabi-ld", ld.DEFAULT_LD)
	assert.DirExists(t, cfg.DiagDir)

	assert.Error(t, (&Config{Verbosity: -1}).Vaildate())
}

func TestCheckInputFiles(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "a.o")
	require.NoError(t, os.WriteFile(obj, nil, 0o644))

	assert.NoError(t, CheckInputFiles([]string{obj}))
	assert.Error(t, CheckInputFiles([]string{obj, filepath.Join(dir, "missing.o")}))
	assert.Error(t, CheckInputFiles([]string{dir}))
}
