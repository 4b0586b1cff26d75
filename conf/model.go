package conf

import (
	"errors"
	"fmt"
	"os"

	"github.com/ii64/psvlink/lib/proc/ld"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "psvlink.yaml"

type Config struct {
	// ExtLD is the GNU ld used to merge inputs. Empty disables the back end
	// and stops after the link spec is resolved.
	ExtLD string `yaml:"ld"`

	// ImageWriter turns the merged object into the final module, invoked
	// as `<writer> merged.o <output>`. Empty copies the merged object.
	ImageWriter string `yaml:"image_writer"`

	// DiagDir receives copies of version scripts that fail to parse.
	DiagDir string `yaml:"diag_dir"`

	Verbosity    int  `yaml:"verbosity"`
	PrintSpec    bool `yaml:"print_spec"`
	KeepTemp     bool `yaml:"keep_temp"`
	VerifyHeader bool `yaml:"verify_header"`

	TempDir string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		VerifyHeader: true,
	}
}

// Load reads defaults, then the YAML file at path (a missing file is
// fine), then environment overrides.
func Load(path string) (cfg *Config, err error) {
	cfg = Default()
	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		err = nil
	case err != nil:
		return nil, fmt.Errorf("conf: %w", err)
	default:
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("conf: %s: %w", path, err)
		}
	}
	if err = cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return
}

func (cfg *Config) Vaildate() error {
	if cfg.Verbosity < 0 {
		return fmt.Errorf("conf: verbosity must not be negative, got %d", cfg.Verbosity)
	}
	if cfg.DiagDir != "" {
		cfg.DiagDir = mustAbs(cfg.DiagDir)
		if err := os.MkdirAll(cfg.DiagDir, 0o755); err != nil {
			return fmt.Errorf("conf: diag dir: %w", err)
		}
	}

	if cfg.ExtLD != "" {
		ld.DEFAULT_LD = cfg.ExtLD
	}
	return nil
}
