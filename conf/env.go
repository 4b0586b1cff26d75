package conf

import (
	"fmt"
	"strconv"
)

const (
	EnvConfig      = "PSVLINK_CONFIG"
	EnvLD          = "LD"
	EnvImageWriter = "PSVLINK_IMAGE_WRITER"
	EnvLog         = "PSVLINK_LOG"
	EnvDiagDir     = "PSVLINK_DIAG_DIR"
	EnvPrintSpec   = "PSVLINK_PRINT_SPEC"
)

// ConfigPath is the config file named by PSVLINK_CONFIG, or DefaultFile.
func ConfigPath(lookup func(string) (string, bool)) string {
	if p, ok := lookup(EnvConfig); ok && p != "" {
		return p
	}
	return DefaultFile
}

func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLD); ok && v != "" {
		cfg.ExtLD = v
	}
	if v, ok := lookup(EnvImageWriter); ok {
		cfg.ImageWriter = v
	}
	if v, ok := lookup(EnvDiagDir); ok {
		cfg.DiagDir = v
	}
	if v, ok := lookup(EnvLog); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("conf: %s=%q: %w", EnvLog, v, err)
		}
		cfg.Verbosity = n
	}
	if v, ok := lookup(EnvPrintSpec); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("conf: %s=%q: %w", EnvPrintSpec, v, err)
		}
		cfg.PrintSpec = b
	}
	return nil
}
