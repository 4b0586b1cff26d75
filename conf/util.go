package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
)

func mustAbs(p string) string {
	p, err := filepath.Abs(p)
	if err != nil {
		panic(err)
	}
	return p
}

func validateFilePath(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	return true
}

// CheckInputFiles reports every path that is missing or a directory.
func CheckInputFiles(files []string) error {
	var invalidFile []string
	for _, fn := range files {
		if !validateFilePath(fn) {
			invalidFile = append(invalidFile, fn)
		}
	}
	if len(invalidFile) > 0 {
		for _, fn := range invalidFile {
			glog.Errorf("file %q: missing or not a regular file", fn)
		}
		return fmt.Errorf("conf: %d invalid input file(s), first %q", len(invalidFile), invalidFile[0])
	}
	return nil
}
