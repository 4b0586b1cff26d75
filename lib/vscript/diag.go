package vscript

import (
	"errors"
	"fmt"
	"os"
)

// DumpSource saves src under dir so a rejected script can be inspected
// after the link has failed. It returns the file path.
func DumpSource(dir string, src []byte) (path string, err error) {
	var f *os.File
	f, err = os.CreateTemp(dir, "version-script-*.ver")
	if err != nil {
		return
	}
	path = f.Name()
	if _, err = f.Write(src); err != nil {
		f.Close()
		return
	}
	err = f.Close()
	return
}

// Describe prefixes a parse error with name:line:col when err is a
// ParseError, so it reads like a compiler diagnostic.
func Describe(name string, src []byte, err error) string {
	var perr *ParseError
	if !errors.As(err, &perr) {
		return fmt.Sprintf("%s: %s", name, err)
	}
	line, col := Position(src, perr.Span(src).Start)
	return fmt.Sprintf("%s:%d:%d: %s", name, line, col, perr)
}
