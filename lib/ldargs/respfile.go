package ldargs

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

const maxResponseFileDepth = 16

// ExpandResponseFiles replaces every @path token with the shell-split
// contents of path, recursively.
func ExpandResponseFiles(args []string, readFile func(string) ([]byte, error)) ([]string, error) {
	return expandResponseFiles(args, readFile, nil)
}

func expandResponseFiles(args []string, readFile func(string) ([]byte, error), stack []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		path, ok := strings.CutPrefix(arg, "@")
		if !ok || path == "" {
			out = append(out, arg)
			continue
		}
		if len(stack) >= maxResponseFileDepth {
			return nil, fmt.Errorf("ldargs: response file %q: nesting deeper than %d", path, maxResponseFileDepth)
		}
		for _, p := range stack {
			if p == path {
				return nil, fmt.Errorf("ldargs: response file %q includes itself", path)
			}
		}
		content, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("ldargs: response file: %w", err)
		}
		words, err := shellquote.Split(string(content))
		if err != nil {
			return nil, fmt.Errorf("ldargs: response file %q: %w", path, err)
		}
		words, err = expandResponseFiles(words, readFile, append(stack, path))
		if err != nil {
			return nil, err
		}
		out = append(out, words...)
	}
	return out, nil
}
