// Package proc runs the external tools the linker hands work to.
package proc

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/golang/glog"
)

type Process struct {
	*exec.Cmd
	stderr *Writer
}

func New(program string, args []string) *Process {
	p := &Process{}
	p.Cmd = exec.Command(program, args...)
	p.stderr = &Writer{Writer: os.Stderr}
	p.Stdout = &Writer{Writer: os.Stdout}
	p.Stderr = p.stderr
	return p
}

// Run starts the process, waits for it and fails on a non-zero exit. The
// error carries the tail of the tool's stderr.
func (p *Process) Run() (err error) {
	glog.V(1).Infof("proc: exec %s %s", p.Path, strings.Join(p.Args[1:], " "))
	if err = p.Start(); err != nil {
		return
	}
	activeProcess.Add(p)
	defer activeProcess.Remove(p)

	err = p.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		err = fmt.Errorf("proc: %s exited with status %d: %s",
			p.Path, exitErr.ExitCode(), strings.TrimSpace(p.stderr.Tail()))
	}
	return
}
