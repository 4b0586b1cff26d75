package proc

import (
	"sync"

	"github.com/golang/glog"
)

var activeProcess = processList{m: map[*Process]struct{}{}}

type processList struct {
	mu sync.Mutex
	m  map[*Process]struct{}
}

func (pl *processList) Add(p *Process) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.m[p] = struct{}{}
}

func (pl *processList) Remove(p *Process) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	delete(pl.m, p)
}

func (pl *processList) Len() int {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return len(pl.m)
}

// KillActive kills every tool still running, for use from a signal handler.
func KillActive() {
	activeProcess.mu.Lock()
	defer activeProcess.mu.Unlock()
	for p := range activeProcess.m {
		if err := p.Process.Kill(); err != nil {
			glog.Warningf("proc: kill %s: %v", p.Path, err)
		}
	}
}
