package step

import (
	"os"
	"sync"
)

// running holds the step processes started by ExecRunner that have not been
// reaped yet, so a forced exit can take them down.
var running = struct {
	sync.Mutex
	procs map[int]*os.Process
}{procs: make(map[int]*os.Process)}

func track(p *os.Process) {
	running.Lock()
	running.procs[p.Pid] = p
	running.Unlock()
}

func untrack(p *os.Process) {
	running.Lock()
	delete(running.procs, p.Pid)
	running.Unlock()
}

// Running returns how many step processes are currently alive.
func Running() int {
	running.Lock()
	defer running.Unlock()
	return len(running.procs)
}

// KillRunning kills every live step process together with its process group.
// Processes are reaped by their own Run call.
func KillRunning() {
	running.Lock()
	defer running.Unlock()
	for _, p := range running.procs {
		killGroup(p)
	}
}
