package exec

import (
	"context"
	"sync"
)

// Recorder is a Runner that records commands instead of running them.
//
// Fail, when set, decides the result of each command. OnRun, when set, runs
// after a command is recorded and before Fail is consulted, which lets tests
// simulate a generator writing files.
type Recorder struct {
	mu       sync.Mutex
	Commands []Command
	Fail     func(Command) error
	OnRun    func(Command) error
}

func (r *Recorder) RunCommand(ctx context.Context, c Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.Commands = append(r.Commands, c)
	r.mu.Unlock()

	if r.OnRun != nil {
		if err := r.OnRun(c); err != nil {
			return err
		}
	}
	if r.Fail != nil {
		return r.Fail(c)
	}
	return nil
}

// Lines returns the recorded commands as strings.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		lines[i] = c.String()
	}
	return lines
}
