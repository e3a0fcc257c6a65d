package executil

import (
	"context"
	"strings"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Dir  string
	Cmd  string
	Args []string
}

// RecordingExecutor captures commands for testing.
//
// Outputs and Errors are keyed by the command name plus its first argument
// ("git branch"), falling back to the bare command name ("git").
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	Outputs map[string][]byte
	Errors  map[string]error
}

// Run records the command and returns configured output/error.
func (e *RecordingExecutor) Run(_ context.Context, cmd string, args ...string) ([]byte, error) {
	return e.record("", cmd, args...)
}

// RunDir records the command with directory and returns configured output/error.
func (e *RecordingExecutor) RunDir(_ context.Context, dir, cmd string, args ...string) ([]byte, error) {
	return e.record(dir, cmd, args...)
}

func (e *RecordingExecutor) record(dir, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{Dir: dir, Cmd: cmd, Args: args})

	keys := []string{cmd}
	if len(args) > 0 {
		keys = []string{cmd + " " + args[0], cmd}
	}
	for _, k := range keys {
		out, okOut := e.Outputs[k]
		err, okErr := e.Errors[k]
		if okOut || okErr {
			return out, err
		}
	}
	return nil, nil
}

// Lines returns each recorded command as "cmd arg1 arg2".
func (e *RecordingExecutor) Lines() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	lines := make([]string, 0, len(e.Commands))
	for _, c := range e.Commands {
		lines = append(lines, strings.Join(append([]string{c.Cmd}, c.Args...), " "))
	}
	return lines
}
