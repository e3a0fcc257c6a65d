package executor

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tk-425/caller-cli/internal/apperr"
)

func newTestExecutor(out, errb *bytes.Buffer) *Executor {
	return &Executor{
		Stdin:  strings.NewReader(""),
		Stdout: out,
		Stderr: errb,
		Log:    zerolog.Nop(),
	}
}

func TestRun_Echo(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out, errb bytes.Buffer
	e := newTestExecutor(&out, &errb)

	res := e.Run(ctx, Request{Program: "echo", Args: []string{"hello"}, SuccessMessage: "done"})
	require.True(t, res.Success())
	assert.Equal(t, "hello\n", out.String())
	assert.Equal(t, "done", res.Message(Request{SuccessMessage: "done"}))
	assert.NoError(t, res.Err(Request{}))
}

func TestRun_NoShellInterpretation(t *testing.T) {
	var out, errb bytes.Buffer
	e := newTestExecutor(&out, &errb)

	res := e.Run(context.Background(), Request{Program: "echo", Args: []string{"a;", "$HOME", "|", "b"}})
	require.True(t, res.Success())
	assert.Equal(t, "a; $HOME | b\n", out.String())
}

func TestRun_NonZeroExit(t *testing.T) {
	tests := []struct {
		name string
		code int
	}{
		{name: "one", code: 1},
		{name: "three", code: 3},
		{name: "high", code: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errb bytes.Buffer
			e := newTestExecutor(&out, &errb)
			req := Request{
				Program:        "sh",
				Args:           []string{"-c", "exit " + strconv.Itoa(tt.code)},
				FailureMessage: "Command failed",
			}

			res := e.Run(context.Background(), req)
			require.True(t, res.Launched())
			assert.False(t, res.Success())
			assert.Equal(t, tt.code, res.ExitCode)
			assert.Contains(t, res.Message(req), "exit code "+strconv.Itoa(tt.code))

			err := res.Err(req)
			require.ErrorIs(t, err, apperr.ErrNonZeroExit)
		})
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	var out, errb bytes.Buffer
	e := newTestExecutor(&out, &errb)
	req := Request{Program: "caller-definitely-not-a-binary", FailureMessage: "Command failed"}

	res := e.Run(context.Background(), req)
	assert.False(t, res.Launched())
	assert.False(t, res.Success())
	assert.NotEmpty(t, res.Reason)
	assert.True(t, strings.HasPrefix(res.Message(req), "Command failed: "))
	require.ErrorIs(t, res.Err(req), apperr.ErrLaunchFailed)
}

func TestRun_EmptyProgram(t *testing.T) {
	e := newTestExecutor(&bytes.Buffer{}, &bytes.Buffer{})
	res := e.Run(context.Background(), Request{})
	assert.False(t, res.Launched())
}

func TestRun_DryRun(t *testing.T) {
	var out, errb bytes.Buffer
	e := newTestExecutor(&out, &errb)
	e.DryRun = true

	res := e.Run(context.Background(), Request{Program: "rm", Args: []string{"-rf", "my dir"}})
	require.True(t, res.Success())
	assert.Equal(t, "dry-run: rm -rf 'my dir'\n", out.String())
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		program string
		args    []string
	}{
		{name: "single", in: "ls", program: "ls", args: []string{}},
		{name: "runs of whitespace", in: "  npm   run\tbuild ", program: "npm", args: []string{"run", "build"}},
		{name: "quotes not interpreted", in: `echo "a b"`, program: "echo", args: []string{`"a`, `b"`}},
		{name: "nbsp separates", in: "git\u00A0status", program: "git", args: []string{"status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, args, err := Split(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.program, program)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestSplit_Empty(t *testing.T) {
	_, _, err := Split("   ")
	require.ErrorIs(t, err, apperr.ErrEmptyInput)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, `echo "Hello" 'x'`, Sanitize("echo \u201CHello\u201D \u2018x\u2019"))
	assert.Equal(t, "ab", Sanitize("a\u200Bb\x00"))
}

type scriptedRunner struct {
	results []Outcome
	ran     []Request
}

func (s *scriptedRunner) Run(_ context.Context, req Request) Outcome {
	out := s.results[len(s.ran)]
	s.ran = append(s.ran, req)
	return out
}

func TestRunSequence_AllSucceed(t *testing.T) {
	r := &scriptedRunner{results: []Outcome{Completed(0), Completed(0), Completed(0)}}
	reqs := []Request{{Program: "a"}, {Program: "b"}, {Program: "c"}}

	var reported []string
	err := RunSequence(context.Background(), r, reqs, func(req Request, _ Outcome) {
		reported = append(reported, req.Program)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, reported)
}

func TestRunSequence_AbortsOnFirstFailure(t *testing.T) {
	tests := []struct {
		name    string
		failing Outcome
		kind    error
	}{
		{name: "non-zero exit", failing: Completed(2), kind: apperr.ErrNonZeroExit},
		{name: "launch failure", failing: LaunchFailed("not found"), kind: apperr.ErrLaunchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &scriptedRunner{results: []Outcome{Completed(0), tt.failing, Completed(0)}}
			reqs := []Request{{Program: "pull"}, {Program: "install"}, {Program: "cleanup"}}

			err := RunSequence(context.Background(), r, reqs, nil)
			require.ErrorIs(t, err, tt.kind)
			assert.Len(t, r.ran, 2)
		})
	}
}

func TestRunSequence_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &scriptedRunner{results: []Outcome{Completed(0)}}

	err := RunSequence(ctx, r, []Request{{Program: "a"}}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, r.ran)
}
