package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/iapssh/internal/util/fault"
)

// Result is the outcome of one process execution.
type Result struct {
	// CommandLine is the invocation rendered for display.
	CommandLine string
	ExitCode    int
	Stdout      string
	Stderr      string
	Duration    time.Duration
}

// Success reports whether the process exited with status zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Err returns a command execution error when the process exited non-zero.
func (r *Result) Err() error {
	if r.Success() {
		return nil
	}
	return fault.CommandExecution(&ExitError{
		CommandLine: r.CommandLine,
		ExitCode:    r.ExitCode,
		Stderr:      r.Stderr,
	})
}

// ExitError describes a process that ran and exited with a non-zero status.
type ExitError struct {
	CommandLine string
	ExitCode    int
	Stderr      string
}

func (e *ExitError) Error() string {
	detail := strings.TrimRight(e.Stderr, "\r\n")
	if strings.TrimSpace(detail) == "" {
		detail = fmt.Sprintf("exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("command %s failed: %s", e.CommandLine, detail)
}

// Option configures a Runner.
type Option func(*Runner)

// WithEnv sets the complete environment of spawned processes.
// Without it processes inherit the current environment.
func WithEnv(env []string) Option {
	return func(r *Runner) {
		r.env = env
	}
}

// WithDir sets the working directory of spawned processes.
func WithDir(dir string) Option {
	return func(r *Runner) {
		r.dir = dir
	}
}

// Runner spawns processes with a fixed environment.
type Runner struct {
	env []string
	dir string
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes name with args and waits for it to exit.
//
// The arguments are passed to the process as a discrete list; no shell is
// involved. The rendered command line is logged at info level.
func (r *Runner) Run(ctx context.Context, name string, args []string) (*Result, error) {
	log := logr.FromContextOrDiscard(ctx)
	commandLine := CommandLine(name, args)
	log.Info("Running command", "command", commandLine)

	// #nosec G204 - arguments are passed as a list, never through a shell
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = r.env
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		CommandLine: commandLine,
		Stdout:      stdout.String(),
		Stderr:      stderr.String(),
		Duration:    time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fault.CommandExecution(fmt.Errorf("failed to start %s: %w", commandLine, err))
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fault.CommandExecution(fmt.Errorf("command %s interrupted: %w", commandLine, ctxErr))
		}
		result.ExitCode = exitErr.ExitCode()
	}

	log.V(1).Info("Command finished", "exitCode", result.ExitCode, "duration", result.Duration.String())
	return result, nil
}

// CommandLine renders name and args as a single display string. Tokens that
// contain whitespace or shell metacharacters are single-quoted. The result is
// for logs and error messages only and is never executed.
func CommandLine(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quote(name))
	for _, arg := range args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$`|&;<>()*?[]{}~!#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
