// Package git provides a wrapper around git commands and go-git for repository operations.
package git

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	cutovererrors "cutover.dev/cutover/internal/errors"
)

// DebugLogger traces the commands the runner spawns. *tui.Splog satisfies it.
type DebugLogger interface {
	Debug(format string, args ...interface{})
}

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
	debug      bool
	logger     DebugLogger
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{
		workingDir: workingDir,
		debug:      os.Getenv("DEBUG") != "",
	}
}

// SetDebug toggles live echo of command output to the console.
func (r *CommandRunner) SetDebug(debug bool) {
	r.debug = debug
}

// SetLogger installs a logger that receives a trace line for every command
// the runner spawns.
func (r *CommandRunner) SetLogger(logger DebugLogger) {
	r.logger = logger
}

// Run executes a git command and returns the trimmed stdout. The tag names
// the operation for error attribution. On non-zero exit the returned error
// is a *errors.GitCommandError carrying the tag, captured output, exit code
// and classified kind.
func (r *CommandRunner) Run(ctx context.Context, tag string, args ...string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(strings.Join(args, "")) == "" {
		return "", cutovererrors.NewGitCommandError(tag, args, "", "", -1, cutovererrors.KindNoCommand, nil)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if r.logger != nil {
		r.logger.Debug("git %s", strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}

	var stdout, stderr bytes.Buffer
	if r.debug {
		cmd.Stdout = io.MultiWriter(&stdout, os.Stdout)
		cmd.Stderr = io.MultiWriter(&stderr, os.Stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		kind := Classify(stdout.String(), stderr.String())
		return "", cutovererrors.NewGitCommandError(tag, args, stdout.String(), stderr.String(), exitCode, kind, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// RunLines executes a git command and returns stdout split into lines.
func (r *CommandRunner) RunLines(ctx context.Context, tag string, args ...string) ([]string, error) {
	output, err := r.Run(ctx, tag, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// Classify maps raw git output to a failure kind. Rules are evaluated in
// priority order against the combined stdout/stderr text. The matching is an
// internal detail; callers only ever see the returned kind.
func Classify(stdout, stderr string) cutovererrors.Kind {
	combined := stdout + "\n" + stderr
	switch {
	case strings.Contains(combined, "fatal: couldn't find remote ref"):
		return cutovererrors.KindMissingRemoteRef
	case strings.Contains(combined, "CONFLICT"):
		return cutovererrors.KindConflict
	default:
		return cutovererrors.KindGeneric
	}
}
