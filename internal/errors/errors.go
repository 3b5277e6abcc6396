// Package errors provides sentinel errors and custom error types for the cutover application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies the failure of an external git command.
type Kind int

const (
	// KindGeneric is any command failure that matches no more specific rule.
	KindGeneric Kind = iota
	// KindNoCommand indicates an empty command was submitted for execution.
	KindNoCommand
	// KindConflict indicates a merge produced conflicts that need manual resolution.
	KindConflict
	// KindMissingRemoteRef indicates the named branch does not exist on the remote.
	KindMissingRemoteRef
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNoCommand:
		return "no command"
	case KindConflict:
		return "merge conflict"
	case KindMissingRemoteRef:
		return "missing remote ref"
	default:
		return "git error"
	}
}

// Sentinel errors for session validation and state persistence
var (
	// ErrMissingVersion indicates the session has no release version
	ErrMissingVersion = errors.New("release version is missing")

	// ErrMissingMainBranch indicates the session has no production branch
	ErrMissingMainBranch = errors.New("main branch is missing")

	// ErrMissingBranches indicates the session has no branches to merge
	ErrMissingBranches = errors.New("no branches selected to merge")

	// ErrMainBranchRequired indicates a release branch cannot be created without a production branch
	ErrMainBranchRequired = errors.New("main branch is required to create the release branch")

	// ErrReleaseExists indicates a release branch for the requested version already exists
	ErrReleaseExists = errors.New("release branch already exists")
)

// GitCommandError represents a failed git command execution, carrying the
// operation tag for attribution and the classified failure kind.
type GitCommandError struct {
	Tag      string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Kind     Kind
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("%s failed (%s)", e.Tag, e.Kind)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(": git %v", e.Args)
	}
	if out := e.Output(); out != "" {
		msg += "\n" + out
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// Output returns the diagnostic text for the failure. Conflict details are
// reported by git on stdout, so conflicts yield stdout; everything else
// yields stderr.
func (e *GitCommandError) Output() string {
	if e.Kind == KindConflict {
		return e.Stdout
	}
	return e.Stderr
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(tag string, args []string, stdout, stderr string, exitCode int, kind Kind, err error) *GitCommandError {
	return &GitCommandError{
		Tag:      tag,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Kind:     kind,
		Err:      err,
	}
}

// KindOf extracts the classified kind from an error chain. Errors that are
// not GitCommandErrors classify as KindGeneric.
func KindOf(err error) Kind {
	var cmdErr *GitCommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Kind
	}
	return KindGeneric
}

// MalformedStateError represents unparseable persisted release state.
// This is fatal: the state file must be repaired or removed by hand.
type MalformedStateError struct {
	Path string
	Err  error
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("release state at %s is malformed: %v", e.Path, e.Err)
}

func (e *MalformedStateError) Unwrap() error {
	return e.Err
}
