package git

import (
	"context"
	"sort"
	"strings"
)

const remotePrefix = "remotes/origin/"

// Branches exposes branch-level git operations. All git interaction for the
// release flow is funneled through this type so callers reason in branch
// names and actions, never raw commands.
type Branches struct {
	runner *CommandRunner
}

// NewBranches creates a Branches accessor backed by the given runner.
func NewBranches(runner *CommandRunner) *Branches {
	return &Branches{runner: runner}
}

// FetchAll fetches every branch from all remotes.
func (b *Branches) FetchAll(ctx context.Context) error {
	_, err := b.runner.Run(ctx, "fetch all", "fetch", "--all")
	return err
}

// FetchBranch fetches a single branch from origin.
func (b *Branches) FetchBranch(ctx context.Context, name string) error {
	_, err := b.runner.Run(ctx, "fetch "+name, "fetch", "origin", name)
	return err
}

// Checkout checks out an existing branch.
func (b *Branches) Checkout(ctx context.Context, name string) error {
	_, err := b.runner.Run(ctx, "checkout "+name, "checkout", name)
	return err
}

// CreateBranch creates and checks out a new branch. Fails if the branch
// already exists.
func (b *Branches) CreateBranch(ctx context.Context, name string) error {
	_, err := b.runner.Run(ctx, "create "+name, "checkout", "-b", name)
	return err
}

// Pull pulls a branch from origin into the current branch.
func (b *Branches) Pull(ctx context.Context, name string) error {
	_, err := b.runner.Run(ctx, "pull "+name, "pull", "origin", name)
	return err
}

// Merge merges the named branch into the current branch.
func (b *Branches) Merge(ctx context.Context, name string) error {
	_, err := b.runner.Run(ctx, "merge "+name, "merge", name)
	return err
}

// ListBranches returns every local and remote branch name, with remote
// tracking names collapsed to their local equivalents, deduplicated and
// sorted.
func (b *Branches) ListBranches(ctx context.Context) ([]string, error) {
	lines, err := b.runner.RunLines(ctx, "list branches", "branch", "--all")
	if err != nil {
		return nil, err
	}
	return ParseBranchList(lines), nil
}

// CurrentBranch returns the name of the currently checked out branch.
func (b *Branches) CurrentBranch(ctx context.Context) (string, error) {
	lines, err := b.runner.RunLines(ctx, "current branch", "branch")
	if err != nil {
		return "", err
	}
	return ParseCurrentBranch(lines), nil
}

// PruneGone deletes local branches whose upstream is gone. It fetches with
// prune first so the tracking state is current, then batch-deletes. Returns
// the names of the deleted branches.
func (b *Branches) PruneGone(ctx context.Context) ([]string, error) {
	if _, err := b.runner.Run(ctx, "fetch prune", "fetch", "--prune"); err != nil {
		return nil, err
	}
	lines, err := b.runner.RunLines(ctx, "list tracking", "branch", "-vv")
	if err != nil {
		return nil, err
	}
	gone := ParseGoneBranches(lines)
	for _, name := range gone {
		if _, err := b.runner.Run(ctx, "delete "+name, "branch", "-D", name); err != nil {
			return nil, err
		}
	}
	return gone, nil
}

// ParseBranchList extracts branch names from `git branch --all` output.
// Lines are trimmed, the current-branch marker and remote tracking prefix
// stripped, and the symbolic HEAD pointer discarded. The result is
// deduplicated and sorted.
func ParseBranchList(lines []string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, line := range lines {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		// "remotes/origin/HEAD -> origin/main" is a symbolic ref, not a branch.
		if strings.Contains(name, "->") {
			continue
		}
		name = strings.TrimPrefix(name, "* ")
		name = strings.TrimPrefix(name, remotePrefix)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseCurrentBranch finds the line carrying the current-branch marker in
// `git branch` output and returns the bare name, or "" if no line matches.
func ParseCurrentBranch(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "*") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "*"))
		}
	}
	return ""
}

// ParseGoneBranches extracts from `git branch -vv` output the names of
// branches whose upstream has been deleted.
func ParseGoneBranches(lines []string) []string {
	var gone []string
	for _, line := range lines {
		if !strings.Contains(line, ": gone]") {
			continue
		}
		trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		fields := strings.Fields(trimmed)
		if len(fields) > 0 {
			gone = append(gone, fields[0])
		}
	}
	return gone
}
