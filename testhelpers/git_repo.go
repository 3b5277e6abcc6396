// Package testhelpers builds scratch git repositories for tests.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo represents a Git repository for testing purposes.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	// Use -c flags to avoid reading global config so test runs are hermetic.
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	if err := repo.RunGit("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGit("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}

	return repo, nil
}

// CloneGitRepo clones an existing repository, leaving the clone's origin
// pointing at the source so fetch/pull against "origin" work in tests.
func CloneGitRepo(dir, sourceDir string) (*GitRepo, error) {
	cmd := exec.Command("git", "clone", "--local", sourceDir, dir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to clone repo: %w", err)
	}

	repo := &GitRepo{Dir: dir}
	if err := repo.RunGit("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGit("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	return repo, nil
}

// RunGit executes a git command in the repository directory.
func (r *GitRepo) RunGit(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	return cmd.Run()
}

// RunGitOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %v failed: %w", args, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChangeAndCommit writes a file and commits it.
func (r *GitRepo) CreateChangeAndCommit(fileName, content string) error {
	path := filepath.Join(r.Dir, fileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fileName, err)
	}
	if err := r.RunGit("add", fileName); err != nil {
		return err
	}
	return r.RunGit("commit", "-m", "update "+fileName)
}

// CreateAndCheckoutBranch creates and checks out a new branch.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.RunGit("checkout", "-b", name)
}

// CheckoutBranch checks out an existing branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.RunGit("checkout", name)
}

// CurrentBranch returns the currently checked out branch name.
func (r *GitRepo) CurrentBranch() (string, error) {
	return r.RunGitOutput("rev-parse", "--abbrev-ref", "HEAD")
}
