package testhelpers

import (
	"path/filepath"
	"testing"
)

// Scene is a test fixture with a scratch Git repository.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// NewScene creates a scratch repository with an initial commit on main.
// Cleanup is handled by t.TempDir.
func NewScene(t *testing.T) *Scene {
	t.Helper()

	dir := t.TempDir()
	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("failed to create git repo: %v", err)
	}
	if err := repo.CreateChangeAndCommit("readme.md", "init"); err != nil {
		t.Fatalf("failed to create initial commit: %v", err)
	}

	return &Scene{Dir: dir, Repo: repo}
}

// RemoteScene is a test fixture with an upstream repository and a local
// clone whose origin points at it.
type RemoteScene struct {
	Origin *GitRepo
	Local  *GitRepo
}

// NewRemoteScene creates an upstream repository with an initial commit on
// main and a local clone of it.
func NewRemoteScene(t *testing.T) *RemoteScene {
	t.Helper()

	base := t.TempDir()
	originDir := filepath.Join(base, "origin")
	localDir := filepath.Join(base, "local")

	origin, err := NewGitRepo(originDir)
	if err != nil {
		t.Fatalf("failed to create origin repo: %v", err)
	}
	if err := origin.CreateChangeAndCommit("readme.md", "init"); err != nil {
		t.Fatalf("failed to create initial commit: %v", err)
	}

	local, err := CloneGitRepo(localDir, originDir)
	if err != nil {
		t.Fatalf("failed to clone origin: %v", err)
	}

	return &RemoteScene{Origin: origin, Local: local}
}
