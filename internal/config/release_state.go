// Package config handles the persisted release state for cutover. Exactly
// one release is live per working copy; its record is fully overwritten on
// every save so a load always observes the last completed run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	cutovererrors "cutover.dev/cutover/internal/errors"
)

// StateFileName is the fixed name of the release record in the repo root.
const StateFileName = "release.json"

// ReleaseState is the persisted record of an in-flight release.
type ReleaseState struct {
	// Version is the v-prefixed semantic version, immutable once set.
	Version string `json:"version"`
	// MainBranch is the production branch the release was cut from.
	MainBranch string `json:"main_branch"`
	// ReleaseBranch is derived as release/<version>.
	ReleaseBranch string `json:"release_branch"`
	// Branches is the ordered set of branches to process. Order matters:
	// the first conflicting branch stops the run.
	Branches []string `json:"branches"`
	// Merged, Conflicted and Unrefs accumulate across resumed runs.
	Merged     []string `json:"merged"`
	Conflicted []string `json:"conflicted"`
	Unrefs     []string `json:"unrefs"`
	// Unmerged is always recomputed as Branches minus (Merged u Conflicted).
	Unmerged []string `json:"unmerged"`
	// AllBranches is the raw branch selection offered when the release was cut.
	AllBranches []string `json:"all_branches,omitempty"`
}

// RecomputeUnmerged rederives the Unmerged field from Branches, Merged and
// Conflicted. Branches that only hit a missing remote ref stay unmerged so a
// resumed run retries them.
func (s *ReleaseState) RecomputeUnmerged() {
	s.Unmerged = Subtract(s.Branches, Union(s.Merged, s.Conflicted))
}

// Union combines two branch lists into one deduplicated list, preserving
// first-seen order.
func Union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	result := make([]string, 0, len(a)+len(b))
	for _, name := range a {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			result = append(result, name)
		}
	}
	for _, name := range b {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			result = append(result, name)
		}
	}
	return result
}

// Subtract returns the members of a not present in b, preserving order.
func Subtract(a, b []string) []string {
	exclude := make(map[string]struct{}, len(b))
	for _, name := range b {
		exclude[name] = struct{}{}
	}
	result := make([]string, 0, len(a))
	for _, name := range a {
		if _, ok := exclude[name]; !ok {
			result = append(result, name)
		}
	}
	return result
}

// LoadReleaseState reads the persisted release record from the repo root.
// A missing or empty file is normal and returns (nil, nil). Content that is
// present but unparseable returns a MalformedStateError, which is fatal.
func LoadReleaseState(repoRoot string) (*ReleaseState, error) {
	statePath := filepath.Join(repoRoot, StateFileName)
	data, err := os.ReadFile(statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read release state: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var state ReleaseState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, &cutovererrors.MalformedStateError{Path: statePath, Err: err}
	}
	return &state, nil
}

// SaveReleaseState writes the release record to the repo root, creating the
// directory if needed and fully overwriting any previous record.
func SaveReleaseState(repoRoot string, state *ReleaseState) error {
	if err := os.MkdirAll(repoRoot, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal release state: %w", err)
	}
	return os.WriteFile(filepath.Join(repoRoot, StateFileName), data, 0600)
}
