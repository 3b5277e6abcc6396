package release

import (
	"context"
	"strings"

	"cutover.dev/cutover/internal/config"
	cutovererrors "cutover.dev/cutover/internal/errors"
	"cutover.dev/cutover/internal/git"
	"cutover.dev/cutover/internal/tui"
)

// GitOps is the full set of git operations the session controller needs.
// git.Branches is the real implementation.
type GitOps interface {
	BranchOps
	FetchAll(ctx context.Context) error
	CreateBranch(ctx context.Context, name string) error
	ListBranches(ctx context.Context) ([]string, error)
	CurrentBranch(ctx context.Context) (string, error)
}

// Prompter collects the interactive inputs of a release session. The survey
// implementation lives in prompts.go; tests supply a scripted one.
type Prompter interface {
	// ConfirmResume asks whether to pick up the persisted release.
	ConfirmResume(version string) (bool, error)
	// InputVersion collects and validates a release version against the
	// existing branches, returning the normalized v-prefixed value.
	InputVersion(branches []string) (string, error)
	// SelectMainBranch picks the production branch to cut the release from.
	SelectMainBranch(candidates []string, defaultBranch string) (string, error)
	// SelectBranches picks the branches to merge into the release.
	SelectBranches(candidates []string) ([]string, error)
}

// Session drives one cutover invocation: resume or start a release, create
// the release branch, run the merge orchestrator and persist the outcome.
type Session struct {
	git      GitOps
	splog    *tui.Splog
	prompter Prompter
	repoRoot string

	// localBranchExists is swappable for tests; the default consults go-git.
	localBranchExists func(root, name string) (bool, error)
}

// NewSession creates a session rooted at repoRoot.
func NewSession(ops GitOps, splog *tui.Splog, prompter Prompter, repoRoot string) *Session {
	return &Session{
		git:               ops,
		splog:             splog,
		prompter:          prompter,
		repoRoot:          repoRoot,
		localBranchExists: git.LocalBranchExists,
	}
}

// Run executes the resume-or-start state machine. The updated record is
// persisted unconditionally before any terminal error propagates, so a
// conflicted or partial run resumes from where it stopped.
func (s *Session) Run(ctx context.Context) error {
	state, err := config.LoadReleaseState(s.repoRoot)
	if err != nil {
		s.splog.Error("Could not read release state: %v", err)
		return err
	}

	var toMerge []string
	if state != nil && state.Version != "" {
		resume, err := s.prompter.ConfirmResume(state.Version)
		if err != nil {
			return err
		}
		if resume {
			toMerge, err = s.resume(ctx, state)
			if err != nil {
				return err
			}
		} else {
			state = nil
		}
	}

	if state == nil {
		state, err = s.start(ctx)
		if err != nil {
			return err
		}
		if err := s.validate(state); err != nil {
			return err
		}
		if err := s.createReleaseBranch(ctx, state); err != nil {
			return err
		}
		toMerge = state.Branches
	} else if err := s.validate(state); err != nil {
		return err
	}

	report := MergeAll(ctx, s.git, s.splog, toMerge, state.ReleaseBranch)

	state.Merged = config.Union(state.Merged, report.Merged)
	state.Conflicted = config.Union(state.Conflicted, report.Conflicted)
	state.Unrefs = report.Unrefs
	state.RecomputeUnmerged()

	if err := config.SaveReleaseState(s.repoRoot, state); err != nil {
		s.splog.Error("Could not persist release state: %v", err)
		return err
	}

	s.printReport(state, report)
	return report.Err
}

// resume re-derives the release branch from the stored version and checks it
// out, creating it from the main branch when it does not exist yet. The
// branch set to retry is the prior run's unmerged list when non-empty.
func (s *Session) resume(ctx context.Context, state *config.ReleaseState) ([]string, error) {
	state.ReleaseBranch = BranchName(state.Version)
	s.splog.Info("Resuming release %s", state.Version)

	exists, err := s.releaseBranchExists(ctx, state.ReleaseBranch)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := s.git.Checkout(ctx, state.ReleaseBranch); err != nil {
			return nil, err
		}
	} else if err := s.createReleaseBranch(ctx, state); err != nil {
		return nil, err
	}

	if len(state.Unmerged) > 0 {
		return state.Unmerged, nil
	}
	return state.Branches, nil
}

// releaseBranchExists checks the local repository first and falls back to
// the full branch list, which collapses remote tracking names.
func (s *Session) releaseBranchExists(ctx context.Context, name string) (bool, error) {
	if exists, err := s.localBranchExists(s.repoRoot, name); err == nil && exists {
		return true, nil
	}
	branches, err := s.git.ListBranches(ctx)
	if err != nil {
		return false, err
	}
	for _, branch := range branches {
		if branch == name {
			return true, nil
		}
	}
	return false, nil
}

// start runs the new-release path: fetch, enumerate candidates, and collect
// version, production branch and branch selection from the user.
func (s *Session) start(ctx context.Context) (*config.ReleaseState, error) {
	s.splog.Info("Fetching branches from origin...")
	if err := s.git.FetchAll(ctx); err != nil {
		s.splog.Error("Fetch failed: %v", err)
		return nil, err
	}

	all, err := s.git.ListBranches(ctx)
	if err != nil {
		return nil, err
	}
	candidates := developmentBranches(all)

	version, err := s.prompter.InputVersion(all)
	if err != nil {
		return nil, err
	}

	mainBranch, err := s.prompter.SelectMainBranch(candidates, DefaultMainBranch(candidates))
	if err != nil {
		return nil, err
	}

	selectable := config.Subtract(candidates, []string{mainBranch})
	selected, err := s.prompter.SelectBranches(selectable)
	if err != nil {
		return nil, err
	}

	return &config.ReleaseState{
		Version:       version,
		MainBranch:    mainBranch,
		ReleaseBranch: BranchName(version),
		Branches:      selected,
		AllBranches:   selectable,
	}, nil
}

// validate checks that the session has everything a merge run needs,
// failing with a distinct error for whichever field is absent.
func (s *Session) validate(state *config.ReleaseState) error {
	if state.Version == "" {
		s.splog.Error("No release version is set")
		return cutovererrors.ErrMissingVersion
	}
	if state.MainBranch == "" {
		s.splog.Error("No main branch is set")
		return cutovererrors.ErrMissingMainBranch
	}
	if len(state.Branches) == 0 {
		s.splog.Error("No branches were selected to merge")
		return cutovererrors.ErrMissingBranches
	}
	return nil
}

// createReleaseBranch cuts the release branch from the main branch, checking
// the main branch out first when it is not already current.
func (s *Session) createReleaseBranch(ctx context.Context, state *config.ReleaseState) error {
	if state.MainBranch == "" {
		s.splog.Error("Cannot create %s without a main branch", state.ReleaseBranch)
		return cutovererrors.ErrMainBranchRequired
	}
	current, err := s.git.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current != state.MainBranch {
		if err := s.git.Checkout(ctx, state.MainBranch); err != nil {
			return err
		}
	}
	s.splog.Info("Creating %s from %s", tui.ColorBranch(state.ReleaseBranch), state.MainBranch)
	return s.git.CreateBranch(ctx, state.ReleaseBranch)
}

// printReport distinguishes the three run outcomes: conflict, clean success
// and partial success with warnings.
func (s *Session) printReport(state *config.ReleaseState, report Report) {
	s.splog.Newline()
	for _, branch := range state.Merged {
		s.splog.Info("  %s %s", tui.ColorMerged("merged"), branch)
	}
	for _, branch := range state.Conflicted {
		s.splog.Info("  %s %s", tui.ColorConflicted("conflict"), branch)
	}

	switch {
	case report.HasConflict:
		s.splog.Error("Merge stopped on a conflict.")
		s.splog.Tip("Resolve the conflict, commit the result, and run cutover again to resume.")
	case len(state.Unmerged) == 0 && len(state.Conflicted) == 0:
		s.splog.Info("Release branch %s is ready.", tui.ColorBranch(state.ReleaseBranch))
	default:
		if len(state.Unrefs) > 0 {
			s.splog.Warn("Not found on origin: %s", strings.Join(state.Unrefs, ", "))
		}
		if len(state.Unmerged) > 0 {
			s.splog.Warn("Not merged yet: %s", strings.Join(state.Unmerged, ", "))
		}
		s.splog.Tip("You can still deploy %s, but the branches above are not in it.", state.ReleaseBranch)
	}
}

// developmentBranches filters out the release and hotfix namespaces, leaving
// the branches eligible for selection.
func developmentBranches(all []string) []string {
	var candidates []string
	for _, branch := range all {
		if strings.HasPrefix(branch, "release/") || strings.HasPrefix(branch, "hotfix/") {
			continue
		}
		candidates = append(candidates, branch)
	}
	return candidates
}

// DefaultMainBranch picks the conventional production branch: master when
// present, then main, otherwise none.
func DefaultMainBranch(candidates []string) string {
	for _, preferred := range []string{"master", "main"} {
		for _, branch := range candidates {
			if branch == preferred {
				return preferred
			}
		}
	}
	return ""
}
