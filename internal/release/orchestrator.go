package release

import (
	"context"

	"cutover.dev/cutover/internal/config"
	cutovererrors "cutover.dev/cutover/internal/errors"
	"cutover.dev/cutover/internal/tui"
)

// BranchOps is the subset of git operations the merge loop needs.
// This allows the orchestrator to be used with both real git and mock implementations.
type BranchOps interface {
	FetchBranch(ctx context.Context, name string) error
	Checkout(ctx context.Context, name string) error
	Pull(ctx context.Context, name string) error
	Merge(ctx context.Context, name string) error
}

// Report is the outcome of one orchestrator run over a branch list.
type Report struct {
	// Err is the last recorded failure, terminal when the run stopped early.
	Err        error
	Merged     []string
	Conflicted []string
	Unrefs     []string
	// Unmerged is the input list minus Merged and Conflicted. Branches that
	// only hit a missing remote ref stay here so a resume retries them.
	Unmerged []string
	// HasConflict is true only when Err is classified as a merge conflict.
	HasConflict bool
}

// MergeAll merges each branch into target, strictly in order. A conflict
// stops the run immediately: the conflict has to be resolved by hand before
// resuming. A missing remote ref is a warning and the run continues. Any
// other failure stops the run because the cause is unknown and continuing
// risks further divergence of the working copy.
func MergeAll(ctx context.Context, ops BranchOps, splog *tui.Splog, branches []string, target string) Report {
	var report Report

loop:
	for _, branch := range branches {
		err := mergeOne(ctx, ops, branch, target)
		if err == nil {
			report.Merged = append(report.Merged, branch)
			splog.Info("Merged %s into %s", tui.ColorMerged(branch), target)
			continue
		}

		switch cutovererrors.KindOf(err) {
		case cutovererrors.KindMissingRemoteRef:
			report.Unrefs = append(report.Unrefs, branch)
			report.Err = err
			splog.Warn("Branch %s does not exist on origin, skipping", tui.ColorUnref(branch))
		case cutovererrors.KindConflict:
			report.Conflicted = append(report.Conflicted, branch)
			report.Err = err
			splog.Error("Merge conflict on %s", tui.ColorConflicted(branch))
			break loop
		default:
			report.Err = err
			splog.Error("Stopping: %s could not be merged: %v", branch, err)
			break loop
		}
	}

	report.Unmerged = config.Subtract(branches, config.Union(report.Merged, report.Conflicted))
	report.HasConflict = report.Err != nil && cutovererrors.KindOf(report.Err) == cutovererrors.KindConflict
	return report
}

// mergeOne brings one branch up to date and merges it into target. The
// branch is checked out and pulled first so the merge sees its current
// remote state.
func mergeOne(ctx context.Context, ops BranchOps, branch, target string) error {
	if err := ops.FetchBranch(ctx, branch); err != nil {
		return err
	}
	if err := ops.Checkout(ctx, branch); err != nil {
		return err
	}
	if err := ops.Pull(ctx, branch); err != nil {
		return err
	}
	if err := ops.Checkout(ctx, target); err != nil {
		return err
	}
	return ops.Merge(ctx, branch)
}
