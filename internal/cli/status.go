package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"cutover.dev/cutover/internal/config"
	"cutover.dev/cutover/internal/git"
	"cutover.dev/cutover/internal/tui"
)

// newStatusCmd creates the status command, which prints the persisted
// release record without touching the worktree.
func newStatusCmd(debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the release in progress, if any",
		RunE: func(_ *cobra.Command, _ []string) error {
			splog := newSplog(*debug)
			defer func() { _ = splog.Close() }()
			repoRoot, err := git.RepoRoot()
			if err != nil {
				splog.Error("%v", err)
				return err
			}

			state, err := config.LoadReleaseState(repoRoot)
			if err != nil {
				splog.Error("%v", err)
				return err
			}
			if state == nil {
				splog.Info("No release in progress.")
				return nil
			}

			splog.Info("Release %s from %s on %s", state.Version, state.MainBranch, tui.ColorBranch(state.ReleaseBranch))
			printBranchLine(splog, "merged", state.Merged, tui.ColorMerged)
			printBranchLine(splog, "conflicted", state.Conflicted, tui.ColorConflicted)
			printBranchLine(splog, "missing on origin", state.Unrefs, tui.ColorUnref)
			printBranchLine(splog, "unmerged", state.Unmerged, tui.ColorBranch)
			return nil
		},
	}
}

func printBranchLine(splog *tui.Splog, label string, branches []string, color func(string) string) {
	if len(branches) == 0 {
		return
	}
	splog.Info("  %s: %s", label, color(strings.Join(branches, ", ")))
}
