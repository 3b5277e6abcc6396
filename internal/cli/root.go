// Package cli wires the cobra commands for the cutover binary.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cutover.dev/cutover/internal/git"
	"cutover.dev/cutover/internal/release"
	"cutover.dev/cutover/internal/tui"
)

// NewRootCmd creates the root cobra command. Running cutover with no
// subcommand starts (or resumes) a release session.
func NewRootCmd(version, commit, date string) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "cutover",
		Short: "Cutover cuts a release branch and merges your selected branches into it",
		Long: `Cutover automates release branch preparation: it creates release/<version>
from your production branch, merges the branches you select into it, and keeps
track of what merged, what conflicted and what was missing on origin.

Progress is saved after every run, so when a merge conflict stops the run you
resolve it, commit, and run cutover again to pick up where it left off.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			splog := newSplog(debug)
			defer func() { _ = splog.Close() }()
			branches, repoRoot, err := openRepo(splog, debug)
			if err != nil {
				splog.Error("%v", err)
				return err
			}
			session := release.NewSession(branches, splog, release.NewSurveyPrompter(), repoRoot)
			return session.Run(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "echo git commands and output while they run")

	rootCmd.AddCommand(newStatusCmd(&debug))
	rootCmd.AddCommand(newCleanCmd(&debug))

	return rootCmd
}

// newSplog builds the logger every command reports through: console output
// plus the rotating log file, with debug lines enabled by the --debug flag.
// Falls back to console-only when the log directory cannot be created.
func newSplog(debug bool) *tui.Splog {
	splog, err := tui.NewSplogWithConfig(tui.GetLogFilePath())
	if err != nil {
		splog = tui.NewSplog()
	}
	if debug {
		splog.SetDebug(true)
	}
	return splog
}

// openRepo locates the enclosing repository and builds the branch accessor
// every command talks to git through. Commands are traced to the logger at
// debug level.
func openRepo(splog *tui.Splog, debug bool) (*git.Branches, string, error) {
	repoRoot, err := git.RepoRoot()
	if err != nil {
		return nil, "", err
	}
	runner := git.NewCommandRunner(repoRoot)
	runner.SetLogger(splog)
	if debug {
		runner.SetDebug(true)
	}
	return git.NewBranches(runner), repoRoot, nil
}
