package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"cutover.dev/cutover/internal/tui"
)

// newCleanCmd creates the clean command, which deletes local branches whose
// upstream is gone. Typically run after a release lands and its branches are
// deleted on origin.
func newCleanCmd(debug *bool) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete local branches whose upstream is gone",
		RunE: func(cmd *cobra.Command, _ []string) error {
			splog := newSplog(*debug)
			defer func() { _ = splog.Close() }()
			branches, _, err := openRepo(splog, *debug)
			if err != nil {
				splog.Error("%v", err)
				return err
			}

			if !yes {
				var confirmed bool
				prompt := &survey.Confirm{
					Message: "Fetch with prune and delete every local branch whose upstream is gone?",
					Default: false,
				}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return fmt.Errorf("canceled")
				}
				if !confirmed {
					return nil
				}
			}

			deleted, err := branches.PruneGone(cmd.Context())
			if err != nil {
				splog.Error("%v", err)
				return err
			}
			if len(deleted) == 0 {
				splog.Info("Nothing to clean.")
				return nil
			}
			for _, name := range deleted {
				splog.Info("Deleted %s", tui.ColorDim(name))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
