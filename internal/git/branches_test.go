package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	cutovererrors "cutover.dev/cutover/internal/errors"
	"cutover.dev/cutover/internal/git"
	"cutover.dev/cutover/testhelpers"
)

func TestParseBranchList(t *testing.T) {
	t.Run("strips markers and prefixes, dedupes and sorts", func(t *testing.T) {
		lines := []string{
			"* main",
			"  feature/login",
			"  remotes/origin/HEAD -> origin/main",
			"  remotes/origin/main",
			"  remotes/origin/feature/login",
			"  remotes/origin/feature/api",
		}

		got := git.ParseBranchList(lines)
		require.Equal(t, []string{"feature/api", "feature/login", "main"}, got)
	})

	t.Run("never contains the symbolic HEAD pointer", func(t *testing.T) {
		lines := []string{"  remotes/origin/HEAD -> origin/main"}
		require.Empty(t, git.ParseBranchList(lines))
	})

	t.Run("ignores blank lines", func(t *testing.T) {
		require.Empty(t, git.ParseBranchList([]string{"", "   "}))
	})
}

func TestParseCurrentBranch(t *testing.T) {
	lines := []string{"  feature/login", "* main", "  feature/api"}
	require.Equal(t, "main", git.ParseCurrentBranch(lines))

	require.Equal(t, "", git.ParseCurrentBranch([]string{"  feature/login"}))
}

func TestParseGoneBranches(t *testing.T) {
	lines := []string{
		"  feature/done   1a2b3c4 [origin/feature/done: gone] finish it",
		"* main           5d6e7f8 [origin/main] latest",
		"  feature/active 9a8b7c6 [origin/feature/active: ahead 2] wip",
	}
	require.Equal(t, []string{"feature/done"}, git.ParseGoneBranches(lines))
}

func TestListBranches(t *testing.T) {
	scene := testhelpers.NewScene(t)
	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature/b"))
	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature/a"))

	branches := git.NewBranches(git.NewCommandRunner(scene.Dir))
	got, err := branches.ListBranches(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"feature/a", "feature/b", "main"}, got)
}

func TestCurrentBranch(t *testing.T) {
	scene := testhelpers.NewScene(t)
	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature/current"))

	branches := git.NewBranches(git.NewCommandRunner(scene.Dir))
	got, err := branches.CurrentBranch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "feature/current", got)
}

func TestFetchBranchMissingRemoteRef(t *testing.T) {
	scene := testhelpers.NewRemoteScene(t)
	branches := git.NewBranches(git.NewCommandRunner(scene.Local.Dir))

	err := branches.FetchBranch(context.Background(), "feature/nope")
	require.Error(t, err)
	require.Equal(t, cutovererrors.KindMissingRemoteRef, cutovererrors.KindOf(err))
}

func TestMergeConflictClassification(t *testing.T) {
	scene := testhelpers.NewScene(t)

	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature/ours"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("app.txt", "ours"))
	require.NoError(t, scene.Repo.CheckoutBranch("main"))
	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature/theirs"))
	require.NoError(t, scene.Repo.CreateChangeAndCommit("app.txt", "theirs"))
	require.NoError(t, scene.Repo.CheckoutBranch("feature/ours"))

	branches := git.NewBranches(git.NewCommandRunner(scene.Dir))
	err := branches.Merge(context.Background(), "feature/theirs")
	require.Error(t, err)
	require.Equal(t, cutovererrors.KindConflict, cutovererrors.KindOf(err))

	var cmdErr *cutovererrors.GitCommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Contains(t, cmdErr.Output(), "CONFLICT")
}

func TestPruneGone(t *testing.T) {
	scene := testhelpers.NewRemoteScene(t)

	// Branch exists upstream, gets tracked locally, then disappears upstream.
	require.NoError(t, scene.Origin.CreateAndCheckoutBranch("feature/short-lived"))
	require.NoError(t, scene.Origin.CreateChangeAndCommit("f.txt", "x"))
	require.NoError(t, scene.Origin.CheckoutBranch("main"))

	require.NoError(t, scene.Local.RunGit("fetch", "origin"))
	require.NoError(t, scene.Local.RunGit("checkout", "feature/short-lived"))
	require.NoError(t, scene.Local.CheckoutBranch("main"))
	require.NoError(t, scene.Origin.RunGit("branch", "-D", "feature/short-lived"))

	branches := git.NewBranches(git.NewCommandRunner(scene.Local.Dir))
	deleted, err := branches.PruneGone(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"feature/short-lived"}, deleted)

	remaining, err := branches.ListBranches(context.Background())
	require.NoError(t, err)
	require.NotContains(t, remaining, "feature/short-lived")
}
