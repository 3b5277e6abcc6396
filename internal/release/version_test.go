package release_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	cutovererrors "cutover.dev/cutover/internal/errors"
	"cutover.dev/cutover/internal/release"
)

func TestValidateVersion(t *testing.T) {
	t.Run("normalizes by prefixing v", func(t *testing.T) {
		version, err := release.ValidateVersion("1.4.19", nil)
		require.NoError(t, err)
		require.Equal(t, "v1.4.19", version)
	})

	t.Run("accepts a prerelease suffix", func(t *testing.T) {
		version, err := release.ValidateVersion("1.4.19-rc.1", nil)
		require.NoError(t, err)
		require.Equal(t, "v1.4.19-rc.1", version)
	})

	t.Run("rejects incomplete versions", func(t *testing.T) {
		_, err := release.ValidateVersion("1.4", nil)
		require.Error(t, err)
	})

	t.Run("rejects pre-prefixed input", func(t *testing.T) {
		_, err := release.ValidateVersion("v1.4.19", nil)
		require.Error(t, err)
	})

	t.Run("rejects a version whose release branch already exists", func(t *testing.T) {
		branches := []string{"main", "release/v1.4.19"}
		_, err := release.ValidateVersion("1.4.19", branches)
		require.ErrorIs(t, err, cutovererrors.ErrReleaseExists)
	})
}

func TestBranchName(t *testing.T) {
	require.Equal(t, "release/v1.4.19", release.BranchName("v1.4.19"))
}

func TestDefaultMainBranch(t *testing.T) {
	require.Equal(t, "master", release.DefaultMainBranch([]string{"develop", "main", "master"}))
	require.Equal(t, "main", release.DefaultMainBranch([]string{"develop", "main"}))
	require.Equal(t, "", release.DefaultMainBranch([]string{"develop"}))
}
