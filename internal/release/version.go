// Package release implements the release session: version validation, the
// branch merge orchestrator and the resume-or-start controller.
package release

import (
	"fmt"
	"regexp"

	cutovererrors "cutover.dev/cutover/internal/errors"
)

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(-.*)?$`)

// ValidateVersion checks a raw release version against the expected pattern
// and the existing branch list, and returns the normalized v-prefixed value.
// The prefix is added only on acceptance, so pre-prefixed input is rejected.
func ValidateVersion(raw string, branches []string) (string, error) {
	if !versionPattern.MatchString(raw) {
		return "", fmt.Errorf("version %q must look like 1.4.19 or 1.4.19-rc.1", raw)
	}
	version := "v" + raw
	branchName := BranchName(version)
	for _, branch := range branches {
		if branch == branchName {
			return "", fmt.Errorf("%w: %s", cutovererrors.ErrReleaseExists, branchName)
		}
	}
	return version, nil
}

// BranchName derives the release branch name for a normalized version.
func BranchName(version string) string {
	return "release/" + version
}
