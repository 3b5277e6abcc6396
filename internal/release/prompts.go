package release

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// SurveyPrompter collects release inputs interactively via survey.
type SurveyPrompter struct{}

// NewSurveyPrompter creates the interactive prompter.
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{}
}

func (p *SurveyPrompter) ConfirmResume(version string) (bool, error) {
	var resume bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("A release %s is in progress. Resume it?", version),
		Default: true,
	}
	if err := survey.AskOne(prompt, &resume); err != nil {
		return false, fmt.Errorf("canceled")
	}
	return resume, nil
}

func (p *SurveyPrompter) InputVersion(branches []string) (string, error) {
	var raw string
	prompt := &survey.Input{
		Message: "Release version (e.g. 1.4.19)",
	}
	validator := func(ans interface{}) error {
		value, _ := ans.(string)
		_, err := ValidateVersion(value, branches)
		return err
	}
	if err := survey.AskOne(prompt, &raw, survey.WithValidator(validator)); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return ValidateVersion(raw, branches)
}

func (p *SurveyPrompter) SelectMainBranch(candidates []string, defaultBranch string) (string, error) {
	var mainBranch string
	prompt := &survey.Select{
		Message: "Production branch to cut the release from",
		Options: candidates,
	}
	if defaultBranch != "" {
		prompt.Default = defaultBranch
	}
	if err := survey.AskOne(prompt, &mainBranch); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return mainBranch, nil
}

func (p *SurveyPrompter) SelectBranches(candidates []string) ([]string, error) {
	var selected []string
	prompt := &survey.MultiSelect{
		Message: "Branches to merge into the release",
		Options: candidates,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, fmt.Errorf("canceled")
	}
	return selected, nil
}
