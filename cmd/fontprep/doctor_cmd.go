package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/defactra/fontprep/pkg/doctor"
	"github.com/defactra/fontprep/pkg/tui"
)

// runDoctor checks system tooling and prints the results.
func runDoctor(_ *cobra.Command, _ []string) error {
	checker := doctor.NewChecker()
	groups := checker.CheckAllAsync()

	for _, group := range groups {
		fmt.Println(tui.TitleStyle.Render(group.Name))
		for _, check := range group.Checks {
			var line string
			switch check.Status {
			case doctor.StatusOK:
				line = tui.SuccessStyle.Render("✓") + fmt.Sprintf(" %-10s %s", check.Name, check.Message)
			case doctor.StatusWarning:
				line = tui.WarningStyle.Render("!") + fmt.Sprintf(" %-10s %s", check.Name, check.Message)
			default:
				line = tui.ErrorStyle.Render("✗") + fmt.Sprintf(" %-10s %s", check.Name, check.Message)
			}
			fmt.Println("  " + line)

			if check.Status == doctor.StatusMissing && check.FixCommand != nil {
				fmt.Printf("      fix: %s\n", check.FixCommand.Command)
			}
		}
		fmt.Println()
	}

	summary := checker.GetSummary(groups)
	fmt.Printf("%d checks: %d ok, %d missing, %d warnings, %d errors\n",
		summary.Total, summary.OK, summary.Missing, summary.Warnings, summary.Errors)

	if checker.HasIssues(groups) {
		return fmt.Errorf("doctor found %d issues", summary.Missing+summary.Errors)
	}
	return nil
}
