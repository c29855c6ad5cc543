package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/defactra/fontprep/pkg/fontset"
)

// ConfirmInstall shows a review of what will be installed and asks for
// confirmation.
func ConfirmInstall(sets []fontset.FontSet, managerName string, commands []string) (bool, error) {
	fmt.Println()
	fmt.Println(TitleStyle.Render("Review Font Installation"))
	fmt.Println()

	names := make([]string, len(sets))
	for i, set := range sets {
		names[i] = set.Name
	}
	fmt.Printf("  Manager:   %s\n", managerName)
	fmt.Printf("  Font sets: %s\n", strings.Join(names, ", "))
	fmt.Println()

	fmt.Println(SubtitleStyle.Render("Commands to run:"))
	for _, command := range commands {
		fmt.Printf("  %s\n", CommandStyle.Render(" "+command+" "))
	}
	fmt.Println()

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Install these font packages?").
				Description("This will modify system packages and rebuild the font cache").
				Affirmative("Yes, install").
				Negative("No, cancel").
				Value(&confirmed),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}

	return confirmed, nil
}
