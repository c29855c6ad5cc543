// Package report renders the post-install verification report.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/defactra/fontprep/pkg/provision"
	"github.com/defactra/fontprep/pkg/tui"
)

const ruleWidth = 60

// Render formats the outcome of a provisioning run, including the
// filtered font listing, probe results, and next-step instructions.
func Render(result *provision.Result, nextSteps []string) string {
	var s strings.Builder

	rule := strings.Repeat("─", ruleWidth)

	s.WriteString(rule + "\n")
	title := "Font Provisioning Report"
	if result.DryRun {
		title += " (dry run)"
	}
	s.WriteString(tui.TitleStyle.Render(title) + "\n")
	s.WriteString(tui.SubtitleStyle.Render(fmt.Sprintf("run %s via %s", result.RunID, result.Manager)) + "\n")
	s.WriteString(rule + "\n\n")

	// Step outcomes
	for _, step := range result.Steps {
		switch {
		case step.Skipped:
			s.WriteString(fmt.Sprintf("⏭️  %s (skipped)\n", step.Name))
			if result.DryRun && step.Command != "" {
				s.WriteString("    " + tui.CommandStyle.Render(" "+step.Command+" ") + "\n")
			}
		case step.Err != nil:
			s.WriteString(fmt.Sprintf("❌ %s: %v\n", step.Name, step.Err))
		default:
			s.WriteString(fmt.Sprintf("✅ %s (%s)\n", step.Name, step.Duration.Round(10*time.Millisecond)))
		}
	}
	s.WriteString("\n")

	// Filtered font listing
	if len(result.Listing) > 0 {
		s.WriteString(tui.InfoStyle.Render("Installed fonts (filtered):") + "\n")
		for _, line := range result.Listing {
			s.WriteString("  " + line + "\n")
		}
		s.WriteString("\n")
	}

	// Language coverage via fc-match
	if len(result.Matches) > 0 {
		s.WriteString(tui.InfoStyle.Render("Language coverage:") + "\n")
		for _, lang := range []string{"Malayalam", "Devanagari"} {
			if family, ok := result.Matches[lang]; ok {
				s.WriteString(fmt.Sprintf("  %s: %s\n", lang, family))
			}
		}
		s.WriteString("\n")
	}

	// On-disk probes
	if len(result.Probes) > 0 {
		s.WriteString(tui.InfoStyle.Render("Font files:") + "\n")
		for _, probe := range result.Probes {
			if probe.Found {
				s.WriteString(fmt.Sprintf("  ✅ %s\n", probe.Path))
			} else {
				s.WriteString(fmt.Sprintf("  ⚠️  %s not found\n", probe.File))
			}
		}
		s.WriteString("\n")
	}

	// Overall status
	if result.Success() {
		s.WriteString(tui.SuccessStyle.Render("✅ Fonts installed successfully") + "\n")
	} else {
		s.WriteString(tui.ErrorStyle.Render(fmt.Sprintf("❌ %d steps failed", len(result.Failures()))) + "\n")
	}

	// Next steps
	if result.Success() && !result.DryRun && len(nextSteps) > 0 {
		s.WriteString("\n" + tui.InfoStyle.Render("Next steps:") + "\n")
		for i, step := range nextSteps {
			s.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}

	return s.String()
}

// PlainProgress returns a progress callback that prints events as plain
// lines, for --plain mode and non-TTY use.
func PlainProgress() provision.ProgressCallback {
	return func(e provision.ProgressEvent) {
		if e.IsError {
			fmt.Println(tui.ErrorStyle.Render("✗ " + e.Message))
			return
		}
		if e.Command != "" {
			fmt.Printf("• %s\n    $ %s\n", e.Message, e.Command)
			return
		}
		fmt.Println("• " + e.Message)
	}
}
