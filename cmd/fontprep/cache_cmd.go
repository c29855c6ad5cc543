package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/defactra/fontprep/pkg/fontcache"
	"github.com/defactra/fontprep/pkg/pkgmgr"
	"github.com/defactra/fontprep/pkg/sysexec"
	"github.com/defactra/fontprep/pkg/tui"
)

// runCache forces a font cache rebuild and prints a short tail of the
// fc-cache output so the user can see what was scanned.
func runCache(cmd *cobra.Command, _ []string) error {
	executor := &sysexec.RealExecutor{}
	cache := fontcache.NewWithExecutor(executor).WithSudo(pkgmgr.NeedsSudo(executor))

	fmt.Println(tui.InfoStyle.Render("Rebuilding font cache..."))
	output, err := cache.Rebuild(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to rebuild font cache: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	const tail = 5
	if len(lines) > tail {
		lines = lines[len(lines)-tail:]
	}
	for _, line := range lines {
		if line != "" {
			fmt.Println(tui.DimStyle.Render("  " + line))
		}
	}

	fmt.Println(tui.SuccessStyle.Render("✓ Font cache rebuilt"))
	return nil
}
