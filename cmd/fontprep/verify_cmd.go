package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/defactra/fontprep/pkg/fontcache"
	"github.com/defactra/fontprep/pkg/fontprobe"
	"github.com/defactra/fontprep/pkg/sysexec"
	"github.com/defactra/fontprep/pkg/tui"
)

// runVerify shows the filtered font listing, language coverage, and
// on-disk probe results without installing anything.
func runVerify(cmd *cobra.Command, _ []string) error {
	cfg, catalog, err := loadEnvironment()
	if err != nil {
		return err
	}

	executor := &sysexec.RealExecutor{}
	cache := fontcache.NewWithExecutor(executor)
	ctx := cmd.Context()

	listing, err := cache.List(ctx, cfg.Verify.Filters, cfg.Verify.Limit)
	if err != nil {
		return fmt.Errorf("failed to list fonts: %w", err)
	}

	fmt.Println(tui.InfoStyle.Render("Installed fonts (filtered):"))
	if len(listing) == 0 {
		fmt.Println("  (none matched)")
	}
	for _, line := range listing {
		fmt.Println("  " + line)
	}
	fmt.Println()

	fmt.Println(tui.InfoStyle.Render("Language coverage:"))
	for _, probe := range []struct{ name, pattern string }{
		{"Malayalam", ":lang=ml"},
		{"Devanagari", ":lang=hi"},
	} {
		family, err := cache.Match(ctx, probe.pattern)
		if err != nil {
			fmt.Printf("  %s: %v\n", probe.name, err)
			continue
		}
		fmt.Printf("  %s: %s\n", probe.name, family)
	}
	fmt.Println()

	prober := fontprobe.NewWithExecutor(executor, cfg.ExtraFontDirs...)
	results := prober.ProbeSets(catalog.Defaults())

	fmt.Println(tui.InfoStyle.Render("Font files:"))
	for _, result := range results {
		if result.Found {
			fmt.Printf("  ✅ %s\n", result.Path)
		} else {
			fmt.Printf("  ⚠️  %s not found\n", result.File)
		}
	}

	if !fontprobe.Satisfied(results) {
		return fmt.Errorf("expected font files missing, run 'fontprep install'")
	}
	return nil
}
