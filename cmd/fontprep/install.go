package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/defactra/fontprep/pkg/fontcache"
	"github.com/defactra/fontprep/pkg/fontprobe"
	"github.com/defactra/fontprep/pkg/fontset"
	"github.com/defactra/fontprep/pkg/globalconfig"
	"github.com/defactra/fontprep/pkg/pkgmgr"
	"github.com/defactra/fontprep/pkg/provision"
	"github.com/defactra/fontprep/pkg/report"
	"github.com/defactra/fontprep/pkg/sysexec"
	"github.com/defactra/fontprep/pkg/tui"
)

// newInstallCmd creates the install subcommand
func newInstallCmd() *cobra.Command {
	var setNames []string
	var skipUpdate, dryRun, yes, plain, strict bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install font sets and rebuild the font cache",
		Long: `Update the package index, install the selected font sets, rebuild the
font cache, and verify the result.

By default all built-in sets are installed (noto-core, malayalam,
devanagari, fallback) and a failed step does not stop the run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd, setNames, skipUpdate, dryRun, yes, plain, strict)
		},
	}

	cmd.Flags().StringSliceVar(&setNames, "sets", nil, "Font sets to install (default: all default-enabled sets)")
	cmd.Flags().BoolVar(&skipUpdate, "skip-update", false, "Skip the package index refresh")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the commands that would run without executing them")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&plain, "plain", false, "Line output instead of the progress view")
	cmd.Flags().BoolVar(&strict, "strict", false, "Stop at the first failed step")

	return cmd
}

// runInstall executes the full provisioning sequence.
func runInstall(cmd *cobra.Command, setNames []string, skipUpdate, dryRun, yes, plain, strict bool) error {
	cfg, catalog, err := loadEnvironment()
	if err != nil {
		return err
	}

	sets, err := catalog.Select(setNames)
	if err != nil {
		return err
	}

	executor := &sysexec.RealExecutor{}
	manager, err := pkgmgr.Detect(executor, cfg.ManagerOverride())
	if err != nil {
		return fmt.Errorf("could not find a package manager: %w", err)
	}
	cache := fontcache.NewWithExecutor(executor).WithSudo(pkgmgr.NeedsSudo(executor))

	opts := &provision.Options{
		Sets:          sets,
		ExtraPackages: cfg.ExtraPackages,
		SkipUpdate:    skipUpdate,
		DryRun:        dryRun,
		Strict:        strict,
		VerifyFilters: cfg.Verify.Filters,
		VerifyLimit:   cfg.Verify.Limit,
	}

	// Confirm before mutating the system
	if !yes && !dryRun {
		commands := installCommands(manager, cache, opts)
		confirmed, err := tui.ConfirmInstall(sets, manager.Name(), commands)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Installation cancelled.")
			return nil
		}
	}

	provisioner := provision.New(
		manager,
		cache,
		fontprobe.NewWithExecutor(executor, cfg.ExtraFontDirs...),
		logger,
	)

	var result *provision.Result
	if plain || dryRun {
		result, err = provisioner.Run(cmd.Context(), opts, report.PlainProgress())
	} else {
		result, err = tui.RunInstall(cmd.Context(), provisioner, opts)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(report.Render(result, cfg.NextSteps))

	if !result.Success() {
		return fmt.Errorf("provisioning completed with %d failed steps", len(result.Failures()))
	}
	return nil
}

// installCommands renders the command lines an install would run, for the
// confirmation prompt.
func installCommands(manager pkgmgr.Manager, cache *fontcache.Cache, opts *provision.Options) []string {
	var commands []string
	if !opts.SkipUpdate {
		commands = append(commands, pkgmgr.CommandLine(manager.UpdateCommand()))
	}
	for _, set := range opts.Sets {
		pkgs := append([]string{}, set.PackagesFor(manager.Name())...)
		pkgs = append(pkgs, opts.ExtraPackages[set.Name]...)
		if len(pkgs) > 0 {
			commands = append(commands, pkgmgr.CommandLine(manager.InstallCommand(pkgs)))
		}
	}
	commands = append(commands, pkgmgr.CommandLine(cache.RebuildCommand()))
	return commands
}

// loadEnvironment loads the global config and the font set catalog,
// printing any config issues as warnings.
func loadEnvironment() (*globalconfig.Config, *fontset.Catalog, error) {
	cfg, err := globalconfig.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	for _, issue := range cfg.Validate() {
		fmt.Printf("[WARNING] config: %s (%s)\n", issue.Message, issue.Field)
	}

	overlayPath, err := globalconfig.GetFontSetsPath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve font sets path: %w", err)
	}

	catalog, err := fontset.Load(overlayPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load font set catalog: %w", err)
	}

	return cfg, catalog, nil
}
