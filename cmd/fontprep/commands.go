package main

import "github.com/spf13/cobra"

// newSetsCmd creates the sets subcommand
func newSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List available font sets",
		Long:  `List all font sets that can be installed, grouped by script.`,
		RunE:  runSets,
	}
}

// newDoctorCmd creates the doctor subcommand
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check required system tooling",
		Long: `Check that a supported package manager and the fontconfig tools
(fc-cache, fc-list, fc-match) are installed and working.`,
		RunE: runDoctor,
	}
}

// newVerifyCmd creates the verify subcommand
func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify installed fonts",
		Long: `Show a filtered listing of installed fonts, the fonts serving
Malayalam and Devanagari text, and whether expected font files exist on disk.`,
		RunE: runVerify,
	}
}

// newCacheCmd creates the cache subcommand
func newCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cache",
		Short: "Rebuild the font cache",
		Long:  `Force a full font cache rebuild (fc-cache -f -v) without installing anything.`,
		RunE:  runCache,
	}
}
