// Package main provides the fontprep CLI tool for installing the system
// fonts required for multilingual document rendering.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set via -ldflags during build
var version = "dev"

var (
	verbose bool
	logger  = zap.NewNop()
)

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for fontprep
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fontprep",
		Short: "System Font Provisioning Tool",
		Long: `fontprep installs and verifies the system fonts needed for multilingual
document rendering (English, Malayalam, Hindi/Devanagari).

It drives the OS package manager to install font package sets, rebuilds
the font cache, and verifies the result:
  - Font set installation via apt-get, dnf, or pacman
  - Font cache rebuild via fc-cache
  - Verification via fc-list, fc-match, and on-disk probes`,
		Version: version,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			} else {
				config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInstallCmd(),
		newSetsCmd(),
		newDoctorCmd(),
		newVerifyCmd(),
		newCacheCmd(),
	)

	return rootCmd
}
