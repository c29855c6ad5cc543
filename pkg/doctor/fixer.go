package doctor

import (
	"context"
	"fmt"

	"github.com/defactra/fontprep/pkg/sysexec"
)

// Platform constants.
const (
	PlatformDarwin = "darwin"
	PlatformLinux  = "linux"
)

// fontconfigFix is shared by all fc-* tools; they ship in one package.
var fontconfigFix = map[string]*FixCommand{
	PlatformDarwin: {
		Description: "Install fontconfig via Homebrew",
		Command:     "brew install fontconfig",
		Sudo:        false,
		Platform:    PlatformDarwin,
	},
	PlatformLinux: {
		Description: "Install fontconfig via the system package manager",
		Command:     "sudo apt-get install -y fontconfig || sudo dnf install -y fontconfig || sudo pacman -S --noconfirm fontconfig",
		Sudo:        true,
		Platform:    PlatformLinux,
	},
}

// fixCommands defines platform-specific fix commands for each tool.
var fixCommands = map[string]map[string]*FixCommand{
	IDFcCache: fontconfigFix,
	IDFcList:  fontconfigFix,
	IDFcMatch: fontconfigFix,
}

// GetFixCommand returns the fix command for a tool on the given platform.
func GetFixCommand(toolID, platform string) *FixCommand {
	toolFixes, ok := fixCommands[toolID]
	if !ok {
		return nil
	}

	fix, ok := toolFixes[platform]
	if !ok {
		return nil
	}

	return fix
}

// Fixer provides functionality to run fix commands.
type Fixer struct {
	executor sysexec.CommandExecutor
}

// NewFixer creates a new Fixer.
func NewFixer() *Fixer {
	return &Fixer{
		executor: &sysexec.RealExecutor{},
	}
}

// NewFixerWithExecutor creates a new Fixer with a custom executor.
func NewFixerWithExecutor(exec sysexec.CommandExecutor) *Fixer {
	return &Fixer{
		executor: exec,
	}
}

// RunFix executes a fix command.
func (f *Fixer) RunFix(ctx context.Context, fix *FixCommand) error {
	if fix == nil {
		return fmt.Errorf("no fix command available")
	}

	// Run the command through shell using the executor
	output, err := f.executor.CombinedOutput(ctx, "sh", "-c", fix.Command)
	if err != nil {
		return fmt.Errorf("fix failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}
