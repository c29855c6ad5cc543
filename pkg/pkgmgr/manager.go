// Package pkgmgr abstracts the system package manager used to install
// font packages. Supported backends: apt-get, dnf, pacman.
package pkgmgr

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/defactra/fontprep/pkg/sysexec"
)

// Manager installs OS packages through one specific package manager.
type Manager interface {
	// Name is the backend identifier used in font set package maps
	// (e.g., "apt" keys apt-get packages).
	Name() string

	// Available reports whether the backend binary is on PATH.
	Available() bool

	// UpdateCommand returns the argv used to refresh the package index.
	UpdateCommand() []string

	// InstallCommand returns the argv used to install the given packages.
	InstallCommand(pkgs []string) []string

	// Update refreshes the package index.
	Update(ctx context.Context) error

	// Install installs the given packages.
	Install(ctx context.Context, pkgs ...string) error
}

// ErrNoManager is returned when no supported package manager is found.
var ErrNoManager = fmt.Errorf("no supported package manager found (looked for apt-get, dnf, pacman)")

// base carries what every backend needs: an executor and whether commands
// must be prefixed with sudo.
type base struct {
	exec sysexec.CommandExecutor
	sudo bool
}

func (b base) run(ctx context.Context, argv []string) error {
	if b.sudo {
		argv = append([]string{"sudo"}, argv...)
	}

	output, err := b.exec.RunContext(ctx, argv[0], argv[1:]...)
	if err != nil {
		msg := strings.TrimSpace(output)
		if msg != "" {
			return fmt.Errorf("%s failed: %s", argv[0], msg)
		}
		return fmt.Errorf("%s failed: %w", argv[0], err)
	}
	return nil
}

func (b base) display(argv []string) []string {
	if b.sudo {
		return append([]string{"sudo"}, argv...)
	}
	return argv
}

// NeedsSudo reports whether package installation requires sudo: true when
// not running as root and sudo is available.
func NeedsSudo(exec sysexec.CommandExecutor) bool {
	if os.Geteuid() == 0 {
		return false
	}
	_, err := exec.LookPath("sudo")
	return err == nil
}

// Detect returns the first available package manager, in preference order
// apt-get, dnf, pacman. A non-empty forced name limits detection to that
// backend.
func Detect(exec sysexec.CommandExecutor, forced string) (Manager, error) {
	sudo := NeedsSudo(exec)
	managers := []Manager{
		NewAptGet(exec, sudo),
		NewDnf(exec, sudo),
		NewPacman(exec, sudo),
	}

	for _, m := range managers {
		if forced != "" && m.Name() != forced {
			continue
		}
		if m.Available() {
			return m, nil
		}
	}

	if forced != "" {
		return nil, fmt.Errorf("package manager %q is not available on this system", forced)
	}
	return nil, ErrNoManager
}

// CommandLine renders an argv for display.
func CommandLine(argv []string) string {
	return strings.Join(argv, " ")
}
