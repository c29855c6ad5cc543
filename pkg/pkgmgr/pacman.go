package pkgmgr

import (
	"context"

	"github.com/defactra/fontprep/pkg/sysexec"
)

// Pacman installs packages on Arch family systems.
type Pacman struct {
	base
}

// NewPacman creates a pacman backed manager.
func NewPacman(exec sysexec.CommandExecutor, sudo bool) *Pacman {
	return &Pacman{base{exec: exec, sudo: sudo}}
}

// Name returns the backend identifier.
func (p *Pacman) Name() string { return "pacman" }

// Available reports whether pacman is on PATH.
func (p *Pacman) Available() bool {
	_, err := p.exec.LookPath("pacman")
	return err == nil
}

// UpdateCommand returns the index refresh argv.
func (p *Pacman) UpdateCommand() []string {
	return p.display([]string{"pacman", "-Sy", "--noconfirm"})
}

// InstallCommand returns the install argv for the given packages.
// --needed skips packages that are already up to date.
func (p *Pacman) InstallCommand(pkgs []string) []string {
	return p.display(append([]string{"pacman", "-S", "--noconfirm", "--needed"}, pkgs...))
}

// Update refreshes the pacman sync databases.
func (p *Pacman) Update(ctx context.Context) error {
	return p.run(ctx, []string{"pacman", "-Sy", "--noconfirm"})
}

// Install installs the given packages via pacman.
func (p *Pacman) Install(ctx context.Context, pkgs ...string) error {
	return p.run(ctx, append([]string{"pacman", "-S", "--noconfirm", "--needed"}, pkgs...))
}
