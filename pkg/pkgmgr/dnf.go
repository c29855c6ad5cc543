package pkgmgr

import (
	"context"

	"github.com/defactra/fontprep/pkg/sysexec"
)

// Dnf installs packages on Fedora and RHEL family systems.
type Dnf struct {
	base
}

// NewDnf creates a dnf backed manager.
func NewDnf(exec sysexec.CommandExecutor, sudo bool) *Dnf {
	return &Dnf{base{exec: exec, sudo: sudo}}
}

// Name returns the backend identifier.
func (d *Dnf) Name() string { return "dnf" }

// Available reports whether dnf is on PATH.
func (d *Dnf) Available() bool {
	_, err := d.exec.LookPath("dnf")
	return err == nil
}

// UpdateCommand returns the index refresh argv.
func (d *Dnf) UpdateCommand() []string {
	return d.display([]string{"dnf", "makecache"})
}

// InstallCommand returns the install argv for the given packages.
func (d *Dnf) InstallCommand(pkgs []string) []string {
	return d.display(append([]string{"dnf", "install", "-y"}, pkgs...))
}

// Update refreshes the dnf metadata cache.
func (d *Dnf) Update(ctx context.Context) error {
	return d.run(ctx, []string{"dnf", "makecache"})
}

// Install installs the given packages via dnf.
func (d *Dnf) Install(ctx context.Context, pkgs ...string) error {
	return d.run(ctx, append([]string{"dnf", "install", "-y"}, pkgs...))
}
