package pkgmgr

import (
	"context"

	"github.com/defactra/fontprep/pkg/sysexec"
)

// AptGet installs packages on Debian and Ubuntu systems.
type AptGet struct {
	base
}

// NewAptGet creates an apt-get backed manager.
func NewAptGet(exec sysexec.CommandExecutor, sudo bool) *AptGet {
	return &AptGet{base{exec: exec, sudo: sudo}}
}

// Name returns the backend identifier.
func (a *AptGet) Name() string { return "apt" }

// Available reports whether apt-get is on PATH.
func (a *AptGet) Available() bool {
	_, err := a.exec.LookPath("apt-get")
	return err == nil
}

// UpdateCommand returns the index refresh argv.
func (a *AptGet) UpdateCommand() []string {
	return a.display([]string{"apt-get", "update"})
}

// InstallCommand returns the install argv for the given packages.
// DEBIAN_FRONTEND=noninteractive suppresses debconf prompts.
func (a *AptGet) InstallCommand(pkgs []string) []string {
	argv := []string{"env", "DEBIAN_FRONTEND=noninteractive", "apt-get", "install", "-y", "-q"}
	return a.display(append(argv, pkgs...))
}

// Update refreshes the apt package index.
func (a *AptGet) Update(ctx context.Context) error {
	return a.run(ctx, []string{"apt-get", "update"})
}

// Install installs the given packages via apt-get.
func (a *AptGet) Install(ctx context.Context, pkgs ...string) error {
	argv := []string{"env", "DEBIAN_FRONTEND=noninteractive", "apt-get", "install", "-y", "-q"}
	return a.run(ctx, append(argv, pkgs...))
}
