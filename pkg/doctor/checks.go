package doctor

import (
	"os"
	"regexp"
	"runtime"

	"github.com/defactra/fontprep/pkg/sysexec"
)

// checkTool checks if a tool is installed and gets its version.
func checkTool(exec sysexec.CommandExecutor, id, name, desc string, versionArgs []string, versionRegex *regexp.Regexp, fixCmd *FixCommand) Check {
	check := Check{
		ID:          id,
		Name:        name,
		Description: desc,
		FixCommand:  fixCmd,
	}

	path, err := exec.LookPath(id)
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	// Try to get version
	output, err := exec.Run(path, versionArgs...)
	if err != nil {
		// Tool exists but version check failed - still consider it OK
		check.Status = StatusOK
		check.Message = "installed (version unknown)"
		return check
	}

	// Extract version from output
	version := extractVersion(output, versionRegex)
	if version != "" {
		check.Status = StatusOK
		check.Message = version
	} else {
		check.Status = StatusOK
		check.Message = "installed"
	}

	return check
}

// extractVersion extracts version string from command output.
func extractVersion(output string, regex *regexp.Regexp) string {
	if regex == nil {
		// Default: look for common version patterns
		defaultRegex := regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:-[a-zA-Z0-9]+)?)`)
		matches := defaultRegex.FindStringSubmatch(output)
		if len(matches) >= 2 {
			return matches[1]
		}
		return ""
	}

	matches := regex.FindStringSubmatch(output)
	if len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// CheckAptGet checks if apt-get is installed.
func CheckAptGet(exec sysexec.CommandExecutor) Check {
	return checkTool(
		exec,
		IDAptGet,
		"apt-get",
		"Debian/Ubuntu package manager",
		[]string{"--version"},
		regexp.MustCompile(`apt (\d+\.\d+(?:\.\d+)?)`),
		nil, // A missing package manager cannot be fixed by itself
	)
}

// CheckDnf checks if dnf is installed.
func CheckDnf(exec sysexec.CommandExecutor) Check {
	return checkTool(
		exec,
		IDDnf,
		"dnf",
		"Fedora/RHEL package manager",
		[]string{"--version"},
		regexp.MustCompile(`(\d+\.\d+\.\d+)`),
		nil,
	)
}

// CheckPacman checks if pacman is installed.
func CheckPacman(exec sysexec.CommandExecutor) Check {
	return checkTool(
		exec,
		IDPacman,
		"pacman",
		"Arch package manager",
		[]string{"--version"},
		regexp.MustCompile(`Pacman v(\d+\.\d+\.\d+)`),
		nil,
	)
}

// CheckFcCache checks if fc-cache is installed.
func CheckFcCache(exec sysexec.CommandExecutor) Check {
	return checkTool(
		exec,
		IDFcCache,
		"fc-cache",
		"Font cache rebuild tool",
		[]string{"--version"},
		regexp.MustCompile(`fontconfig version (\d+\.\d+(?:\.\d+)?)`),
		GetFixCommand(IDFcCache, runtime.GOOS),
	)
}

// CheckFcList checks if fc-list is installed.
func CheckFcList(exec sysexec.CommandExecutor) Check {
	return checkTool(
		exec,
		IDFcList,
		"fc-list",
		"Font listing tool",
		[]string{"--version"},
		regexp.MustCompile(`fontconfig version (\d+\.\d+(?:\.\d+)?)`),
		GetFixCommand(IDFcList, runtime.GOOS),
	)
}

// CheckFcMatch checks if fc-match is installed.
func CheckFcMatch(exec sysexec.CommandExecutor) Check {
	return checkTool(
		exec,
		IDFcMatch,
		"fc-match",
		"Font pattern matcher",
		[]string{"--version"},
		regexp.MustCompile(`fontconfig version (\d+\.\d+(?:\.\d+)?)`),
		GetFixCommand(IDFcMatch, runtime.GOOS),
	)
}

// CheckSudo checks whether package installation will be able to elevate.
// Running as root is OK; otherwise sudo must be on PATH.
func CheckSudo(exec sysexec.CommandExecutor) Check {
	check := Check{
		ID:          IDSudo,
		Name:        "sudo",
		Description: "Privilege elevation for package installation",
	}

	if os.Geteuid() == 0 {
		check.Status = StatusOK
		check.Message = "running as root"
		return check
	}

	path, err := exec.LookPath("sudo")
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not running as root and sudo not installed"
		return check
	}

	output, err := exec.Run(path, "--version")
	if err != nil {
		check.Status = StatusOK
		check.Message = "installed (version unknown)"
		return check
	}

	version := extractVersion(output, regexp.MustCompile(`Sudo version (\d+\.\d+(?:\.\d+)?)`))
	if version != "" {
		check.Status = StatusOK
		check.Message = version
	} else {
		check.Status = StatusOK
		check.Message = "installed"
	}
	return check
}

// CheckPackageManagerGroup summarizes the package manager group: the group
// is healthy if any one manager is present, so managers that are merely
// absent on this distro are reported as warnings rather than misses.
func normalizePackageManagerGroup(checks []Check) []Check {
	anyOK := false
	for _, c := range checks {
		if c.Status == StatusOK {
			anyOK = true
			break
		}
	}
	if !anyOK {
		return checks
	}

	result := make([]Check, len(checks))
	copy(result, checks)
	for i := range result {
		if result[i].Status == StatusMissing {
			result[i].Status = StatusWarning
			result[i].Message = "not present (another manager is available)"
		}
	}
	return result
}
