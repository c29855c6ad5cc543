// Package fontprobe verifies that expected font files exist on disk
// after installation, independent of what the font cache reports.
package fontprobe

import (
	"path/filepath"

	"github.com/defactra/fontprep/pkg/fontset"
	"github.com/defactra/fontprep/pkg/sysexec"
)

// DefaultDirs are the standard directories font packages install into.
var DefaultDirs = []string{
	"/usr/share/fonts/truetype/noto",
	"/usr/share/fonts/truetype/liberation",
	"/usr/share/fonts/truetype/dejavu",
	"/usr/share/fonts/truetype/malayalam",
	"/usr/share/fonts/truetype/lohit-devanagari",
	"/usr/share/fonts/opentype/noto",
	"/usr/share/fonts/google-noto",
	"/usr/share/fonts/noto",
}

// Result is the outcome of probing one expected font file.
type Result struct {
	SetName string // Font set the file belongs to
	File    string // Expected file name
	Path    string // Full path where the file was found, empty if missing
	Found   bool
}

// Prober locates expected font files in the search directories.
type Prober struct {
	exec sysexec.CommandExecutor
	dirs []string
}

// New creates a Prober over the default directories plus any extras.
func New(extraDirs ...string) *Prober {
	return NewWithExecutor(&sysexec.RealExecutor{}, extraDirs...)
}

// NewWithExecutor creates a Prober with a custom executor (for testing).
func NewWithExecutor(exec sysexec.CommandExecutor, extraDirs ...string) *Prober {
	dirs := make([]string, 0, len(DefaultDirs)+len(extraDirs))
	dirs = append(dirs, DefaultDirs...)
	dirs = append(dirs, extraDirs...)
	return &Prober{exec: exec, dirs: dirs}
}

// ProbeSet checks each probe file of a font set. A set with several probe
// candidates for the same font (e.g., two Noto Malayalam spellings) counts
// as satisfied if any candidate is found; every candidate is still
// reported so the caller can show what was looked for.
func (p *Prober) ProbeSet(set fontset.FontSet) []Result {
	results := make([]Result, 0, len(set.Probes))
	for _, file := range set.Probes {
		result := Result{SetName: set.Name, File: file}
		for _, dir := range p.dirs {
			path := filepath.Join(dir, file)
			if p.exec.FileExists(path) {
				result.Path = path
				result.Found = true
				break
			}
		}
		results = append(results, result)
	}
	return results
}

// ProbeSets probes every given set in order.
func (p *Prober) ProbeSets(sets []fontset.FontSet) []Result {
	var results []Result
	for _, set := range sets {
		results = append(results, p.ProbeSet(set)...)
	}
	return results
}

// Satisfied reports whether every set represented in results has at least
// one found probe. Sets without probes are trivially satisfied.
func Satisfied(results []Result) bool {
	found := make(map[string]bool)
	seen := make(map[string]bool)
	for _, r := range results {
		seen[r.SetName] = true
		if r.Found {
			found[r.SetName] = true
		}
	}
	for name := range seen {
		if !found[name] {
			return false
		}
	}
	return true
}
