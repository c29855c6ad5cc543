// Package fontcache wraps the fontconfig command line tools used to
// rebuild and query the system font cache.
package fontcache

import (
	"context"
	"fmt"
	"strings"

	"github.com/defactra/fontprep/pkg/sysexec"
)

// DefaultFilters are the substrings used to narrow the verification
// listing to the fonts this tool installs.
var DefaultFilters = []string{"noto", "malayalam", "devanagari", "liberation"}

// DefaultListLimit caps the number of listing lines shown during verification.
const DefaultListLimit = 10

// Cache performs fontconfig operations through an executor.
type Cache struct {
	exec sysexec.CommandExecutor
	sudo bool
}

// New creates a Cache using the real executor.
func New() *Cache {
	return &Cache{exec: &sysexec.RealExecutor{}}
}

// NewWithExecutor creates a Cache with a custom executor (for testing).
func NewWithExecutor(exec sysexec.CommandExecutor) *Cache {
	return &Cache{exec: exec}
}

// WithSudo makes Rebuild run fc-cache under sudo so the system-wide cache
// is refreshed rather than only the per-user one. Listing and matching
// stay unprivileged.
func (c *Cache) WithSudo(sudo bool) *Cache {
	c.sudo = sudo
	return c
}

// RebuildCommand returns the argv Rebuild executes, for display.
func (c *Cache) RebuildCommand() []string {
	argv := []string{"fc-cache", "-f", "-v"}
	if c.sudo {
		return append([]string{"sudo"}, argv...)
	}
	return argv
}

// Rebuild forces a full font cache rebuild (fc-cache -f -v) and returns
// the tool's verbose output.
func (c *Cache) Rebuild(ctx context.Context) (string, error) {
	argv := c.RebuildCommand()
	output, err := c.exec.RunContext(ctx, argv[0], argv[1:]...)
	if err != nil {
		msg := strings.TrimSpace(output)
		if msg != "" {
			return output, fmt.Errorf("fc-cache failed: %s", msg)
		}
		return output, fmt.Errorf("fc-cache failed: %w", err)
	}
	return output, nil
}

// List returns installed font lines matching any of the given substrings,
// case-insensitively, truncated to limit lines. A nil filter list uses
// DefaultFilters; limit <= 0 uses DefaultListLimit.
func (c *Cache) List(ctx context.Context, filters []string, limit int) ([]string, error) {
	output, err := c.exec.RunContext(ctx, "fc-list")
	if err != nil {
		return nil, fmt.Errorf("fc-list failed: %w", err)
	}

	if filters == nil {
		filters = DefaultFilters
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	return FilterLines(output, filters, limit), nil
}

// Match asks fontconfig which font would serve the given pattern
// (e.g., ":lang=ml" for Malayalam) and returns the matched family line.
func (c *Cache) Match(ctx context.Context, pattern string) (string, error) {
	output, err := c.exec.RunContext(ctx, "fc-match", pattern)
	if err != nil {
		return "", fmt.Errorf("fc-match failed: %w", err)
	}
	return strings.TrimSpace(output), nil
}

// FilterLines returns up to limit lines of text containing any of the
// filter substrings, compared case-insensitively.
func FilterLines(text string, filters []string, limit int) []string {
	lowered := make([]string, len(filters))
	for i, f := range filters {
		lowered[i] = strings.ToLower(f)
	}

	var result []string
	for _, line := range strings.Split(text, "\n") {
		if len(result) >= limit {
			break
		}
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, f := range lowered {
			if strings.Contains(lower, f) {
				result = append(result, line)
				break
			}
		}
	}
	return result
}
