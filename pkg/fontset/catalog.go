package fontset

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// builtinCatalog contains the built-in font set definitions.
//
//go:embed fontsets.yaml
var builtinCatalog []byte

// catalogFile is the on-disk catalog schema.
type catalogFile struct {
	Version string    `yaml:"version"`
	Sets    []FontSet `yaml:"sets"`
}

// LoadBuiltin parses the embedded catalog.
func LoadBuiltin() (*Catalog, error) {
	return parseCatalog(builtinCatalog)
}

// Load parses the embedded catalog and, if overlayPath is non-empty and
// exists, merges the overlay file's sets over the built-ins. Sets in the
// overlay replace built-in sets with the same name.
func Load(overlayPath string) (*Catalog, error) {
	catalog, err := LoadBuiltin()
	if err != nil {
		return nil, err
	}

	if overlayPath == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog, nil
		}
		return nil, fmt.Errorf("failed to read font set overlay: %w", err)
	}

	var overlay catalogFile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse font set overlay %s: %w", overlayPath, err)
	}

	for _, set := range overlay.Sets {
		if err := validateSet(set); err != nil {
			return nil, fmt.Errorf("invalid font set in %s: %w", overlayPath, err)
		}
		catalog.Add(set)
	}

	return catalog, nil
}

func parseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse font set catalog: %w", err)
	}

	catalog := NewCatalog()
	for _, set := range file.Sets {
		if err := validateSet(set); err != nil {
			return nil, err
		}
		catalog.Add(set)
	}
	return catalog, nil
}

func validateSet(set FontSet) error {
	if set.Name == "" {
		return fmt.Errorf("font set has no name")
	}
	if len(set.Packages) == 0 {
		return fmt.Errorf("font set %q lists no packages", set.Name)
	}
	return nil
}

// Select resolves a list of requested set names against the catalog,
// preserving catalog order. An empty request selects the default sets.
func (c *Catalog) Select(names []string) ([]FontSet, error) {
	if len(names) == 0 {
		return c.Defaults(), nil
	}

	requested := make(map[string]bool, len(names))
	for _, name := range names {
		if c.Get(name) == nil {
			return nil, fmt.Errorf("unknown font set %q (available: %v)", name, c.Names())
		}
		requested[name] = true
	}

	result := make([]FontSet, 0, len(names))
	for _, set := range c.Sets {
		if requested[set.Name] {
			result = append(result, set)
		}
	}
	return result, nil
}
