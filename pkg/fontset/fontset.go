// Package fontset provides the catalog of installable font sets and
// their per-package-manager package lists.
package fontset

// Category represents a grouping of related font sets.
type Category string

const (
	CategoryGeneral    Category = "General Unicode"
	CategoryMalayalam  Category = "Malayalam"
	CategoryDevanagari Category = "Devanagari"
	CategoryFallback   Category = "Fallback"
)

// FontSet represents one installable group of font packages.
type FontSet struct {
	// Name is the set identifier (e.g., "malayalam")
	Name string `yaml:"name"`

	// DisplayName is a human-readable name
	DisplayName string `yaml:"display_name"`

	// Description is a brief description of what the set covers
	Description string `yaml:"description"`

	// Category is the set category for grouping in listings
	Category Category `yaml:"category"`

	// Packages maps a package manager name (apt, dnf, pacman) to the
	// package names to install with it
	Packages map[string][]string `yaml:"packages"`

	// Probes lists font file names expected on disk after installation
	Probes []string `yaml:"probes"`

	// Default indicates whether the set is installed when no --sets
	// selection is given
	Default bool `yaml:"default"`
}

// PackagesFor returns the package list for the given manager name.
func (s FontSet) PackagesFor(manager string) []string {
	return s.Packages[manager]
}

// Catalog holds all known font sets.
// Note: Catalog is not thread-safe and should not be modified concurrently.
type Catalog struct {
	// Sets is an ordered list of all font sets
	Sets []FontSet

	// ByName provides quick lookup by set name (stores copies, not pointers)
	ByName map[string]FontSet

	// ByCategory groups sets by their category
	ByCategory map[Category][]FontSet
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Sets:       make([]FontSet, 0, 8),
		ByName:     make(map[string]FontSet),
		ByCategory: make(map[Category][]FontSet),
	}
}

// Add adds a font set to the catalog. Adding a set with an existing name
// replaces the earlier definition, which is how user overlays win over
// the built-in catalog.
func (c *Catalog) Add(set FontSet) {
	if _, exists := c.ByName[set.Name]; exists {
		for i := range c.Sets {
			if c.Sets[i].Name == set.Name {
				old := c.Sets[i]
				c.Sets[i] = set
				c.removeFromCategory(old)
				break
			}
		}
	} else {
		c.Sets = append(c.Sets, set)
	}
	c.ByName[set.Name] = set

	if _, ok := c.ByCategory[set.Category]; !ok {
		c.ByCategory[set.Category] = make([]FontSet, 0)
	}
	c.ByCategory[set.Category] = append(c.ByCategory[set.Category], set)
}

func (c *Catalog) removeFromCategory(set FontSet) {
	sets := c.ByCategory[set.Category]
	for i := range sets {
		if sets[i].Name == set.Name {
			c.ByCategory[set.Category] = append(sets[:i], sets[i+1:]...)
			return
		}
	}
}

// Get returns a font set by name, or nil if not found.
func (c *Catalog) Get(name string) *FontSet {
	if set, ok := c.ByName[name]; ok {
		return &set
	}
	return nil
}

// Names returns a list of all set names.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Sets))
	for i, set := range c.Sets {
		names[i] = set.Name
	}
	return names
}

// Defaults returns the sets installed when no explicit selection is given,
// in catalog order.
func (c *Catalog) Defaults() []FontSet {
	result := make([]FontSet, 0, len(c.Sets))
	for _, set := range c.Sets {
		if set.Default {
			result = append(result, set)
		}
	}
	return result
}

// Categories returns all categories that have sets, in a consistent order.
func (c *Catalog) Categories() []Category {
	order := []Category{CategoryGeneral, CategoryMalayalam, CategoryDevanagari, CategoryFallback}
	result := make([]Category, 0)
	for _, cat := range order {
		if sets, ok := c.ByCategory[cat]; ok && len(sets) > 0 {
			result = append(result, cat)
		}
	}
	return result
}
