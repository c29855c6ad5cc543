package doctor

// groupDefinitions defines the check groups with their metadata.
var groupDefinitions = map[string]struct {
	Name        string
	Description string
	Platform    string
	CheckIDs    []string
}{
	GroupPackageManager: {
		Name:        "Package Manager",
		Description: "Required for installing font packages",
		Platform:    "",
		CheckIDs:    []string{IDAptGet, IDDnf, IDPacman},
	},
	GroupFontconfig: {
		Name:        "Fontconfig",
		Description: "Required for rebuilding and querying the font cache",
		Platform:    "",
		CheckIDs:    []string{IDFcCache, IDFcList, IDFcMatch},
	},
	GroupPrivileges: {
		Name:        "Privileges",
		Description: "Required for system-wide font installation",
		Platform:    "",
		CheckIDs:    []string{IDSudo},
	},
}

// groupOrder keeps listings deterministic.
var groupOrder = []string{GroupPackageManager, GroupFontconfig, GroupPrivileges}

// GetGroups returns all check groups in display order.
func GetGroups() []CheckGroup {
	var groups []CheckGroup
	for _, groupID := range groupOrder {
		def := groupDefinitions[groupID]
		groups = append(groups, CheckGroup{
			ID:          groupID,
			Name:        def.Name,
			Description: def.Description,
			Platform:    def.Platform,
		})
	}
	return groups
}

// GetGroupDefinition returns the definition for a specific group.
func GetGroupDefinition(groupID string) (struct {
	Name        string
	Description string
	Platform    string
	CheckIDs    []string
}, bool) {
	def, ok := groupDefinitions[groupID]
	return def, ok
}

// GetAllGroupIDs returns all group IDs in display order.
func GetAllGroupIDs() []string {
	return groupOrder
}
