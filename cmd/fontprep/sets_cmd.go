package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// runSets lists all available font sets grouped by category.
func runSets(_ *cobra.Command, _ []string) error {
	_, catalog, err := loadEnvironment()
	if err != nil {
		return err
	}

	fmt.Printf("Found %d font sets:\n\n", len(catalog.Sets))

	for _, category := range catalog.Categories() {
		fmt.Printf("%s:\n", category)
		for _, set := range catalog.ByCategory[category] {
			desc := set.Description
			if desc == "" {
				desc = "(no description)"
			}
			marker := " "
			if set.Default {
				marker = "*"
			}
			fmt.Printf("  %s %s: %s\n", marker, set.Name, desc)
		}
		fmt.Println()
	}

	fmt.Println("Sets marked * are installed by default.")
	return nil
}
