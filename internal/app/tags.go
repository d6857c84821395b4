package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newTagsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List all tags with project counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(false)
			if err != nil {
				return err
			}

			counts := make(map[string]int)
			for _, p := range projects {
				for _, t := range p.Tags {
					counts[strings.ToLower(t)]++
				}
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(counts)
			}

			printCounts(counts)
			fmt.Printf("\n%d tags across %d projects\n", len(counts), len(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newLanguagesCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List all languages with project counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(false)
			if err != nil {
				return err
			}

			counts := make(map[string]int)
			for _, p := range projects {
				if p.Language != "" {
					counts[p.Language]++
				}
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(counts)
			}

			printCounts(counts)
			fmt.Printf("\n%d languages across %d projects\n", len(counts), len(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

// printCounts renders a name→count map sorted by count descending, then name.
func printCounts(counts map[string]int) {
	if len(counts) == 0 {
		fmt.Println("Nothing found.")
		return
	}

	type entry struct {
		Name  string
		Count int
	}
	var entries []entry
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})

	for _, e := range entries {
		fmt.Printf("  %-24s %s\n",
			color.CyanString(e.Name),
			color.HiBlackString("(%d)", e.Count),
		)
	}
}
