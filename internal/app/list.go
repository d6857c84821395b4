package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/opencatalog/catalogctl/internal/catalog"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		languages []string
		tags      []string
		jsonOut   bool
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the projects in the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(refresh)
			if err != nil {
				return err
			}

			f := catalog.Filter{Languages: languages, Tags: tags}
			matched := f.Apply(projects)

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(matched)
			}

			printProjects(matched)
			fmt.Printf("\n%d of %d projects\n", len(matched), len(projects))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&languages, "language", nil, "Only projects in these languages")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Only projects with one of these tags")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the cache and refetch")

	return cmd
}

func printProjects(projects []catalog.Project) {
	if len(projects) == 0 {
		fmt.Println("No projects matched.")
		return
	}
	for _, p := range projects {
		line := fmt.Sprintf("  %-28s", color.CyanString(p.Name))
		if p.Language != "" {
			line += " " + color.HiBlackString("[%s]", p.Language)
		}
		if p.Description != "" {
			line += " " + truncate(p.Description, 60)
		}
		fmt.Println(line)
		if len(p.Tags) > 0 {
			fmt.Printf("  %-28s %s\n", "", color.HiBlackString(strings.Join(p.Tags, ", ")))
		}
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
