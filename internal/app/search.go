package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/opencatalog/catalogctl/internal/catalog"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		languages []string
		tags      []string
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search projects by name and description",
		Long: `Search matches the query against project names and descriptions,
case-insensitively. Combine with --language and --tag to narrow further.

Examples:
  catalogctl search genome
  catalogctl search "sequence alignment" --language Python
  catalogctl search viewer --tag visualization --tag imaging`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(false)
			if err != nil {
				return err
			}

			f := catalog.Filter{
				Query:     strings.Join(args, " "),
				Languages: languages,
				Tags:      tags,
			}
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

	return cmd
}
