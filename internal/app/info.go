package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/opencatalog/catalogctl/internal/catalog"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	var noDetails bool

	cmd := &cobra.Command{
		Use:   "info <id>",
		Short: "Show a project's record and live repository details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := findProject(args[0])
			if err != nil {
				return err
			}
			if noDetails {
				printRecord(p)
				return nil
			}
			return showProjectInfo(p)
		},
	}

	cmd.Flags().BoolVar(&noDetails, "no-details", false, "Skip the live repository lookup")
	return cmd
}

// showProjectInfo prints the record followed by the live repository details.
// The details are best-effort: the record still prints when the repo lookup
// fails.
func showProjectInfo(p catalog.Project) error {
	printRecord(p)

	details, err := directory.Details(p)
	if err != nil {
		warn("could not fetch repository details: %v", err)
		return nil
	}

	fmt.Println()
	header("Repository")
	readme := color.RedString("missing")
	if details.HasReadme {
		readme = color.GreenString("present")
	}
	printField("readme", readme)
	if details.License != "" {
		printField("repo_license", details.License)
	}
	if details.LatestRelease != "" {
		printField("latest_release", details.LatestRelease)
	}
	if details.ZenodoDOI != "" {
		printField("zenodo_doi", details.ZenodoDOI)
	}
	if len(details.Contributors) > 0 {
		names := make([]string, 0, len(details.Contributors))
		for _, c := range details.Contributors {
			names = append(names, c.Login)
		}
		printField("contributors", fmt.Sprintf("%d (%s)", len(names), truncate(strings.Join(names, ", "), 60)))
	}
	return nil
}

func printRecord(p catalog.Project) {
	header("Project: %s", p.Name)
	if p.Abbreviation != "" {
		printField("abbreviation", p.Abbreviation)
	}
	if p.Description != "" {
		printField("description", p.Description)
	}
	printField("repository", p.Repository)
	if p.Language != "" {
		printField("language", p.Language)
	}
	if p.Website != "" {
		printField("website", p.Website)
	}
	if len(p.Tags) > 0 {
		printField("tags", strings.Join(p.Tags, ", "))
	}
	if p.License != "" {
		printField("license", p.License)
	}
	if p.Logo != "" {
		printField("logo", p.Logo)
	}
	if len(p.SubmittedBy) > 0 {
		printField("submitted_by", strings.Join(p.SubmittedBy, ", "))
	}
	if p.AddedDate != "" {
		printField("added", p.AddedDate)
	}
}

func printField(label, value string) {
	fmt.Printf("  %-16s %s\n", color.CyanString(label+":"), value)
}

// findProject resolves an argument to a project, accepting either the
// record id or the exact project name.
func findProject(arg string) (catalog.Project, error) {
	projects, err := loadProjects(false)
	if err != nil {
		return catalog.Project{}, err
	}

	id := catalog.Slug(arg)
	for _, p := range projects {
		if p.ID == id || strings.EqualFold(p.Name, arg) {
			return p, nil
		}
	}
	return catalog.Project{}, fmt.Errorf("project %q not found in the directory", arg)
}
