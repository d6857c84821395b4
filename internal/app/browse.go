package app

import (
	"github.com/opencatalog/catalogctl/internal/catalog"
	"github.com/opencatalog/catalogctl/internal/tui"
	"github.com/opencatalog/catalogctl/internal/util"
	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	var (
		languages []string
		tags      []string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the directory interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := loadProjects(false)
			if err != nil {
				return err
			}

			f := catalog.Filter{Languages: languages, Tags: tags}
			matched := f.Apply(projects)

			if !tui.ShouldUseTUI(cmd) {
				printProjects(matched)
				return nil
			}

			result, err := tui.RunBrowser(cfg.GitHub.Directory(), matched)
			if err != nil {
				return err
			}

			switch result.Action {
			case tui.ActionShowDetails:
				return showProjectInfo(result.Selected.Project)
			case tui.ActionOpenRepo:
				return util.OpenURL(result.Selected.Project.Repository)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&languages, "language", nil, "Only projects in these languages")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Only projects with one of these tags")

	return cmd
}
