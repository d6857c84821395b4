package app

import (
	"errors"
	"fmt"

	"github.com/opencatalog/catalogctl/internal/submit"
	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var draft submit.Draft

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new project or update one you submitted",
		Long: `Submit commits a project record to the directory repository.

You must be logged in (or have a GitHub token in the environment) and be
a contributor to the project's repository. Submitting a name that is
already yours updates the existing record.

Examples:
  catalogctl submit --name "Genome Viewer" --repo https://github.com/x/gviewer \
    --language Python --tag visualization --tag genomics
  catalogctl submit --name "Genome Viewer" --repo https://github.com/x/gviewer \
    --description "Interactive genome tracks" --logo ./gviewer.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			res, err := newSubmitHandler().Submit(draft)
			var verr *submit.ValidationError
			switch {
			case errors.As(err, &verr):
				return fmt.Errorf("%w (see 'catalogctl submit --help')", verr)
			case errors.Is(err, submit.ErrDuplicateProject):
				return fmt.Errorf("%w; run 'catalogctl check %s'", err, draft.Repository)
			case err != nil:
				return err
			}

			ok("Submitted %s (%s)", draft.Name, res.RecordPath)
			if res.LogoPath != "" {
				ok("Logo uploaded to %s", res.LogoPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "Project name (required)")
	cmd.Flags().StringVar(&draft.Repository, "repo", "", "Project repository URL (required)")
	cmd.Flags().StringVar(&draft.Abbreviation, "abbrev", "", "Short abbreviation shown in listings")
	cmd.Flags().StringVar(&draft.Description, "description", "", "One-line project description")
	cmd.Flags().StringVar(&draft.Language, "language", "", "Primary implementation language")
	cmd.Flags().StringVar(&draft.Website, "website", "", "Project website URL")
	cmd.Flags().StringVar(&draft.License, "license", "", "Project license (SPDX id)")
	cmd.Flags().StringSliceVar(&draft.Tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVar(&draft.LogoFile, "logo", "", "Local logo image to upload")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}
