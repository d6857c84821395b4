package app

import (
	"fmt"

	"github.com/opencatalog/catalogctl/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		owner       string
		repo        string
		branch      string
		recordsPath string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the config file pointing at a directory repository",
		Long: `Write ~/.config/catalogctl/config.yml for a directory repository.

Examples:
  catalogctl init --owner nf-core --repo website
  catalogctl init --owner acme --repo directory --branch gh-pages --records-path _projects`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.GitHub.Owner = owner
			cfg.GitHub.Repo = repo
			if branch != "" {
				cfg.GitHub.Branch = branch
			}
			if recordsPath != "" {
				cfg.GitHub.RecordsPath = recordsPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			path := flagConfig
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.Save(cfg, path); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			ok("Wrote %s", path)
			fmt.Printf("Directory: %s (branch %s, records in %s)\n",
				cfg.GitHub.Directory(), cfg.GitHub.Branch, cfg.GitHub.RecordsPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Directory repository owner (required)")
	cmd.Flags().StringVar(&repo, "repo", "", "Directory repository name (required)")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch holding the records (default main)")
	cmd.Flags().StringVar(&recordsPath, "records-path", "", "Path of the records directory (default _projects)")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}
