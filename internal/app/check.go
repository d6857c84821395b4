package app

import (
	"fmt"

	"github.com/opencatalog/catalogctl/internal/catalog"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <repo-url>",
		Short: "Check whether a repository is already listed",
		Long: `Check a repository URL against the directory before submitting.

The comparison ignores case, trailing slashes and a .git suffix, the
same way the submission pipeline does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoURL := args[0]
			if _, _, err := catalog.SplitRepoURL(repoURL); err != nil {
				return err
			}

			// Forced read: a stale answer here would let a duplicate through.
			projects, err := loadProjects(true)
			if err != nil {
				return err
			}

			if directory.Exists(projects, repoURL) {
				fmt.Printf("%s is already listed.\n", repoURL)
				return nil
			}
			ok("%s is not listed yet — submit it with 'catalogctl submit'", repoURL)
			return nil
		},
	}
}
