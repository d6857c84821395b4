package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/opencatalog/catalogctl/internal/auth"
	"github.com/opencatalog/catalogctl/internal/catalog"
	"github.com/opencatalog/catalogctl/internal/config"
	ghclient "github.com/opencatalog/catalogctl/internal/github"
	"github.com/opencatalog/catalogctl/internal/snapshot"
	"github.com/opencatalog/catalogctl/internal/submit"
	"github.com/opencatalog/catalogctl/internal/util"
	"github.com/spf13/cobra"
)

var (
	cfg          *config.Config
	gh           *ghclient.Client
	directory    *catalog.Repository
	projectCache *catalog.Cache
	snap         *snapshot.Store
	sessions     *auth.Store
	proxy        *auth.ProxyClient

	appVersion = "dev"

	flagNoColor bool
	flagConfig  string
)

// SetVersion records the build version injected from main.
func SetVersion(v string) {
	if v != "" {
		appVersion = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Browse and contribute to a community project directory on GitHub",
	Long: `catalogctl works with a project directory stored in a GitHub repository.

Each project is a small YAML record under the directory's records path.
Reads go through a local cache; submissions commit records through the
GitHub API after a contributor check.

Run 'catalogctl browse' for the interactive view.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/catalogctl/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// init and version run without any wiring.
		switch cmd.Name() {
		case "init", "version":
			return nil
		}

		sessions = auth.NewStore(cfg.Cache.Dir)
		proxy = auth.NewProxyClient(cfg.Proxy.BaseURL)

		// login/logout only need the auth side.
		switch cmd.Name() {
		case "login", "logout":
			return nil
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		gh = ghclient.New(resolveToken(), cfg.GitHub.APIBase)
		directory = catalog.NewRepository(gh,
			cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.Branch,
			cfg.GitHub.RecordsPath, cfg.Cache.TTL, warn)
		projectCache = catalog.NewCache(directory.FetchAll, cfg.Cache.TTL)

		snap = snapshot.New(cfg.Cache.Dir)
		if data, fetchedAt, ok := snap.Load(); ok {
			projectCache.Prime(data, fetchedAt)
		}
		return nil
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newListCmd(),
		newSearchCmd(),
		newTagsCmd(),
		newLanguagesCmd(),
		newInfoCmd(),
		newCheckCmd(),
		newSubmitCmd(),
		newRemoveCmd(),
		newBrowseCmd(),
		newCacheCmd(),
		newVersionCmd(),
	)
}

// tokenSource records where the token for this invocation came from. The
// proxy's shared read token lets anonymous browsing work, but it does not
// identify a user, so write commands must not accept it.
type tokenSource int

const (
	tokenNone tokenSource = iota
	tokenPAT
	tokenSession
	tokenService
)

var tokenOrigin tokenSource

// resolveToken picks the token for this invocation: an explicit PAT from the
// environment wins, then the stored login session, then the proxy's shared
// read token so anonymous browsing still works.
func resolveToken() string {
	if cfg.GitHub.Token != "" {
		tokenOrigin = tokenPAT
		return cfg.GitHub.Token
	}
	if token, err := sessions.Get(); err == nil {
		tokenOrigin = tokenSession
		return token
	}
	if token, err := proxy.ServiceToken(); err == nil {
		tokenOrigin = tokenService
		return token
	}
	tokenOrigin = tokenNone
	return ""
}

// requireLogin gates the write commands: only a PAT or a login session
// carries a user identity.
func requireLogin() error {
	switch tokenOrigin {
	case tokenPAT, tokenSession:
		return nil
	}
	return fmt.Errorf("this command requires a login: run 'catalogctl login' or set GITHUB_TOKEN")
}

// loadProjects reads the directory through the cache and keeps the disk
// snapshot in step with what the cache holds.
func loadProjects(force bool) ([]catalog.Project, error) {
	projects, err := projectCache.Get(force)
	if err != nil {
		return nil, err
	}
	if data, fetchedAt, ok := projectCache.Snapshot(); ok {
		if err := snap.Save(data, fetchedAt); err != nil {
			warn("could not write catalog snapshot: %v", err)
		}
	}
	return projects, nil
}

func newSubmitHandler() *submit.Handler {
	return submit.NewHandler(gh, directory, projectCache, snap,
		cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.Branch, cfg.GitHub.RecordsPath)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
