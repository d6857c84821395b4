package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/opencatalog/catalogctl/internal/github"
)

const defaultZenodoBase = "https://zenodo.org"

// Repository reads and parses the record files of the directory repo.
type Repository struct {
	gh          *github.Client
	owner       string
	repo        string
	branch      string
	recordsPath string
	warnf       func(format string, a ...interface{})

	detailsTTL time.Duration
	details    *lru.Cache[string, detailsEntry]
	zenodoBase string
	httpClient *http.Client
}

type detailsEntry struct {
	details   RepoDetails
	fetchedAt time.Time
}

// NewRepository creates a Repository over the given directory repo
// coordinates. warnf receives one message per skipped record and may be nil.
func NewRepository(gh *github.Client, owner, repo, branch, recordsPath string, detailsTTL time.Duration, warnf func(string, ...interface{})) *Repository {
	if warnf == nil {
		warnf = func(string, ...interface{}) {}
	}
	details, _ := lru.New[string, detailsEntry](256)
	return &Repository{
		gh:          gh,
		owner:       owner,
		repo:        repo,
		branch:      branch,
		recordsPath: recordsPath,
		warnf:       warnf,
		detailsTTL:  detailsTTL,
		details:     details,
		zenodoBase:  defaultZenodoBase,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchAll lists the records directory and parses every record file into a
// Project, in the provider's listing order. A record that fails to parse is
// skipped with a warning; it does not abort the batch.
func (r *Repository) FetchAll() ([]Project, error) {
	entries, err := r.gh.ListDirectory(r.owner, r.repo, r.recordsPath, r.branch)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	var projects []Project
	for _, e := range entries {
		if e.Type != "file" || !strings.HasSuffix(e.Name, RecordExt) {
			continue
		}
		data, _, err := r.gh.GetFileContent(r.owner, r.repo, e.Path, r.branch)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Path, err)
		}
		p, err := ParseRecord(IDFromFilename(e.Name), data)
		if err != nil {
			r.warnf("skipping %s: %v", e.Path, err)
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Exists reports whether any record's repository URL matches repoURL.
// Linear scan; directory sizes are small.
func (r *Repository) Exists(projects []Project, repoURL string) bool {
	repoURL = normalizeRepoURL(repoURL)
	for _, p := range projects {
		if normalizeRepoURL(p.Repository) == repoURL {
			return true
		}
	}
	return false
}

// ReadRecord fetches one record file by project ID, returning the parsed
// project and the blob sha needed for updates and deletes.
func (r *Repository) ReadRecord(id string) (Project, string, error) {
	recordPath := r.recordsPath + "/" + id + RecordExt
	data, sha, err := r.gh.GetFileContent(r.owner, r.repo, recordPath, r.branch)
	if err != nil {
		return Project{}, "", err
	}
	p, err := ParseRecord(id, data)
	if err != nil {
		return Project{}, "", err
	}
	return p, sha, nil
}

// Details fetches live enrichment for a project's source repository.
// Results are cached with the same expiry discipline as the catalog so
// repeated renders do not multiply outbound calls.
func (r *Repository) Details(p Project) (RepoDetails, error) {
	owner, repo, err := SplitRepoURL(p.Repository)
	if err != nil {
		return RepoDetails{}, err
	}

	key := owner + "/" + repo
	if e, ok := r.details.Get(key); ok && time.Since(e.fetchedAt) < r.detailsTTL {
		return e.details, nil
	}

	var d RepoDetails
	if d.HasReadme, err = r.gh.HasReadme(owner, repo); err != nil {
		return RepoDetails{}, err
	}
	meta, err := r.gh.GetRepo(owner, repo)
	if err != nil {
		return RepoDetails{}, err
	}
	if meta.License != nil {
		d.License = meta.License.SPDXID
		if d.License == "" || d.License == "NOASSERTION" {
			// License file present but not recognized by GitHub.
			d.License = "Other"
		}
	}
	if d.LatestRelease, err = r.gh.LatestReleaseTag(owner, repo); err != nil {
		return RepoDetails{}, err
	}
	contributors, err := r.gh.ListContributors(owner, repo)
	if err != nil {
		return RepoDetails{}, err
	}
	for _, c := range contributors {
		d.Contributors = append(d.Contributors, ContributorInfo{
			Login:         c.Login,
			AvatarURL:     c.AvatarURL,
			Contributions: c.Contributions,
		})
	}
	// Best effort; a missing DOI is not an error.
	d.ZenodoDOI, _ = r.lookupZenodoDOI(owner, repo)

	r.details.Add(key, detailsEntry{details: d, fetchedAt: time.Now()})
	return d, nil
}

// lookupZenodoDOI queries Zenodo for a deposit linked to the GitHub repo
// and returns its concept DOI, or "" when none exists.
func (r *Repository) lookupZenodoDOI(owner, repo string) (string, error) {
	q := url.QueryEscape(fmt.Sprintf(`metadata.related_identifiers.identifier:"https://github.com/%s/%s"`, owner, repo))
	resp, err := r.httpClient.Get(r.zenodoBase + "/api/records?size=1&q=" + q)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zenodo lookup: status %d", resp.StatusCode)
	}
	var result struct {
		Hits struct {
			Hits []struct {
				ConceptDOI string `json:"conceptdoi"`
				DOI        string `json:"doi"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Hits.Hits) == 0 {
		return "", nil
	}
	if doi := result.Hits.Hits[0].ConceptDOI; doi != "" {
		return doi, nil
	}
	return result.Hits.Hits[0].DOI, nil
}

// SplitRepoURL extracts owner and repo from a GitHub repository page URL.
func SplitRepoURL(repoURL string) (owner, repo string, err error) {
	u, err := url.Parse(strings.TrimSuffix(repoURL, "/"))
	if err != nil {
		return "", "", fmt.Errorf("parsing repository URL %q: %w", repoURL, err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository URL %q is not an owner/repo page", repoURL)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

func normalizeRepoURL(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), "/")
	s = strings.TrimSuffix(s, ".git")
	return strings.ToLower(s)
}
