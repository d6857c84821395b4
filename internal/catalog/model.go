package catalog

import "strings"

// Project is one entry of the directory, stored as a YAML record file.
// ID is derived from the record file name and is not serialized.
type Project struct {
	ID           string   `yaml:"-"`
	Name         string   `yaml:"name"`
	Repository   string   `yaml:"repository"`
	Abbreviation string   `yaml:"abbreviation,omitempty"`
	Description  string   `yaml:"description,omitempty"`
	Language     string   `yaml:"language,omitempty"`
	Website      string   `yaml:"website,omitempty"`
	Tags         []string `yaml:"tags,omitempty"`
	License      string   `yaml:"license,omitempty"`
	Logo         string   `yaml:"logo,omitempty"`
	SubmittedBy  []string `yaml:"submitted_by,omitempty"`
	AddedDate    string   `yaml:"added_date,omitempty"`
}

// SubmittedByUser reports whether login appears in the record's submitter
// list (case-insensitive).
func (p *Project) SubmittedByUser(login string) bool {
	for _, s := range p.SubmittedBy {
		if strings.EqualFold(s, login) {
			return true
		}
	}
	return false
}

// RepoDetails is per-render enrichment fetched live from GitHub for a
// project's repository. It is never persisted to the record store.
type RepoDetails struct {
	HasReadme     bool
	License       string
	LatestRelease string
	Contributors  []ContributorInfo
	ZenodoDOI     string
}

// ContributorInfo is one contributor of the project's source repository.
type ContributorInfo struct {
	Login         string
	AvatarURL     string
	Contributions int
}

// IsContributor reports whether login is present in the contributor list
// (case-insensitive).
func (d *RepoDetails) IsContributor(login string) bool {
	for _, c := range d.Contributors {
		if strings.EqualFold(c.Login, login) {
			return true
		}
	}
	return false
}
