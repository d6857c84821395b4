// Package submit implements the write path of the directory: validated
// drafts become record files committed to the directory repo, with the
// project cache invalidated on every successful write.
//
// Records are committed directly to the base branch. The branch+PR review
// variant was considered and rejected as the live write path; see DESIGN.md.
package submit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opencatalog/catalogctl/internal/catalog"
	"github.com/opencatalog/catalogctl/internal/github"
	"github.com/opencatalog/catalogctl/internal/snapshot"
)

// Draft is an unvalidated project submission.
type Draft struct {
	Name         string
	Repository   string
	Abbreviation string
	Description  string
	Language     string
	Website      string
	License      string
	Tags         []string
	// LogoFile is a local image path to commit alongside the record.
	LogoFile string
}

// Result describes a successful submission.
type Result struct {
	ID         string
	RecordPath string
	LogoPath   string
}

// Handler runs the submission pipeline against the directory repo.
type Handler struct {
	gh          *github.Client
	repo        *catalog.Repository
	cache       *catalog.Cache
	snap        *snapshot.Store
	owner       string
	repoName    string
	branch      string
	recordsPath string
}

// NewHandler creates a Handler. gh must carry the acting user's token;
// snap may be nil when no disk snapshot is in use.
func NewHandler(gh *github.Client, repo *catalog.Repository, cache *catalog.Cache, snap *snapshot.Store, owner, repoName, branch, recordsPath string) *Handler {
	return &Handler{
		gh:          gh,
		repo:        repo,
		cache:       cache,
		snap:        snap,
		owner:       owner,
		repoName:    repoName,
		branch:      branch,
		recordsPath: recordsPath,
	}
}

// Submit validates the draft, checks for duplicates and authorization,
// optionally uploads the logo, writes the record, and invalidates the
// cache. Resubmitting under the same name overwrites the existing record
// (edit) and requires the acting user to be among its submitters.
func (h *Handler) Submit(draft Draft) (*Result, error) {
	if err := validate(draft); err != nil {
		return nil, err
	}

	projects, err := h.cache.Get(false)
	if err != nil {
		return nil, fmt.Errorf("loading directory: %w", err)
	}

	recordPath := catalog.RecordPath(h.recordsPath, draft.Name)
	id := catalog.IDFromFilename(filepath.Base(recordPath))

	// Identity comes from the token, not from a form field: the gate is
	// bound to the session that will sign the commit.
	user, err := h.gh.AuthenticatedUser()
	if err != nil {
		return nil, err
	}

	existing, priorSHA, err := h.existingRecord(id)
	if err != nil {
		return nil, err
	}

	// An edit may keep its own repository URL but may not claim one that
	// already belongs to another record.
	others := projects
	if existing != nil {
		others = make([]catalog.Project, 0, len(projects))
		for _, proj := range projects {
			if proj.ID != id {
				others = append(others, proj)
			}
		}
	}
	if h.repo.Exists(others, draft.Repository) {
		return nil, ErrDuplicateProject
	}

	if err := h.checkContributor(draft.Repository, user.Login); err != nil {
		return nil, err
	}
	if existing != nil && !existing.SubmittedByUser(user.Login) {
		return nil, ErrNotAuthorized
	}

	p := catalog.Project{
		ID:           id,
		Name:         draft.Name,
		Repository:   draft.Repository,
		Abbreviation: draft.Abbreviation,
		Description:  draft.Description,
		Language:     draft.Language,
		Website:      draft.Website,
		License:      draft.License,
		Tags:         draft.Tags,
		SubmittedBy:  []string{user.Login},
		AddedDate:    time.Now().Format("2006-01-02"),
	}
	if existing != nil {
		// Edit keeps the original provenance.
		p.AddedDate = existing.AddedDate
		p.SubmittedBy = existing.SubmittedBy
		p.Logo = existing.Logo
	}

	if draft.LogoFile != "" {
		logoPath, err := h.uploadLogo(draft.Name, draft.LogoFile)
		if err != nil {
			return nil, err
		}
		p.Logo = logoPath
	}

	data, err := catalog.MarshalRecord(p)
	if err != nil {
		return nil, err
	}
	message := fmt.Sprintf("Add project: %s", draft.Name)
	if existing != nil {
		message = fmt.Sprintf("Update project: %s", draft.Name)
	}
	if err := h.gh.PutFile(h.owner, h.repoName, recordPath, data, message, h.branch, priorSHA); err != nil {
		return nil, err
	}

	h.invalidate()
	return &Result{ID: id, RecordPath: recordPath, LogoPath: p.Logo}, nil
}

// Remove deletes a project's record. The acting user must be among the
// record's submitters.
func (h *Handler) Remove(id string) error {
	p, sha, err := h.repo.ReadRecord(id)
	if err != nil {
		return err
	}

	user, err := h.gh.AuthenticatedUser()
	if err != nil {
		return err
	}
	if !p.SubmittedByUser(user.Login) {
		return ErrNotAuthorized
	}

	message := fmt.Sprintf("Remove project: %s", p.Name)
	recordPath := h.recordsPath + "/" + id + catalog.RecordExt
	if err := h.gh.DeleteFile(h.owner, h.repoName, recordPath, sha, message, h.branch); err != nil {
		return err
	}

	h.invalidate()
	return nil
}

func validate(draft Draft) error {
	var missing []string
	if draft.Name == "" {
		missing = append(missing, "name")
	}
	if draft.Repository == "" {
		missing = append(missing, "repository")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	if _, _, err := catalog.SplitRepoURL(draft.Repository); err != nil {
		return err
	}
	return nil
}

// checkContributor confirms login appears in the target repository's
// contributor listing (case-insensitive).
func (h *Handler) checkContributor(repoURL, login string) error {
	owner, repo, err := catalog.SplitRepoURL(repoURL)
	if err != nil {
		return err
	}
	contributors, err := h.gh.ListContributors(owner, repo)
	if err != nil {
		return fmt.Errorf("listing contributors of %s/%s: %w", owner, repo, err)
	}
	for _, c := range contributors {
		if strings.EqualFold(c.Login, login) {
			return nil
		}
	}
	return ErrNotAuthorized
}

// existingRecord probes for a record with the same slug. NotFound means
// this is a fresh submission, not an error.
func (h *Handler) existingRecord(id string) (*catalog.Project, string, error) {
	p, sha, err := h.repo.ReadRecord(id)
	if errors.Is(err, github.ErrNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return &p, sha, nil
}

// uploadLogo commits the logo next to the records, overwriting any prior
// logo at the same path.
func (h *Handler) uploadLogo(projectName, logoFile string) (string, error) {
	data, err := os.ReadFile(logoFile)
	if err != nil {
		return "", fmt.Errorf("reading logo: %w", err)
	}
	logoPath := catalog.LogoPath(projectName, filepath.Ext(logoFile))

	// A prior logo at this path is overwritten; NotFound just means there
	// is nothing to replace.
	_, priorSHA, err := h.gh.GetFileContent(h.owner, h.repoName, logoPath, h.branch)
	if err != nil && !errors.Is(err, github.ErrNotFound) {
		return "", err
	}

	message := fmt.Sprintf("Add logo for %s", projectName)
	if err := h.gh.PutFile(h.owner, h.repoName, logoPath, data, message, h.branch, priorSHA); err != nil {
		return "", err
	}
	return logoPath, nil
}

func (h *Handler) invalidate() {
	h.cache.Invalidate()
	if h.snap != nil {
		_ = h.snap.Invalidate()
	}
}
