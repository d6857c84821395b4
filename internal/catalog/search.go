package catalog

import (
	"sort"
	"strings"
)

// Facets are the filterable attribute values derived from the directory.
type Facets struct {
	Languages []string
	Tags      []string
}

// CollectFacets unions the language and tag values across all projects.
// Both lists are sorted ascending for display stability.
func CollectFacets(projects []Project) Facets {
	languages := map[string]bool{}
	tags := map[string]bool{}
	for _, p := range projects {
		if p.Language != "" {
			languages[p.Language] = true
		}
		for _, t := range p.Tags {
			tags[t] = true
		}
	}
	return Facets{
		Languages: sortedKeys(languages),
		Tags:      sortedKeys(tags),
	}
}

// Filter holds search criteria. All non-empty criteria must match
// (conjunction); within Languages and Tags any selected value matches
// (disjunction). An empty selection matches everything.
type Filter struct {
	Query     string
	Languages []string
	Tags      []string
}

// Apply returns the subset of projects matching the filter, preserving order.
func (f Filter) Apply(projects []Project) []Project {
	var out []Project
	for _, p := range projects {
		if f.Query != "" && !matchesQuery(p, f.Query) {
			continue
		}
		if len(f.Languages) > 0 && !contains(f.Languages, p.Language) {
			continue
		}
		if len(f.Tags) > 0 && !anyTag(p.Tags, f.Tags) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p Project, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Description), q)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func anyTag(projectTags, selected []string) bool {
	for _, t := range projectTags {
		if contains(selected, t) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
