package catalog_test

import (
	"reflect"
	"testing"

	"github.com/opencatalog/catalogctl/internal/catalog"
)

func sampleProjects() []catalog.Project {
	return []catalog.Project{
		{
			ID: "whisper", Name: "Whisper", Language: "Python",
			Description: "Robust speech recognition",
			Tags:        []string{"speech", "machine-learning"},
			Repository:  "https://github.com/openai/whisper",
		},
		{
			ID: "react", Name: "React", Language: "JavaScript",
			Description: "A declarative library for building user interfaces",
			Tags:        []string{"ui", "web"},
			Repository:  "https://github.com/facebook/react",
		},
		{
			ID: "tensorflow", Name: "TensorFlow", Language: "C++",
			Description: "An open-source machine learning framework",
			Tags:        []string{"machine-learning"},
			Repository:  "https://github.com/tensorflow/tensorflow",
		},
	}
}

func TestCollectFacets(t *testing.T) {
	f := catalog.CollectFacets(sampleProjects())
	wantLangs := []string{"C++", "JavaScript", "Python"}
	if !reflect.DeepEqual(f.Languages, wantLangs) {
		t.Errorf("Languages = %v, want %v", f.Languages, wantLangs)
	}
	wantTags := []string{"machine-learning", "speech", "ui", "web"}
	if !reflect.DeepEqual(f.Tags, wantTags) {
		t.Errorf("Tags = %v, want %v", f.Tags, wantTags)
	}
}

func TestCollectFacets_Empty(t *testing.T) {
	f := catalog.CollectFacets(nil)
	if len(f.Languages) != 0 || len(f.Tags) != 0 {
		t.Errorf("facets of empty directory: %+v", f)
	}
}

func TestFilter_EmptyMatchesAllInOrder(t *testing.T) {
	projects := sampleProjects()
	got := catalog.Filter{}.Apply(projects)
	if !reflect.DeepEqual(got, projects) {
		t.Errorf("empty filter changed the result: %v", ids(got))
	}
}

func TestFilter_QueryMatchesNameCaseInsensitive(t *testing.T) {
	got := catalog.Filter{Query: "react"}.Apply(sampleProjects())
	if len(got) != 1 || got[0].ID != "react" {
		t.Errorf("query filter: got %v", ids(got))
	}
}

func TestFilter_QueryMatchesDescription(t *testing.T) {
	got := catalog.Filter{Query: "SPEECH"}.Apply(sampleProjects())
	if len(got) != 1 || got[0].ID != "whisper" {
		t.Errorf("query filter on description: got %v", ids(got))
	}
}

func TestFilter_LanguageDisjunction(t *testing.T) {
	got := catalog.Filter{Languages: []string{"Python", "C++"}}.Apply(sampleProjects())
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", ids(got))
	}
	if got[0].ID != "whisper" || got[1].ID != "tensorflow" {
		t.Errorf("order not preserved: %v", ids(got))
	}
}

func TestFilter_TagIntersection(t *testing.T) {
	got := catalog.Filter{Tags: []string{"machine-learning"}}.Apply(sampleProjects())
	if len(got) != 2 {
		t.Errorf("tag filter: got %v", ids(got))
	}
}

func TestFilter_Conjunction(t *testing.T) {
	f := catalog.Filter{Query: "machine", Languages: []string{"C++"}, Tags: []string{"machine-learning"}}
	got := f.Apply(sampleProjects())
	if len(got) != 1 || got[0].ID != "tensorflow" {
		t.Errorf("conjunction: got %v", ids(got))
	}
}

func TestFilter_ConjunctionNoMatch(t *testing.T) {
	f := catalog.Filter{Query: "react", Languages: []string{"Python"}}
	got := f.Apply(sampleProjects())
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", ids(got))
	}
}

func ids(projects []catalog.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.ID
	}
	return out
}
