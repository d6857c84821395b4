package catalog

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// RecordExt is the file extension of directory records.
const RecordExt = ".yml"

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives the filesystem-safe basename used for a project's record
// and logo files from its display name.
func Slug(name string) string {
	s := slugUnsafe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// RecordPath returns the record file path for a project name under recordsDir.
func RecordPath(recordsDir, name string) string {
	return path.Join(recordsDir, Slug(name)+RecordExt)
}

// LogoPath returns the committed logo asset path for a project name.
// ext includes the leading dot.
func LogoPath(name, ext string) string {
	return path.Join("assets", "logos", Slug(name)+"-logo"+ext)
}

// IDFromFilename derives a project ID from its record file name.
func IDFromFilename(filename string) string {
	return strings.TrimSuffix(filename, RecordExt)
}

// ParseRecord decodes one record file into a Project. Decoding is strict:
// unknown fields and missing required fields reject the record rather than
// defaulting silently.
func ParseRecord(id string, data []byte) (Project, error) {
	var p Project
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return Project{}, fmt.Errorf("record %s: empty file", id)
		}
		return Project{}, fmt.Errorf("record %s: %w", id, err)
	}
	if p.Name == "" {
		return Project{}, fmt.Errorf("record %s: missing required field %q", id, "name")
	}
	if p.Repository == "" {
		return Project{}, fmt.Errorf("record %s: missing required field %q", id, "repository")
	}
	p.ID = id
	return p, nil
}

// MarshalRecord encodes a Project to the record format. Field order is
// stable and empty optional fields are omitted.
func MarshalRecord(p Project) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
