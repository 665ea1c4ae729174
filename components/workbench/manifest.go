package workbench

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// WorkspaceManifest is the YAML document describing saved virtual tables and
// dashboards so a workspace can be exported and re-seeded declaratively.
type WorkspaceManifest struct {
	Version    string         `json:"version" yaml:"version"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Tables     []VirtualTable `json:"tables,omitempty" yaml:"tables,omitempty"`
	Dashboards []Dashboard    `json:"dashboards,omitempty" yaml:"dashboards,omitempty"`
	Source     string         `json:"-" yaml:"-"`
}

// ReadWorkspaceManifest loads a manifest file from disk.
func ReadWorkspaceManifest(path string) (*WorkspaceManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("workbench: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeWorkspaceManifest(f)
	if err != nil {
		return nil, fmt.Errorf("workbench: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeWorkspaceManifest reads a manifest from any reader.
func DecodeWorkspaceManifest(r io.Reader) (*WorkspaceManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc WorkspaceManifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("workbench: manifest is empty")
		}
		return nil, fmt.Errorf("workbench: parse manifest: %w", err)
	}
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *WorkspaceManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("workbench: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Tables))
	for idx, vt := range doc.Tables {
		if vt.ID == "" {
			return fmt.Errorf("workbench: manifest table at index %d is missing an id", idx)
		}
		if vt.Name == "" {
			return fmt.Errorf("workbench: manifest table %s is missing a name", vt.ID)
		}
		if _, dup := seen[vt.ID]; dup {
			return fmt.Errorf("workbench: manifest duplicates table id %s", vt.ID)
		}
		seen[vt.ID] = struct{}{}
	}
	boards := make(map[string]struct{}, len(doc.Dashboards))
	for idx, d := range doc.Dashboards {
		if d.ID == "" {
			return fmt.Errorf("workbench: manifest dashboard at index %d is missing an id", idx)
		}
		if _, dup := boards[d.ID]; dup {
			return fmt.Errorf("workbench: manifest duplicates dashboard id %s", d.ID)
		}
		boards[d.ID] = struct{}{}
	}
	return nil
}

// WriteWorkspaceManifest saves the manifest to disk as YAML.
func WriteWorkspaceManifest(path string, doc *WorkspaceManifest) error {
	if doc == nil {
		return fmt.Errorf("workbench: manifest document is nil")
	}
	tmp := *doc
	tmp.Source = ""
	if tmp.Version == "" {
		tmp.Version = manifestVersionV1
	}
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("workbench: create manifest %s: %w", path, err)
	}
	defer f.Close()
	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmp); err != nil {
		return fmt.Errorf("workbench: write manifest: %w", err)
	}
	return nil
}
