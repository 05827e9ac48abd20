package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Artifact describes one stored output of an analysis run.
type Artifact struct {
	ID        string    `json:"id"`        // Artifact identifier
	Type      string    `json:"type"`      // Artifact type (json, markdown, xlsx, png)
	Name      string    `json:"name"`      // Human-readable name
	Path      string    `json:"path"`      // Location on disk
	CreatedAt time.Time `json:"createdAt"` // Creation timestamp
}

// Store persists analysis artifacts under a base directory and keeps a
// JSON manifest alongside them.
type Store struct {
	basePath string
	logger   *zap.Logger
}

// NewStore creates the base directory if needed.
func NewStore(basePath string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &Store{basePath: basePath, logger: logger}, nil
}

// Dir returns the base directory artifacts are written into.
func (s *Store) Dir() string { return s.basePath }

// StoreJSON marshals v into name under the base directory and records it
// in the manifest.
func (s *Store) StoreJSON(name string, v interface{}) (*Artifact, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal artifact %s: %w", name, err)
	}
	path := filepath.Join(s.basePath, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return s.Track("json", name, path)
}

// Track records a file produced elsewhere (charts, workbooks) in the
// manifest without rewriting it.
func (s *Store) Track(artifactType, name, path string) (*Artifact, error) {
	a := &Artifact{
		ID:        uuid.NewString(),
		Type:      artifactType,
		Name:      name,
		Path:      path,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.appendManifest(a); err != nil {
		return nil, err
	}
	s.logger.Info("artifact stored",
		zap.String("id", a.ID),
		zap.String("type", a.Type),
		zap.String("path", a.Path))
	return a, nil
}

// List returns all manifest entries sorted by creation time.
func (s *Store) List() ([]Artifact, error) {
	artifacts, err := s.readManifest()
	if err != nil {
		return nil, err
	}
	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].CreatedAt.Before(artifacts[j].CreatedAt)
	})
	return artifacts, nil
}

func (s *Store) manifestPath() string {
	return filepath.Join(s.basePath, "manifest.json")
}

func (s *Store) readManifest() ([]Artifact, error) {
	data, err := os.ReadFile(s.manifestPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var artifacts []Artifact
	if err := json.Unmarshal(data, &artifacts); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return artifacts, nil
}

func (s *Store) appendManifest(a *Artifact) error {
	artifacts, err := s.readManifest()
	if err != nil {
		return err
	}
	artifacts = append(artifacts, *a)
	data, err := json.MarshalIndent(artifacts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(s.manifestPath(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
