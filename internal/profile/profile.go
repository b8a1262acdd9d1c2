// Package profile persists candidate metadata. The scoring core only reads
// months of experience and the wage expectation from it before finalizing.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Profile is the candidate metadata supplied by the intake step.
type Profile struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Position         string    `json:"position"`
	MonthsExperience int       `json:"months_experience"`
	WageExpectation  int       `json:"wage_expectation"`
	CreatedAt        time.Time `json:"created_at"`
}

// Validate checks the fields the scoring core depends on.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("profile id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("candidate name is required")
	}
	if p.MonthsExperience < 0 {
		return fmt.Errorf("months of experience must not be negative, got %d", p.MonthsExperience)
	}
	if p.WageExpectation < 0 {
		return fmt.Errorf("wage expectation must not be negative, got %d", p.WageExpectation)
	}
	return nil
}

// FileStore keeps one JSON file per candidate under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a profile store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save validates and persists the profile.
func (s *FileStore) Save(p *Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating profile directory %q: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile %q: %w", p.ID, err)
	}

	if err := os.WriteFile(s.path(p.ID), data, 0o644); err != nil {
		return fmt.Errorf("writing profile %q: %w", p.ID, err)
	}

	return nil
}

// Load reads the profile for the given candidate id.
func (s *FileStore) Load(id string) (*Profile, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("reading profile %q: %w", id, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile %q: %w", id, err)
	}

	return &p, nil
}

// List returns the candidate ids with stored profiles.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile directory %q: %w", s.dir, err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}

	return ids, nil
}
