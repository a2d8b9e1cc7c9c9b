package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/cutstock/core/internal/domain"
)

// jobFile is the on-disk JSON shape for a persisted job set.
type jobFile struct {
	Jobs []domain.Job `json:"jobs"`
}

// SaveJobs writes every job currently held by s to path as indented JSON.
func SaveJobs(path string, s *InMemoryJobStore) error {
	s.mu.RLock()
	jobs := make([]domain.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j)
	}
	s.mu.RUnlock()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(jobFile{Jobs: jobs}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJobs populates s from the JSON file at path. A missing file leaves
// s unchanged and returns no error, the same "empty is fine" contract the
// teacher's LoadCustomProfiles uses for a first run.
func LoadJobs(path string, s *InMemoryJobStore) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var file jobFile
	if err := json.Unmarshal(data, &file); err != nil {
		return err
	}
	for _, j := range file.Jobs {
		s.Put(j)
	}
	return nil
}
