package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutstock/core/internal/domain"
)

func TestLoadJobs_MissingFileIsNotAnError(t *testing.T) {
	s := NewInMemoryJobStore()
	err := LoadJobs(filepath.Join(t.TempDir(), "missing.json"), s)
	assert.NoError(t, err)
}

func TestSaveThenLoadJobs_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	s := NewInMemoryJobStore()
	s.Put(domain.Job{ID: "job-1", Items: []domain.JobItem{{ID: "p1", Length: 500, Quantity: 2}}})

	require.NoError(t, SaveJobs(path, s))

	loaded := NewInMemoryJobStore()
	require.NoError(t, LoadJobs(path, loaded))
	job, err := loaded.LoadJob(context.Background(), "job-1")
	require.NoError(t, err)
	require.Len(t, job.Items, 1)
	assert.Equal(t, 500, job.Items[0].Length)
}
