package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

func TestReportRepositoryCreateAndComplete(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := NewReportRepository(SeedReports(now))

	report := &models.Report{ID: "rep-new", Title: "Usage", AuthorID: "2", Status: models.ReportGenerating, CreatedAt: now}
	require.NoError(t, repo.Create(context.Background(), report))
	assert.ErrorIs(t, repo.Create(context.Background(), report), ErrDuplicate)

	updated, err := repo.Update(context.Background(), "rep-new", func(r *models.Report) error {
		r.Status = models.ReportCompleted
		r.CompletedAt = &now
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportCompleted, updated.Status)

	mine, err := repo.ListByAuthor(context.Background(), "2")
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}

func TestReportRepositoryReturnsCopies(t *testing.T) {
	now := time.Now()
	repo := NewReportRepository(SeedReports(now))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, all)
	all[0].Title = "mutated"

	again, err := repo.FindByID(context.Background(), all[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.Title)
}

func TestReportRepositoryDelete(t *testing.T) {
	repo := NewReportRepository(nil)
	require.NoError(t, repo.Create(context.Background(), &models.Report{ID: "r1"}))
	require.NoError(t, repo.Delete(context.Background(), "r1"))
	_, err := repo.FindByID(context.Background(), "r1")
	assert.ErrorIs(t, err, ErrNotFound)
}
