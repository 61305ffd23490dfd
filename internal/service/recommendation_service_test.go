package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ur-campus-api/internal/models"
	"github.com/noah-isme/ur-campus-api/internal/repository"
	"github.com/noah-isme/ur-campus-api/internal/view"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

var (
	planner  = models.Identity{ID: "1", Name: "CAMPUS PLANNER", Role: models.RoleAdmin}
	karangwa = models.Identity{ID: "2", Name: "Karangwa", Role: models.RoleStaff, Department: "Computer Science"}
)

func newRecommendationFixture() *RecommendationService {
	return NewRecommendationService(repository.NewRecommendationRepository(repository.SeedRecommendations()), nil, nil, nil, ProviderLatency{})
}

func recommendationIDs(items []models.AIRecommendation) []string {
	ids := make([]string, 0, len(items))
	for _, r := range items {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestRecommendationServiceUpdateStatusIsUnguarded(t *testing.T) {
	svc := newRecommendationFixture()
	ctx := context.Background()

	rec, err := svc.UpdateStatus(ctx, "ai-002", models.UpdateRecommendationStatusRequest{Status: models.RecommendationPending}, planner)
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationPending, rec.Status)
	assert.Len(t, rec.ReviewComments, 1)

	rec, err = svc.UpdateStatus(ctx, "ai-002", models.UpdateRecommendationStatusRequest{Status: models.RecommendationRejected, Comment: "Over budget"}, planner)
	require.NoError(t, err)
	require.Len(t, rec.ReviewComments, 2)
	assert.Equal(t, "Over budget", rec.ReviewComments[1].Text)
	assert.Equal(t, "1", rec.ReviewComments[1].UserID)
}

func TestRecommendationServiceReviewPolicy(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		reviewer models.Identity
		id       string
		status   models.RecommendationStatus
		allowed  bool
	}{
		{"admin approves pending", planner, "ai-001", models.RecommendationApproved, true},
		{"admin rejects pending", planner, "ai-004", models.RecommendationRejected, true},
		{"admin cannot approve approved", planner, "ai-002", models.RecommendationApproved, false},
		{"admin flags approved", planner, "ai-002", models.RecommendationFlagged, true},
		{"admin cannot flag pending", planner, "ai-006", models.RecommendationFlagged, false},
		{"staff flags", karangwa, "ai-001", models.RecommendationFlagged, true},
		{"staff cannot approve", karangwa, "ai-001", models.RecommendationApproved, false},
		{"student has no actions", simon, "ai-001", models.RecommendationFlagged, false},
		{"nobody resets to pending", planner, "ai-003", models.RecommendationPending, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newRecommendationFixture()
			rec, err := svc.Review(ctx, tc.id, models.UpdateRecommendationStatusRequest{Status: tc.status}, tc.reviewer)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.status, rec.Status)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, appErrors.ErrForbidden))
		})
	}
}

func TestRecommendationServiceReviewUnknown(t *testing.T) {
	svc := newRecommendationFixture()
	_, err := svc.Review(context.Background(), "ai-404", models.UpdateRecommendationStatusRequest{Status: models.RecommendationFlagged}, planner)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestRecommendationServiceBrowseStaffScope(t *testing.T) {
	svc := newRecommendationFixture()
	v := view.Viewer{Identity: karangwa, Assigned: []string{"fac-004"}}

	items, err := svc.Browse(context.Background(), v, view.RecommendationFilters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ai-001", "ai-004"}, recommendationIDs(items))

	items, err = svc.Browse(context.Background(), v, view.RecommendationFilters{Impact: "high", Type: "relocation"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ai-004"}, recommendationIDs(items))
}

func TestRecommendationServiceAddComment(t *testing.T) {
	svc := newRecommendationFixture()
	rec, err := svc.AddComment(context.Background(), "ai-001", models.AddCommentRequest{Text: "Checking budget"}, karangwa)
	require.NoError(t, err)
	require.NotEmpty(t, rec.ReviewComments)
	assert.Equal(t, "Checking budget", rec.ReviewComments[len(rec.ReviewComments)-1].Text)
}
