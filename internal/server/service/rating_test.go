package service

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage"
)

func newTestRatingService(posts *mockPostStorage, ratings *mockRatingStorage) *RatingService {
	return NewRatingService(testLogger(), posts, ratings)
}

func seedPost(posts *mockPostStorage) string {
	postID := uuid.New().String()
	posts.posts[postID] = &models.Post{ID: postID, Title: "A post", Content: "some content here"}
	return postID
}

func TestRatingService_FirstRating(t *testing.T) {
	ctx := context.Background()
	posts := newMockPostStorage()
	ratings := newMockRatingStorage()
	svc := newTestRatingService(posts, ratings)

	postID := seedPost(posts)

	avg, err := svc.RatePost(ctx, postID, "user-1", 4.0)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avg, 1e-9)

	rows, err := ratings.GetRatingsByPostAndUser(ctx, postID, "user-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4.0, rows[0].Rating)
}

func TestRatingService_RatingIsOverwrittenNotAppended(t *testing.T) {
	ctx := context.Background()
	posts := newMockPostStorage()
	ratings := newMockRatingStorage()
	svc := newTestRatingService(posts, ratings)

	postID := seedPost(posts)

	_, err := svc.RatePost(ctx, postID, "user-1", 2.0)
	require.NoError(t, err)

	avg, err := svc.RatePost(ctx, postID, "user-1", 5.0)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, avg, 1e-9)

	rows, err := ratings.GetRatingsByPostAndUser(ctx, postID, "user-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5.0, rows[0].Rating)
}

func TestRatingService_AverageAcrossUsers(t *testing.T) {
	ctx := context.Background()
	posts := newMockPostStorage()
	ratings := newMockRatingStorage()
	svc := newTestRatingService(posts, ratings)

	postID := seedPost(posts)

	_, err := svc.RatePost(ctx, postID, "user-1", 2.0)
	require.NoError(t, err)

	avg, err := svc.RatePost(ctx, postID, "user-2", 4.0)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, avg, 1e-9)
}

// Pre-existing duplicate rows for one (post, user) pair must be healed:
// the lowest-ID row takes the new value, all others are deleted.
func TestRatingService_RepairsDuplicateRows(t *testing.T) {
	ctx := context.Background()
	posts := newMockPostStorage()
	ratings := newMockRatingStorage()
	svc := newTestRatingService(posts, ratings)

	postID := seedPost(posts)

	canonical := ratings.seed(postID, "user-1", 1.0)
	dup1 := ratings.seed(postID, "user-1", 2.0)
	dup2 := ratings.seed(postID, "user-1", 3.0)
	other := ratings.seed(postID, "user-2", 5.0)

	avg, err := svc.RatePost(ctx, postID, "user-1", 4.0)
	require.NoError(t, err)

	// Average over the healed state: {4.0, 5.0}
	assert.InDelta(t, 4.5, avg, 1e-9)

	rows, err := ratings.GetRatingsByPostAndUser(ctx, postID, "user-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, canonical.ID, rows[0].ID)
	assert.Equal(t, 4.0, rows[0].Rating)

	assert.ElementsMatch(t, []int64{dup1.ID, dup2.ID}, ratings.deleteCalls)

	// The other user's rating is untouched
	otherRows, err := ratings.GetRatingsByPostAndUser(ctx, postID, "user-2")
	require.NoError(t, err)
	require.Len(t, otherRows, 1)
	assert.Equal(t, other.ID, otherRows[0].ID)
}

func TestRatingService_InsertRaceFallsBackToUpdate(t *testing.T) {
	ctx := context.Background()
	posts := newMockPostStorage()
	ratings := newMockRatingStorage()
	svc := newTestRatingService(posts, ratings)

	postID := seedPost(posts)

	// First fetch sees no rows, but the insert hits the unique constraint
	// as if a concurrent request won the race
	ratings.insertError = storage.ErrDuplicateRating
	raced := ratings.seed(postID, "user-1", 1.5)

	avg, err := svc.RatePost(ctx, postID, "user-1", 3.0)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, avg, 1e-9)
	assert.Equal(t, []int64{raced.ID}, ratings.updateCalls)
}

func TestRatingService_Errors(t *testing.T) {
	ctx := context.Background()
	posts := newMockPostStorage()
	ratings := newMockRatingStorage()
	svc := newTestRatingService(posts, ratings)

	postID := seedPost(posts)

	t.Run("unknown post", func(t *testing.T) {
		_, err := svc.RatePost(ctx, uuid.New().String(), "user-1", 3.0)
		assert.ErrorIs(t, err, storage.ErrPostNotFound)
	})

	t.Run("value out of range", func(t *testing.T) {
		// NaN compares false against both bounds, so it needs its own check
		for _, v := range []float64{0.0, 0.49, 5.01, -1.0, math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := svc.RatePost(ctx, postID, "user-1", v)
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
	})

	t.Run("boundary values accepted", func(t *testing.T) {
		_, err := svc.RatePost(ctx, postID, "user-min", MinRatingValue)
		assert.NoError(t, err)
		_, err = svc.RatePost(ctx, postID, "user-max", MaxRatingValue)
		assert.NoError(t, err)
	})
}
