package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// In-memory database keeps tests hermetic
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage) string {
	t.Helper()

	userID := uuid.New().String()
	user := &models.User{
		ID:             userID,
		Username:       "testuser_" + userID[:8],
		Email:          "user_" + userID[:8] + "@example.com",
		PasswordHash:   "$2a$10$examplehash",
		RecoveryPhrase: "my recovery phrase",
		CreatedAt:      time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	return userID
}

func createTestPost(t *testing.T, ctx context.Context, s *Storage, authorID string) string {
	t.Helper()

	postID := uuid.New().String()
	post := &models.Post{
		ID:        postID,
		Title:     "Test post title",
		Content:   "Test post content, long enough",
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreatePost(ctx, post))

	return postID
}

// dropRatingUniqueIndex removes the (post_id, user_id) unique index so
// tests can seed the dirty duplicate-rows state that repair must handle.
func dropRatingUniqueIndex(t *testing.T, s *Storage) {
	t.Helper()

	_, err := s.DB().Exec(`DROP INDEX unique_post_user_rating`)
	require.NoError(t, err)
}

func TestStorage_Ping(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.Ping(context.Background()))
}
