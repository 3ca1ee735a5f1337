package service

import (
	"context"
	"sort"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/models"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage"
)

// mockUserStorage is an in-memory UserStorage for testing
type mockUserStorage struct {
	users       map[string]*models.User // ID -> User
	createError error
	getError    error
	updateError error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return storage.ErrUserAlreadyExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserStorage) ListUsers(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *mockUserStorage) UpdateUser(ctx context.Context, user *models.User) error {
	if m.updateError != nil {
		return m.updateError
	}
	if _, ok := m.users[user.ID]; !ok {
		return storage.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStorage) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	if m.updateError != nil {
		return m.updateError
	}
	u, ok := m.users[userID]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockUserStorage) DeleteUser(ctx context.Context, userID string) error {
	if _, ok := m.users[userID]; !ok {
		return storage.ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

// mockPostStorage is an in-memory PostStorage for testing
type mockPostStorage struct {
	posts       map[string]*models.Post // ID -> Post
	existsError error
}

func newMockPostStorage() *mockPostStorage {
	return &mockPostStorage{posts: make(map[string]*models.Post)}
}

func (m *mockPostStorage) CreatePost(ctx context.Context, post *models.Post) error {
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostStorage) GetPostByID(ctx context.Context, postID string) (*models.Post, error) {
	p, ok := m.posts[postID]
	if !ok {
		return nil, storage.ErrPostNotFound
	}
	return p, nil
}

func (m *mockPostStorage) ListPosts(ctx context.Context, filter storage.PostFilter) ([]*models.Post, int, error) {
	posts := make([]*models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, len(posts), nil
}

func (m *mockPostStorage) UpdatePost(ctx context.Context, post *models.Post) error {
	if _, ok := m.posts[post.ID]; !ok {
		return storage.ErrPostNotFound
	}
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostStorage) SetPublished(ctx context.Context, postID string, published bool) error {
	p, ok := m.posts[postID]
	if !ok {
		return storage.ErrPostNotFound
	}
	p.IsPublished = published
	return nil
}

func (m *mockPostStorage) DeletePost(ctx context.Context, postID string) error {
	if _, ok := m.posts[postID]; !ok {
		return storage.ErrPostNotFound
	}
	delete(m.posts, postID)
	return nil
}

func (m *mockPostStorage) PostExists(ctx context.Context, postID string) (bool, error) {
	if m.existsError != nil {
		return false, m.existsError
	}
	_, ok := m.posts[postID]
	return ok, nil
}

// mockTagStorage is an in-memory TagStorage for testing
type mockTagStorage struct {
	tags []*models.Tag
}

func (m *mockTagStorage) CreateTag(ctx context.Context, tag *models.Tag) error {
	for _, t := range m.tags {
		if t.Name == tag.Name {
			return storage.ErrTagAlreadyExists
		}
	}
	m.tags = append(m.tags, tag)
	return nil
}

func (m *mockTagStorage) GetTagByID(ctx context.Context, tagID string) (*models.Tag, error) {
	for _, t := range m.tags {
		if t.ID == tagID {
			return t, nil
		}
	}
	return nil, storage.ErrTagNotFound
}

func (m *mockTagStorage) GetTagsByIDs(ctx context.Context, tagIDs []string) ([]models.Tag, error) {
	var out []models.Tag
	for _, id := range tagIDs {
		for _, t := range m.tags {
			if t.ID == id {
				out = append(out, *t)
			}
		}
	}
	return out, nil
}

func (m *mockTagStorage) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return m.tags, nil
}

func (m *mockTagStorage) DeleteTag(ctx context.Context, tagID string) error {
	for i, t := range m.tags {
		if t.ID == tagID {
			m.tags = append(m.tags[:i], m.tags[i+1:]...)
			return nil
		}
	}
	return storage.ErrTagNotFound
}

// mockRatingStorage is an in-memory RatingStorage for testing. It keeps
// rows in a slice so tests can seed duplicate (post, user) rows that a
// real unique index would reject.
type mockRatingStorage struct {
	rows        []*models.Rating
	nextID      int64
	insertError error
	updateCalls []int64
	deleteCalls []int64
}

func newMockRatingStorage() *mockRatingStorage {
	return &mockRatingStorage{nextID: 1}
}

func (m *mockRatingStorage) seed(postID, userID string, value float64) *models.Rating {
	r := &models.Rating{ID: m.nextID, PostID: postID, UserID: userID, Rating: value}
	m.nextID++
	m.rows = append(m.rows, r)
	return r
}

func (m *mockRatingStorage) GetRatingsByPostAndUser(ctx context.Context, postID, userID string) ([]*models.Rating, error) {
	var out []*models.Rating
	for _, r := range m.rows {
		if r.PostID == postID && r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRatingStorage) InsertRating(ctx context.Context, rating *models.Rating) error {
	if m.insertError != nil {
		return m.insertError
	}
	for _, r := range m.rows {
		if r.PostID == rating.PostID && r.UserID == rating.UserID {
			return storage.ErrDuplicateRating
		}
	}
	rating.ID = m.nextID
	m.nextID++
	m.rows = append(m.rows, rating)
	return nil
}

func (m *mockRatingStorage) UpdateRatingValue(ctx context.Context, ratingID int64, value float64) error {
	m.updateCalls = append(m.updateCalls, ratingID)
	for _, r := range m.rows {
		if r.ID == ratingID {
			r.Rating = value
			return nil
		}
	}
	return storage.ErrRatingNotFound
}

func (m *mockRatingStorage) DeleteRating(ctx context.Context, ratingID int64) error {
	m.deleteCalls = append(m.deleteCalls, ratingID)
	for i, r := range m.rows {
		if r.ID == ratingID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return storage.ErrRatingNotFound
}

func (m *mockRatingStorage) AverageRatingByPost(ctx context.Context, postID string) (float64, error) {
	var sum float64
	var n int
	for _, r := range m.rows {
		if r.PostID == postID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0.0, nil
	}
	return sum / float64(n), nil
}

func (m *mockRatingStorage) GetUserRatingForPost(ctx context.Context, postID, userID string) (*float64, error) {
	rows, _ := m.GetRatingsByPostAndUser(ctx, postID, userID)
	if len(rows) == 0 {
		return nil, nil
	}
	v := rows[0].Rating
	return &v, nil
}
