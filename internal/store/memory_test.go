package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediafeed/internal/models"
)

func newPost(caption string, createdAt time.Time) *models.Post {
	return &models.Post{
		ID:        uuid.New(),
		Caption:   caption,
		URL:       "https://media.example/" + caption + ".png",
		FileType:  models.FileTypeImage,
		FileName:  caption + ".png",
		CreatedAt: createdAt,
	}
}

func TestMemoryStorePostLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := newPost("older", base)
	newer := newPost("newer", base.Add(time.Minute))

	require.NoError(t, s.CreatePost(ctx, older))
	require.NoError(t, s.CreatePost(ctx, newer))

	posts, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID, "newest first")
	assert.Equal(t, older.ID, posts[1].ID)

	got, err := s.PostByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older.Caption, got.Caption)

	require.NoError(t, s.DeletePost(ctx, older.ID))

	_, err = s.PostByID(ctx, older.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	posts, err = s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, newer.ID, posts[0].ID)
}

func TestMemoryStoreDeleteMissingPost(t *testing.T) {
	s := NewMemoryStore()

	err := s.DeletePost(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestMemoryStoreTieBreakOnEqualTimestamps(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := newPost("first", at)
	second := newPost("second", at)

	require.NoError(t, s.CreatePost(ctx, first))
	require.NoError(t, s.CreatePost(ctx, second))

	posts, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID, "later insert wins the tie")
}

func TestMemoryStoreUsers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := &models.User{
		ID:        uuid.New(),
		Email:     "a@example.com",
		Password:  "hash",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.CreateUser(ctx, u))

	dup := &models.User{ID: uuid.New(), Email: "a@example.com"}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), ErrEmailTaken)

	got, err := s.UserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = s.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = s.UserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryStoreRefreshTokens(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	userID := uuid.New()
	now := time.Now()

	require.NoError(t, s.SaveRefreshToken(ctx, userID, "tok", now.Add(time.Hour)))

	valid, err := s.RefreshTokenValid(ctx, "tok", userID, now)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = s.RefreshTokenValid(ctx, "tok", uuid.New(), now)
	require.NoError(t, err)
	assert.False(t, valid, "token is bound to its user")

	valid, err = s.RefreshTokenValid(ctx, "tok", userID, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, valid, "expired token")

	require.NoError(t, s.DeleteRefreshToken(ctx, "tok"))

	valid, err = s.RefreshTokenValid(ctx, "tok", userID, now)
	require.NoError(t, err)
	assert.False(t, valid)
}
