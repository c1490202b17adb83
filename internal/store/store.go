package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"mediafeed/internal/models"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already exists")
)

// Store is the persistence boundary for posts, users and refresh tokens.
// Two implementations exist: the sqlx-backed SQLStore and an in-memory
// store used by tests.
type Store interface {
	CreatePost(ctx context.Context, p *models.Post) error
	ListPosts(ctx context.Context) ([]models.Post, error)
	PostByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error

	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	RefreshTokenValid(ctx context.Context, token string, userID uuid.UUID, now time.Time) (bool, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}
