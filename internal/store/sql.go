package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mediafeed/internal/models"
)

// SQLStore runs against postgres or sqlite through sqlx. Queries use
// positional $n binds, which both drivers accept, and never rely on
// database-generated ids or timestamps.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// ---------------------- POSTS ----------------------

func (s *SQLStore) CreatePost(ctx context.Context, p *models.Post) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (id, caption, url, file_type, file_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Caption, p.URL, p.FileType, p.FileName, p.CreatedAt)
	return err
}

func (s *SQLStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.SelectContext(ctx, &posts, `
		SELECT id, caption, url, file_type, file_name, created_at
		FROM posts
		ORDER BY created_at DESC
	`)
	return posts, err
}

func (s *SQLStore) PostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := s.db.GetContext(ctx, &post, `
		SELECT id, caption, url, file_type, file_name, created_at
		FROM posts
		WHERE id=$1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *SQLStore) DeletePost(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPostNotFound
	}
	return nil
}

// ---------------------- USERS ----------------------

func (s *SQLStore) CreateUser(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, u.ID, u.Email, u.Password, u.CreatedAt)
	if err != nil {
		// the unique constraint on email is the usual culprit
		if _, lookupErr := s.UserByEmail(ctx, u.Email); lookupErr == nil {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *SQLStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email=$1
	`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id=$1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ------------------ REFRESH TOKENS ------------------

func (s *SQLStore) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, token, userID, expiresAt)
	return err
}

func (s *SQLStore) RefreshTokenValid(ctx context.Context, token string, userID uuid.UUID, now time.Time) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM refresh_tokens
			WHERE token=$1 AND user_id=$2 AND expires_at > $3
		)
	`, token, userID, now)
	return exists, err
}

func (s *SQLStore) DeleteRefreshToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token=$1`, token)
	return err
}
