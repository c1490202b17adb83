package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"mediafeed/internal/models"
)

type refreshToken struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// MemoryStore keeps everything in process memory. It backs handler tests
// and throwaway runs; ordering matches the SQL store (created_at
// descending, newest insert first on ties).
type MemoryStore struct {
	mu      sync.RWMutex
	posts   map[uuid.UUID]models.Post
	seq     map[uuid.UUID]int
	nextSeq int
	users   map[uuid.UUID]models.User
	emails  map[string]uuid.UUID
	tokens  map[string]refreshToken
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:  make(map[uuid.UUID]models.Post),
		seq:    make(map[uuid.UUID]int),
		users:  make(map[uuid.UUID]models.User),
		emails: make(map[string]uuid.UUID),
		tokens: make(map[string]refreshToken),
	}
}

// ---------------------- POSTS ----------------------

func (s *MemoryStore) CreatePost(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	s.posts[p.ID] = *p
	s.seq[p.ID] = s.nextSeq
	return nil
}

func (s *MemoryStore) ListPosts(_ context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return s.seq[a.ID] > s.seq[b.ID]
	})
	return posts, nil
}

func (s *MemoryStore) PostByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	return &p, nil
}

func (s *MemoryStore) DeletePost(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return ErrPostNotFound
	}
	delete(s.posts, id)
	delete(s.seq, id)
	return nil
}

// ---------------------- USERS ----------------------

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[u.Email]; ok {
		return ErrEmailTaken
	}
	s.users[u.ID] = *u
	s.emails[u.Email] = u.ID
	return nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *MemoryStore) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// ------------------ REFRESH TOKENS ------------------

func (s *MemoryStore) SaveRefreshToken(_ context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = refreshToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s *MemoryStore) RefreshTokenValid(_ context.Context, token string, userID uuid.UUID, now time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tokens[token]
	return ok && t.userID == userID && t.expiresAt.After(now), nil
}

func (s *MemoryStore) DeleteRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, token)
	return nil
}
