package blogs

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/avagulans/inkpost/internal/server/models"
	"github.com/google/uuid"
)

// usernameLookup resolves a user ID to a username for the AuthorUsername
// field; the in-memory users repository satisfies it via an adapter in the
// store manager.
type usernameLookup func(ctx context.Context, userID string) (string, bool)

// InMemoryRepository is a map-backed Repository used for local development
// and HTTP-level tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	blogs    map[string]*models.Blog
	username usernameLookup
}

func NewInMemoryRepository(lookup func(ctx context.Context, userID string) (string, bool)) *InMemoryRepository {
	return &InMemoryRepository{blogs: make(map[string]*models.Blog), username: lookup}
}

func (r *InMemoryRepository) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *blog
	stored.ID = uuid.NewString()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.blogs[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) ListAll(ctx context.Context) ([]*models.Blog, error) {
	return r.list(ctx, func(*models.Blog) bool { return true })
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.Blog, error) {
	return r.list(ctx, func(b *models.Blog) bool { return b.UserID == userID })
}

func (r *InMemoryRepository) list(ctx context.Context, keep func(*models.Blog) bool) ([]*models.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.Blog{}
	for _, b := range r.blogs {
		if !keep(b) {
			continue
		}
		out := *b
		if r.username != nil {
			if name, ok := r.username(ctx, b.UserID); ok {
				out.AuthorUsername = name
			}
		}
		result = append(result, &out)
	}

	// newest first, matching the SQL ordering
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
