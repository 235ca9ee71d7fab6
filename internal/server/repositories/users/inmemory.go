package users

import (
	"context"
	"sync"
	"time"

	"github.com/avagulans/inkpost/internal/common"
	"github.com/avagulans/inkpost/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository is a map-backed Repository used for local development
// and HTTP-level tests. It enforces the same uniqueness rules as the
// database schema.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User // keyed by username
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*models.User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return nil, common.ErrorConflict
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, common.ErrorConflict
		}
	}

	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()
	r.users[stored.Username] = &stored

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

// UsernameByID resolves a stored user's ID back to the username. The
// in-memory blogs repository uses it to fill in author names the way the
// SQL implementation does with a join.
func (r *InMemoryRepository) UsernameByID(ctx context.Context, id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return u.Username, true
		}
	}
	return "", false
}

// Delete removes a user by username. It exists for the stricter identity
// resolution path: a valid token whose subject has been deleted must stop
// authenticating.
func (r *InMemoryRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; !ok {
		return common.ErrorNotFound
	}
	delete(r.users, username)
	return nil
}
