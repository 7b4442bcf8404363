package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/football-dashboard/internal/domain/user"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]user.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

// CreateIfAbsent checks and inserts under one write lock so concurrent signups for
// the same email store a single user.
func (r *UserRepository) CreateIfAbsent(_ context.Context, u user.User) (bool, error) {
	if err := u.Validate(); err != nil {
		return false, fmt.Errorf("validate user: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return false, nil
	}
	if _, exists := r.byID[u.ID]; exists {
		return false, fmt.Errorf("create user: id %s already used", u.ID)
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return true, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[user.NormalizeEmail(email)]
	if !ok {
		return user.User{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	return item, ok, nil
}
