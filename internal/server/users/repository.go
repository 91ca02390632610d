package users

import (
	"context"
	"strings"
	"sync"

	"github.com/ehimavote/evote/internal/common"
)

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// MemoryRepository keeps accounts in memory, keyed by lower-cased email.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: map[string]User{}}
}

// Create stores user. It fails with ErrEmailExists when the email is taken.
func (r *MemoryRepository) Create(_ context.Context, user *User) (*User, error) {
	key := strings.ToLower(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[key]; ok {
		return nil, ErrEmailExists
	}
	r.users[key] = *user

	u := *user
	return &u, nil
}

// GetUserByEmail returns common.ErrorNotFound for an unknown email.
func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}
