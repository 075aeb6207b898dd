package memory

import (
	"context"
	"sort"

	"github.com/mcsoftware/atmledger/internal/domain"
)

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = copyUser(user)
	return nil
}

// GetByID returns a user.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrOwnerNotFound
	}
	return copyUser(user), nil
}

// List returns users ordered by ID.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, 0, len(r.store.users))
	for id := range r.store.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*domain.User
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, copyUser(r.store.users[ids[i]]))
	}
	return out, nil
}
