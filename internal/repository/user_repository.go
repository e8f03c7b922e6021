package repository

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// UserRepository defines read access to the account directory.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

// userRepository is an immutable in-memory directory. It is never written
// after construction, so reads need no locking.
type userRepository struct {
	ordered    []domain.User
	byUsername map[string]int
	byID       map[string]int
}

// NewUserRepository builds a directory over the given accounts, preserving their order.
func NewUserRepository(users []domain.User) UserRepository {
	repo := &userRepository{
		ordered:    make([]domain.User, 0, len(users)),
		byUsername: make(map[string]int, len(users)),
		byID:       make(map[string]int, len(users)),
	}
	for _, u := range users {
		repo.byUsername[u.Username] = len(repo.ordered)
		repo.byID[u.ID] = len(repo.ordered)
		repo.ordered = append(repo.ordered, u)
	}
	return repo
}

// NewSeededUserRepository returns the directory populated with SeedUsers.
func NewSeededUserRepository() UserRepository {
	return NewUserRepository(SeedUsers())
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	idx, ok := r.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.ordered[idx]
	return &user, nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.ordered[idx]
	return &user, nil
}

func (r *userRepository) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	result := []domain.User{}
	for _, u := range r.ordered {
		if u.Role == role {
			result = append(result, u)
		}
	}
	return result, nil
}
