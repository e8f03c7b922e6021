package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// DirectoryService exposes the account directory: username login and agent listing.
type DirectoryService struct {
	users repository.UserRepository
}

// NewDirectoryService builds the service.
func NewDirectoryService(users repository.UserRepository) *DirectoryService {
	return &DirectoryService{users: users}
}

// Login resolves a username to its account. No password is checked.
func (s *DirectoryService) Login(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("Usuario no encontrado")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// ListAgents returns every account with the agent role.
func (s *DirectoryService) ListAgents(ctx context.Context) ([]domain.User, error) {
	agents, err := s.users.ListByRole(ctx, domain.RoleAgent)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return agents, nil
}
