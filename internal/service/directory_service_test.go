package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func TestDirectoryService_Login(t *testing.T) {
	svc := NewDirectoryService(repository.NewSeededUserRepository())

	user, err := svc.Login(context.Background(), "agente1")
	require.NoError(t, err)
	assert.Equal(t, "a1", user.ID)
	assert.Equal(t, domain.RoleAgent, user.Role)
}

func TestDirectoryService_LoginUnknown(t *testing.T) {
	svc := NewDirectoryService(repository.NewSeededUserRepository())

	_, err := svc.Login(context.Background(), "intruso")
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
	assert.Equal(t, "Usuario no encontrado", de.Message)
}

func TestDirectoryService_ListAgents(t *testing.T) {
	svc := NewDirectoryService(repository.NewSeededUserRepository())

	agents, err := svc.ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 4)
	for _, a := range agents {
		assert.Equal(t, domain.RoleAgent, a.Role)
	}
}
