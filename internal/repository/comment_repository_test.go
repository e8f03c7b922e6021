package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestCommentRepository_CreateAndList(t *testing.T) {
	repo := NewCommentRepository()
	ctx := context.Background()

	first := &domain.Comment{TicketID: "T-1001", UserID: "u1", Text: "sigue fallando"}
	other := &domain.Comment{TicketID: "T-1002", UserID: "u2", Text: "otro"}
	second := &domain.Comment{TicketID: "T-1001", UserID: "a1", Text: "reinicie el router"}
	for _, c := range []*domain.Comment{first, other, second} {
		require.NoError(t, repo.Create(ctx, c))
		assert.NotEmpty(t, c.ID)
	}
	assert.NotEqual(t, first.ID, second.ID)

	list, err := repo.ListByTicket(ctx, "T-1001")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestCommentRepository_ListUnknownTicketIsEmpty(t *testing.T) {
	repo := NewCommentRepository()
	require.NoError(t, repo.Create(context.Background(), &domain.Comment{TicketID: "T-1001"}))

	list, err := repo.ListByTicket(context.Background(), "T-4242")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
