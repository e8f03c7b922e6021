package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func newTicket(creatorID, agentID string) *domain.Ticket {
	now := time.Now().UTC()
	return &domain.Ticket{
		Title:     "Impresora sin tóner",
		Status:    domain.TicketStatusOpen,
		Priority:  domain.TicketPriorityMedium,
		CreatorID: creatorID,
		AgentID:   agentID,
		CreatedAt: now,
		UpdatedAt: now,
		History:   []domain.HistoryEntry{{Action: "Ticket creado", UserID: creatorID, Timestamp: now}},
	}
}

func TestTicketRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo := NewTicketRepository()
	ctx := context.Background()

	first := newTicket("u1", "")
	second := newTicket("u2", "")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, "T-1001", first.ID)
	assert.Equal(t, "T-1002", second.ID)
}

func TestTicketRepository_ConcurrentCreateUniqueIDs(t *testing.T) {
	repo := NewTicketRepository()
	ctx := context.Background()

	const n = 64
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticket := newTicket("u1", "")
			if err := repo.Create(ctx, ticket); err == nil {
				ids <- ticket.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]struct{}{}
	for id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestTicketRepository_ListFiltersInInsertionOrder(t *testing.T) {
	repo := NewTicketRepository()
	ctx := context.Background()

	for _, tc := range []struct{ creator, agent string }{
		{"u5", ""}, {"u1", "a1"}, {"u5", "a1"}, {"u2", ""}, {"u5", ""},
	} {
		require.NoError(t, repo.Create(ctx, newTicket(tc.creator, tc.agent)))
	}

	creator := "u5"
	mine, err := repo.List(ctx, TicketFilter{CreatorID: &creator})
	require.NoError(t, err)
	assert.Equal(t, []string{"T-1001", "T-1003", "T-1005"}, ticketIDs(mine))

	agent := "a1"
	assigned, err := repo.List(ctx, TicketFilter{AgentID: &agent})
	require.NoError(t, err)
	assert.Equal(t, []string{"T-1002", "T-1003"}, ticketIDs(assigned))

	all, err := repo.List(ctx, TicketFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestTicketRepository_ListEmptyIsNotNil(t *testing.T) {
	repo := NewTicketRepository()
	tickets, err := repo.List(context.Background(), TicketFilter{})
	require.NoError(t, err)
	assert.NotNil(t, tickets)
	assert.Empty(t, tickets)
}

func TestTicketRepository_UpdateUnknown(t *testing.T) {
	repo := NewTicketRepository()
	called := false
	_, err := repo.Update(context.Background(), "T-9999", func(*domain.Ticket) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, called)
}

func TestTicketRepository_UpdateAbortLeavesTicketUntouched(t *testing.T) {
	repo := NewTicketRepository()
	ctx := context.Background()
	ticket := newTicket("u1", "")
	require.NoError(t, repo.Create(ctx, ticket))

	boom := errors.New("boom")
	_, err := repo.Update(ctx, ticket.ID, func(tk *domain.Ticket) error {
		tk.Status = domain.TicketStatusClosed
		tk.History = append(tk.History, domain.HistoryEntry{Action: "x"})
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, stored.Status)
	assert.Len(t, stored.History, 1)
}

func TestTicketRepository_UpdateCannotChangeID(t *testing.T) {
	repo := NewTicketRepository()
	ctx := context.Background()
	ticket := newTicket("u1", "")
	require.NoError(t, repo.Create(ctx, ticket))

	updated, err := repo.Update(ctx, ticket.ID, func(tk *domain.Ticket) error {
		tk.ID = "T-1"
		tk.Priority = domain.TicketPriorityHigh
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, updated.ID)
	assert.Equal(t, domain.TicketPriorityHigh, updated.Priority)
}

func TestTicketRepository_ReadsAreCopies(t *testing.T) {
	repo := NewTicketRepository()
	ctx := context.Background()
	ticket := newTicket("u1", "")
	require.NoError(t, repo.Create(ctx, ticket))

	ticket.Title = "changed after create"
	got, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	got.History[0].Action = "changed after read"

	again, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Impresora sin tóner", again.Title)
	assert.Equal(t, "Ticket creado", again.History[0].Action)
}

func ticketIDs(tickets []domain.Ticket) []string {
	ids := make([]string, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.ID)
	}
	return ids
}
