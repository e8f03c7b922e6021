package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ticketIDBase offsets sequential ticket numbers so the first ticket is T-1001.
const ticketIDBase = 1000

// TicketFilter narrows a listing. Nil fields do not filter.
type TicketFilter struct {
	CreatorID *string
	AgentID   *string
}

func (f TicketFilter) matches(t *domain.Ticket) bool {
	if f.CreatorID != nil && t.CreatorID != *f.CreatorID {
		return false
	}
	if f.AgentID != nil && t.AgentID != *f.AgentID {
		return false
	}
	return true
}

// TicketMutation edits a ticket in place. Returning an error aborts the update
// and leaves the stored ticket untouched.
type TicketMutation func(ticket *domain.Ticket) error

// TicketRepository encapsulates ticket storage.
type TicketRepository interface {
	// Create assigns the next ticket id and stores the ticket.
	Create(ctx context.Context, ticket *domain.Ticket) error
	// Update applies mutate to the stored ticket under the store's write lock.
	Update(ctx context.Context, id string, mutate TicketMutation) (*domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	// List returns matching tickets in insertion order.
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	mu    sync.RWMutex
	seq   int
	order []string
	byID  map[string]*domain.Ticket
}

// NewTicketRepository instantiates an empty in-memory repository.
func NewTicketRepository() TicketRepository {
	return &ticketRepository{byID: make(map[string]*domain.Ticket)}
}

func (r *ticketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	ticket.ID = fmt.Sprintf("T-%d", ticketIDBase+r.seq)
	r.byID[ticket.ID] = ticket.Clone()
	r.order = append(r.order, ticket.ID)
	return nil
}

func (r *ticketRepository) Update(_ context.Context, id string, mutate TicketMutation) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// mutate a scratch copy so a failed mutation leaves no partial changes behind
	working := stored.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	working.ID = id
	r.byID[id] = working
	return working.Clone(), nil
}

func (r *ticketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ticket.Clone(), nil
}

func (r *ticketRepository) List(_ context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Ticket{}
	for _, id := range r.order {
		ticket := r.byID[id]
		if !filter.matches(ticket) {
			continue
		}
		result = append(result, *ticket.Clone())
	}
	return result, nil
}
