package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CommentRepository manages ticket thread comments. Ticket ids are not checked.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error)
}

type commentRepository struct {
	mu       sync.RWMutex
	comments []domain.Comment
}

// NewCommentRepository builds an empty in-memory repository.
func NewCommentRepository() CommentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(_ context.Context, comment *domain.Comment) error {
	comment.ID = uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *commentRepository) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Comment{}
	for _, c := range r.comments {
		if c.TicketID == ticketID {
			result = append(result, c)
		}
	}
	return result, nil
}
