package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const (
	actionCreated          = "Ticket creado"
	actionUpdated          = "Ticket actualizado"
	actionStatusChanged    = "Estado cambiado a %s"
	actionAssigned         = "Asignado a %s"
	actionAssignedOnCreate = "Asignado a %s al crear"

	ticketNotFoundMessage = "Ticket no encontrado"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	// Clock defaults to time.Now in UTC.
	Clock func() time.Time
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title        string
	Description  string
	Priority     domain.TicketPriority
	Category     string
	CreatorID    string
	CreatorName  string
	CreatorEmail string
	CreatorDept  string
	AgentID      string
	AgentName    string
	Station      string
	Area         string
}

// TicketPatchInput describes a partial update. Empty fields are left untouched.
type TicketPatchInput struct {
	Status    domain.TicketStatus
	Priority  domain.TicketPriority
	AgentID   string
	AgentName string
	ActorID   string
	ActorName string
}

// TicketViewer identifies who is listing tickets.
type TicketViewer struct {
	UserID string
	Role   domain.Role
}

// CommentInput describes a new comment.
type CommentInput struct {
	UserID   string
	UserName string
	Text     string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        clock,
	}
}

// CreateTicket files a new ticket. A ticket created with an agent starts in
// progress and carries a second history entry for the assignment.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	now := s.now()
	ticket := &domain.Ticket{
		Title:        input.Title,
		Description:  input.Description,
		Status:       domain.TicketStatusOpen,
		Priority:     input.Priority,
		Category:     input.Category,
		CreatorID:    input.CreatorID,
		CreatorName:  input.CreatorName,
		CreatorEmail: input.CreatorEmail,
		CreatorDept:  input.CreatorDept,
		Station:      input.Station,
		Area:         input.Area,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	appendHistory(ticket, actionCreated, input.CreatorID, input.CreatorName, now)

	if input.AgentID != "" {
		ticket.Status = domain.TicketStatusInProgress
		ticket.AgentID = input.AgentID
		ticket.AgentName = s.resolveAgentName(ctx, input.AgentID, input.AgentName)
		appendHistory(ticket, fmt.Sprintf(actionAssignedOnCreate, ticket.AgentName), input.CreatorID, input.CreatorName, now)
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("creator_id", ticket.CreatorID),
		zap.String("status", string(ticket.Status)))
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: input.CreatorID, UserName: input.CreatorName},
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Category: ticket.Category,
			Priority: ticket.Priority,
			Status:   ticket.Status,
			AgentID:  ticket.AgentID,
		},
	})
	return ticket, nil
}

// ListTickets returns the tickets visible to the viewer in insertion order:
// admins see everything, agents their assignments, anyone else their own tickets.
func (s *TicketService) ListTickets(ctx context.Context, viewer TicketViewer) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{}
	switch viewer.Role {
	case domain.RoleAdmin:
	case domain.RoleAgent:
		filter.AgentID = &viewer.UserID
	default:
		filter.CreatorID = &viewer.UserID
	}
	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tickets, nil
}

// GetTicket fetches a single ticket.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, mapTicketError(err, ticketID)
	}
	return ticket, nil
}

// PatchTicket applies a partial update and appends one history entry. The
// entry describes the most significant change: an assignment wins over a
// status change, which wins over the generic update message. Moving to a
// resolved or closed status stamps resolvedAt on every such patch.
func (s *TicketService) PatchTicket(ctx context.Context, ticketID string, input TicketPatchInput) (*domain.Ticket, error) {
	var (
		oldStatus   domain.TicketStatus
		oldPriority domain.TicketPriority
		oldAgentID  string
	)
	agentName := input.AgentName
	if input.AgentID != "" {
		agentName = s.resolveAgentName(ctx, input.AgentID, input.AgentName)
	}

	updated, err := s.tickets.Update(ctx, ticketID, func(ticket *domain.Ticket) error {
		now := s.now()
		oldStatus, oldPriority, oldAgentID = ticket.Status, ticket.Priority, ticket.AgentID

		if input.Status != "" {
			ticket.Status = input.Status
		}
		if input.AgentID != "" {
			ticket.AgentID = input.AgentID
			ticket.AgentName = agentName
		}
		if input.Priority != "" {
			ticket.Priority = input.Priority
		}
		ticket.UpdatedAt = now

		action := actionUpdated
		if input.Status != "" && input.Status != oldStatus {
			action = fmt.Sprintf(actionStatusChanged, input.Status)
		}
		if input.AgentID != "" {
			action = fmt.Sprintf(actionAssigned, agentName)
		}
		appendHistory(ticket, action, input.ActorID, input.ActorName, now)

		if input.Status.IsTerminal() {
			resolvedAt := now
			ticket.ResolvedAt = &resolvedAt
		}
		return nil
	})
	if err != nil {
		return nil, mapTicketError(err, ticketID)
	}

	actor := events.Actor{UserID: input.ActorID, UserName: input.ActorName}
	if input.Status != "" && input.Status != oldStatus {
		s.logger.Info("ticket status changed",
			zap.String("ticket_id", ticketID),
			zap.String("old_status", string(oldStatus)),
			zap.String("new_status", string(input.Status)))
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticketID,
			Actor:    actor,
			Payload:  events.TicketStatusChangedPayload{OldStatus: oldStatus, NewStatus: input.Status},
		})
	}
	if input.Priority != "" && input.Priority != oldPriority {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketPriorityChanged,
			TicketID: ticketID,
			Actor:    actor,
			Payload:  events.TicketPriorityChangedPayload{OldPriority: oldPriority, NewPriority: input.Priority},
		})
	}
	if input.AgentID != "" {
		s.logger.Info("ticket assigned",
			zap.String("ticket_id", ticketID),
			zap.String("agent_id", input.AgentID))
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketAssigned,
			TicketID: ticketID,
			Actor:    actor,
			Payload:  events.TicketAssignedPayload{OldAgentID: oldAgentID, AgentID: input.AgentID, AgentName: agentName},
		})
	}
	return updated, nil
}

// Stats aggregates ticket counts. Resolved counts both resolved and closed tickets.
func (s *TicketService) Stats(ctx context.Context) (*domain.TicketStats, error) {
	tickets, err := s.tickets.List(ctx, repository.TicketFilter{})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	stats := &domain.TicketStats{
		Total:      len(tickets),
		ByPriority: make(map[domain.TicketPriority]int, len(domain.TicketPriorities)),
	}
	for _, p := range domain.TicketPriorities {
		stats.ByPriority[p] = 0
	}
	for i := range tickets {
		switch {
		case tickets[i].Status == domain.TicketStatusOpen:
			stats.Open++
		case tickets[i].Status == domain.TicketStatusInProgress:
			stats.InProgress++
		case tickets[i].Status.IsTerminal():
			stats.Resolved++
		}
		if _, known := stats.ByPriority[tickets[i].Priority]; known {
			stats.ByPriority[tickets[i].Priority]++
		}
	}
	return stats, nil
}

// AddComment appends a comment to an existing ticket's thread.
func (s *TicketService) AddComment(ctx context.Context, ticketID string, input CommentInput) (*domain.Comment, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, mapTicketError(err, ticketID)
	}
	comment := &domain.Comment{
		TicketID:  ticketID,
		UserID:    input.UserID,
		UserName:  input.UserName,
		Text:      input.Text,
		CreatedAt: s.now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticketID,
		Actor:    events.Actor{UserID: input.UserID, UserName: input.UserName},
		Payload: events.TicketCommentAddedPayload{
			CommentID:   comment.ID,
			TextPreview: stringPreview(comment.Text, 120),
		},
	})
	return comment, nil
}

// ListComments returns a ticket's thread in posting order. Unknown tickets
// yield an empty thread.
func (s *TicketService) ListComments(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return comments, nil
}

// resolveAgentName falls back to the directory when the client omitted the
// agent's name. Unknown agent ids are tolerated.
func (s *TicketService) resolveAgentName(ctx context.Context, agentID, agentName string) string {
	if agentName != "" || s.users == nil {
		return agentName
	}
	agent, err := s.users.GetByID(ctx, agentID)
	if err != nil {
		return agentName
	}
	return agent.FullName
}

// appendHistory adds an entry, never letting its timestamp precede the last one.
func appendHistory(ticket *domain.Ticket, action, userID, userName string, at time.Time) {
	if n := len(ticket.History); n > 0 && at.Before(ticket.History[n-1].Timestamp) {
		at = ticket.History[n-1].Timestamp
	}
	ticket.History = append(ticket.History, domain.HistoryEntry{
		Action:    action,
		UserID:    userID,
		UserName:  userName,
		Timestamp: at,
	})
}

func mapTicketError(err error, ticketID string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(ticketNotFoundMessage, map[string]any{"ticket_id": ticketID})
	}
	return apperrors.NewInternalError(err)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
