package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen        TicketStatus = "Abierto"
	TicketStatusInProgress  TicketStatus = "En Proceso"
	TicketStatusWaitingUser TicketStatus = "En Espera del Usuario"
	TicketStatusEscalated   TicketStatus = "Escalado"
	TicketStatusResolved    TicketStatus = "Resuelto"
	TicketStatusClosed      TicketStatus = "Cerrado"
)

// IsTerminal reports whether the status marks the ticket as resolved.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "Baja"
	TicketPriorityMedium   TicketPriority = "Media"
	TicketPriorityHigh     TicketPriority = "Alta"
	TicketPriorityCritical TicketPriority = "Crítica"
)

// TicketPriorities lists every priority in ascending urgency.
var TicketPriorities = []TicketPriority{
	TicketPriorityLow,
	TicketPriorityMedium,
	TicketPriorityHigh,
	TicketPriorityCritical,
}

// Ticket is the aggregate for support requests. Creator and agent identity is
// denormalized so clients can render a ticket without a directory lookup.
type Ticket struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Status       TicketStatus   `json:"status"`
	Priority     TicketPriority `json:"priority"`
	Category     string         `json:"category"`
	CreatorID    string         `json:"creatorId"`
	CreatorName  string         `json:"creatorName"`
	CreatorEmail string         `json:"creatorEmail"`
	CreatorDept  string         `json:"creatorDept"`
	Station      string         `json:"station,omitempty"`
	Area         string         `json:"area,omitempty"`
	AgentID      string         `json:"agentId,omitempty"`
	AgentName    string         `json:"agentName,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	ResolvedAt   *time.Time     `json:"resolvedAt,omitempty"`
	History      []HistoryEntry `json:"history"`
}

// Clone returns a copy that shares no mutable state with t.
func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	cp := *t
	if t.ResolvedAt != nil {
		resolved := *t.ResolvedAt
		cp.ResolvedAt = &resolved
	}
	cp.History = append([]HistoryEntry(nil), t.History...)
	return &cp
}
