package dto

import "github.com/spec-kit/helpdesk-service/internal/domain"

// CreateTicketRequest payload. Creator and agent identity is sent by the client.
type CreateTicketRequest struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Priority     domain.TicketPriority `json:"priority"`
	Category     string                `json:"category"`
	CreatorID    string                `json:"creatorId"`
	CreatorName  string                `json:"creatorName"`
	CreatorEmail string                `json:"creatorEmail"`
	CreatorDept  string                `json:"creatorDept"`
	AgentID      string                `json:"agentId"`
	AgentName    string                `json:"agentName"`
	Station      string                `json:"station"`
	Area         string                `json:"area"`
}

// PatchTicketRequest payload. userId/userName attribute the change.
type PatchTicketRequest struct {
	Status    domain.TicketStatus   `json:"status"`
	AgentID   string                `json:"agentId"`
	AgentName string                `json:"agentName"`
	Priority  domain.TicketPriority `json:"priority"`
	UserID    string                `json:"userId"`
	UserName  string                `json:"userName"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Text     string `json:"text"`
}
