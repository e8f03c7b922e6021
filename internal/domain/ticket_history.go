package domain

import "time"

// HistoryEntry is an immutable audit trail entry appended to a ticket.
type HistoryEntry struct {
	Action    string    `json:"action"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Timestamp time.Time `json:"timestamp"`
}
