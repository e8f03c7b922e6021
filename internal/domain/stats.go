package domain

// TicketStats aggregates ticket counts for the admin dashboard.
type TicketStats struct {
	Total      int                    `json:"total"`
	Open       int                    `json:"open"`
	InProgress int                    `json:"inProgress"`
	Resolved   int                    `json:"resolved"`
	ByPriority map[TicketPriority]int `json:"byPriority"`
}
