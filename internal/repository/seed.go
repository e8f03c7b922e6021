package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SeedUsers returns the fixed account set: 20 users, 4 agents and 3 admins.
func SeedUsers() []domain.User {
	users := make([]domain.User, 0, 27)
	for i := 1; i <= 20; i++ {
		dept := "Marketing"
		if i%2 == 0 {
			dept = "Ventas"
		}
		users = append(users, seedUser(fmt.Sprintf("u%d", i), fmt.Sprintf("user%d", i), fmt.Sprintf("Usuario %d", i), domain.RoleUser, dept))
	}
	for i := 1; i <= 4; i++ {
		users = append(users, seedUser(fmt.Sprintf("a%d", i), fmt.Sprintf("agente%d", i), fmt.Sprintf("Agente IT %d", i), domain.RoleAgent, "IT Support"))
	}
	for i := 1; i <= 3; i++ {
		username := fmt.Sprintf("admin%d", i)
		users = append(users, seedUser(username, username, fmt.Sprintf("Administrador %d", i), domain.RoleAdmin, "IT Management"))
	}
	return users
}

func seedUser(id, username, fullName string, role domain.Role, dept string) domain.User {
	return domain.User{
		ID:         id,
		Username:   username,
		FullName:   fullName,
		Role:       role,
		Department: dept,
		Email:      username + "@enterprise.com",
	}
}

// SeedSampleTicket stores the demo VPN ticket filed by user1.
func SeedSampleTicket(ctx context.Context, tickets TicketRepository, now time.Time) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		Title:        "Problema con acceso a VPN",
		Description:  "No puedo conectar a la VPN desde mi casa. Sale error de tiempo de espera.",
		Status:       domain.TicketStatusOpen,
		Priority:     domain.TicketPriorityHigh,
		Category:     "Red",
		CreatorID:    "u1",
		CreatorName:  "Usuario 1",
		CreatorEmail: "user1@enterprise.com",
		CreatorDept:  "Marketing",
		CreatedAt:    now,
		UpdatedAt:    now,
		History: []domain.HistoryEntry{
			{Action: "Ticket creado", UserID: "u1", UserName: "Usuario 1", Timestamp: now},
		},
	}
	if err := tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}
