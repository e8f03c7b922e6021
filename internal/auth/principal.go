package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

const principalKey = "auth_principal"

// Principal represents the caller as declared by the client. Identity is not
// verified: callers are trusted to send their own userId and role.
type Principal struct {
	UserID string
	Role   domain.Role
}

// IsAdmin reports whether the caller declared the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == domain.RoleAdmin
}

// PrincipalFromQuery loads the caller from the userId and role query parameters.
func PrincipalFromQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := &Principal{
			UserID: strings.TrimSpace(c.Query("userId")),
			Role:   ParseRole(c.Query("role")),
		}
		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// PrincipalFromContext retrieves the caller stored by PrincipalFromQuery.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// ParseRole normalizes a role name. Unknown values are returned as-is and get
// end-user visibility downstream.
func ParseRole(raw string) domain.Role {
	return domain.Role(strings.ToLower(strings.TrimSpace(raw)))
}
