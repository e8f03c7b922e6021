package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestPrincipalFromQuery(t *testing.T) {
	app := fiber.New()
	var got *Principal
	app.Get("/who", PrincipalFromQuery(), func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		require.True(t, ok)
		got = p
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/who?userId=a2&role=Agent", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.NotNil(t, got)
	assert.Equal(t, "a2", got.UserID)
	assert.Equal(t, domain.RoleAgent, got.Role)
	assert.False(t, got.IsAdmin())
}

func TestPrincipalFromContext_Missing(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := PrincipalFromContext(c)
		assert.False(t, ok)
		return nil
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, domain.RoleAdmin, ParseRole(" ADMIN "))
	assert.Equal(t, domain.Role(""), ParseRole(""))
	assert.Equal(t, domain.Role("guest"), ParseRole("guest"))
}
