package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cactilog/cactilog/internal/pkg/usercontext"
)

// newGuardedApp wires a context-injecting stub in place of the session
// middleware so the guards can be exercised without Redis.
func newGuardedApp(uctx *usercontext.UserContext, guards ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if uctx != nil {
			c.Locals("USER_CONTEXT", *uctx)
		}
		return c.Next()
	})
	handlers := append(guards, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Patch("/guarded", handlers...)
	return app
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		uctx       *usercontext.UserContext
		wantStatus int
	}{
		{name: "anonymous is rejected", uctx: nil, wantStatus: fiber.StatusUnauthorized},
		{name: "logged out context is rejected", uctx: &usercontext.UserContext{IsLoggedIn: false}, wantStatus: fiber.StatusUnauthorized},
		{name: "logged in passes", uctx: &usercontext.UserContext{UserID: 1, IsLoggedIn: true}, wantStatus: fiber.StatusOK},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			app := newGuardedApp(tc.uctx, RequireAuth)
			resp, err := app.Test(httptest.NewRequest("PATCH", "/guarded", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestRequireAdminFailsClosed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		uctx       *usercontext.UserContext
		wantStatus int
	}{
		{name: "anonymous gets 401", uctx: nil, wantStatus: fiber.StatusUnauthorized},
		{name: "regular user gets 403", uctx: &usercontext.UserContext{UserID: 2, IsLoggedIn: true}, wantStatus: fiber.StatusForbidden},
		{name: "admin flag false gets 403", uctx: &usercontext.UserContext{UserID: 3, IsLoggedIn: true, IsAdmin: false}, wantStatus: fiber.StatusForbidden},
		{name: "admin passes", uctx: &usercontext.UserContext{UserID: 4, IsLoggedIn: true, IsAdmin: true}, wantStatus: fiber.StatusOK},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var reached bool
			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error {
				if tc.uctx != nil {
					c.Locals("USER_CONTEXT", *tc.uctx)
				}
				return c.Next()
			})
			app.Patch("/admin/reports/:reportId", RequireAuth, RequireAdmin, func(c *fiber.Ctx) error {
				reached = true
				return c.JSON(fiber.Map{"ok": true})
			})

			resp, err := app.Test(httptest.NewRequest("PATCH", "/admin/reports/1", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			// A rejected caller must never reach the transition handler, so
			// the report status cannot have been touched.
			assert.Equal(t, tc.wantStatus == fiber.StatusOK, reached)
		})
	}
}
