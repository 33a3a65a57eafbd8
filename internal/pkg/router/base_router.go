package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cactilog/cactilog/app/repository"
	"github.com/cactilog/cactilog/internal/pkg/database"
	"github.com/cactilog/cactilog/internal/pkg/middleware"
	"github.com/cactilog/cactilog/internal/pkg/session"
)

type BaseRouter struct {
}

func (h BaseRouter) InstallRouter(app *fiber.App) {
	// init session store and the repository factory before any handler runs
	session.NewSessionStore()
	repository.InitializeFactory(database.GetDB())

	// UserContext middleware first, everything downstream reads from it
	app.Use(middleware.UserContextMiddleware)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func NewBaseRouter() *BaseRouter {
	return &BaseRouter{}
}
