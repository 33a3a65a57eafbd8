package router

import (
	"github.com/gofiber/fiber/v2"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter wires up the whole HTTP surface. The API router carries the
// rate limiter and depends on the globally installed user context middleware,
// so the base router goes first.
func InstallRouter(app *fiber.App) {
	setup(app, NewBaseRouter(), NewApiRouter())
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
