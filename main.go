package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cactilog/cactilog/internal/pkg/cache"
	"github.com/cactilog/cactilog/internal/pkg/database"
	"github.com/cactilog/cactilog/internal/pkg/env"
	"github.com/cactilog/cactilog/internal/pkg/imageprocessor"
	"github.com/cactilog/cactilog/internal/pkg/mail"
	"github.com/cactilog/cactilog/internal/pkg/router"
	"github.com/cactilog/cactilog/internal/pkg/storage"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	// Mail is advisory only, but an unconfigured provider should be visible
	// at startup instead of failing silently on every send.
	mail.WarnIfUnconfigured()

	// Start the thumbnail worker pool before accepting uploads.
	imageprocessor.GetProcessor()

	app := fiber.New(fiber.Config{
		// Upload cap is 5 MiB; leave headroom for the multipart envelope.
		BodyLimit: 6 * 1024 * 1024,
		// Keep the route banner out of production logs.
		DisableStartupMessage: !env.IsDev(),
	})

	app.Use(recover.New(), logger.New())

	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "cactilog"),
		},
	}), monitor.New())

	// Uploaded plant photos, thumbnails included.
	app.Static("/uploads", storage.UploadRoot(), fiber.Static{
		CacheDuration: 10 * time.Second,
		MaxAge:        604800, // 7 days
	})

	// SWAGGER / OPENAPI
	app.Use(swagger.New(swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./public/docs/v1/openapi.yml",
		Path:     "v1",
	}))

	// ROUTER
	router.InstallRouter(app)

	return app
}
