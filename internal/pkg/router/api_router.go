package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/cactilog/cactilog/app/controllers"
	"github.com/cactilog/cactilog/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// auth
	api.Post("/auth/register", controllers.HandleRegister)
	api.Post("/auth/login", controllers.HandleLogin)
	api.Post("/auth/logout", controllers.HandleLogout)
	api.Get("/auth/me", middleware.RequireAuth, controllers.HandleMe)

	// settings
	api.Get("/settings", middleware.RequireAuth, controllers.HandleGetSettings)
	api.Patch("/settings", middleware.RequireAuth, controllers.HandleUpdateSettings)

	// plants
	api.Post("/plants", middleware.RequireAuth, controllers.HandleCreatePlant)
	api.Get("/plants", middleware.RequireAuth, controllers.HandleListPlants)
	api.Get("/plants/:plantId", middleware.RequireAuth, controllers.HandleGetPlant)
	api.Patch("/plants/:plantId", middleware.RequireAuth, controllers.HandleUpdatePlant)
	api.Delete("/plants/:plantId", middleware.RequireAuth, controllers.HandleDeletePlant)

	// growth records
	api.Post("/plants/:plantId/growth", middleware.RequireAuth, controllers.HandleCreateGrowthRecord)
	api.Get("/plants/:plantId/growth", middleware.RequireAuth, controllers.HandleListGrowthRecords)
	api.Delete("/plants/:plantId/growth/:recordId", middleware.RequireAuth, controllers.HandleDeleteGrowthRecord)

	// photos
	api.Post("/plants/:plantId/photos", middleware.RequireAuth, controllers.HandleUploadPhoto)
	api.Get("/plants/:plantId/photos", middleware.RequireAuth, controllers.HandleListPhotos)
	api.Delete("/plants/:plantId/photos/:photoId", middleware.RequireAuth, controllers.HandleDeletePhoto)
	api.Get("/plants/:plantId/photos/:photoId/status", middleware.RequireAuth, controllers.HandlePhotoStatus)

	// community feed, no login required
	api.Get("/photos/public", controllers.HandlePublicFeed)

	// moderation reports, no login required to file
	api.Post("/species/images/:imageId/report", controllers.HandleCreateReport)

	// admin moderation queue
	api.Get("/admin/reports", middleware.RequireAuth, middleware.RequireAdmin, controllers.HandleListReports)
	api.Patch("/admin/reports/:reportId", middleware.RequireAuth, middleware.RequireAdmin, controllers.HandleResolveReport)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
