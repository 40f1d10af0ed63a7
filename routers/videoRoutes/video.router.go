package videoRoutes

import (
	controllers "tms/controllers/video"
	"tms/middleware"
	validators "tms/validators/video"

	"github.com/gofiber/fiber/v2"
)

// SetupVideoRoutes sets up video CRUD, streaming and progress routes
func SetupVideoRoutes(app *fiber.App) {
	videos := app.Group("/api/videos")

	videos.Get("/", middleware.AuthMiddleware, controllers.ListVideos)
	videos.Post("/", middleware.AuthMiddleware, middleware.AdminMiddleware, validators.CreateVideo(), controllers.CreateVideo)
	videos.Get("/:id", middleware.AuthMiddleware, controllers.GetVideo)
	videos.Delete("/:id", middleware.AuthMiddleware, middleware.AdminMiddleware, controllers.DeleteVideo)

	videos.Get("/:id/stream", middleware.AuthMiddleware, controllers.StreamVideo)
	videos.Post("/:id/view", middleware.AuthMiddleware, validators.View(), controllers.RecordView)
	videos.Post("/:id/complete", middleware.AuthMiddleware, controllers.CompleteVideo)
}
