package statsRoutes

import (
	controllers "tms/controllers/stats"
	"tms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupStatsRoutes sets up statistics and reporting routes
func SetupStatsRoutes(app *fiber.App) {
	app.Get("/api/stats/system", middleware.AuthMiddleware, middleware.AdminMiddleware, controllers.SystemStats)
	app.Get("/api/reports/progress", middleware.AuthMiddleware, middleware.AdminMiddleware, controllers.ProgressReport)
}
