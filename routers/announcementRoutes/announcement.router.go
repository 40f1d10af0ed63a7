package announcementRoutes

import (
	controllers "tms/controllers/announcement"
	"tms/middleware"
	validators "tms/validators/announcement"

	"github.com/gofiber/fiber/v2"
)

// SetupAnnouncementRoutes sets up announcement routes
func SetupAnnouncementRoutes(app *fiber.App) {
	announcements := app.Group("/api/announcements")

	announcements.Get("/", middleware.AuthMiddleware, controllers.ListAnnouncements)
	announcements.Post("/", middleware.AuthMiddleware, middleware.AdminMiddleware, validators.CreateAnnouncement(), controllers.CreateAnnouncement)
	announcements.Delete("/:id", middleware.AuthMiddleware, middleware.AdminMiddleware, controllers.DeleteAnnouncement)
}
