package userRoutes

import (
	controllers "tms/controllers/user"
	"tms/middleware"
	validators "tms/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up user administration and progress routes
func SetupUserRoutes(app *fiber.App) {
	users := app.Group("/api/users")

	users.Get("/", middleware.AuthMiddleware, middleware.AdminMiddleware, controllers.ListUsers)
	users.Post("/", middleware.AuthMiddleware, middleware.AdminMiddleware, validators.CreateUser(), controllers.CreateUser)
	users.Put("/:id", middleware.AuthMiddleware, middleware.AdminMiddleware, validators.UpdateUser(), controllers.UpdateUser)
	users.Delete("/:id", middleware.AuthMiddleware, middleware.AdminMiddleware, controllers.DeleteUser)

	// Self-or-admin; the handler enforces the ownership check
	users.Get("/:id/progress", middleware.AuthMiddleware, controllers.GetUserProgress)
}
