package authRoutes

import (
	controllers "tms/controllers/auth"
	"tms/middleware"
	validators "tms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up authentication routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/login", validators.Login(), controllers.Login)
	auth.Post("/register", validators.Register(), controllers.Register)
	auth.Post("/logout", middleware.AuthMiddleware, controllers.Logout)
	auth.Get("/me", middleware.AuthMiddleware, controllers.Me)
}
