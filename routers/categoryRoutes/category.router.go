package categoryRoutes

import (
	controllers "tms/controllers/category"
	"tms/middleware"
	validators "tms/validators/category"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes sets up category routes
func SetupCategoryRoutes(app *fiber.App) {
	categories := app.Group("/api/categories")

	categories.Get("/", middleware.AuthMiddleware, controllers.ListCategories)
	categories.Post("/", middleware.AuthMiddleware, middleware.AdminMiddleware, validators.CreateCategory(), controllers.CreateCategory)
	categories.Put("/:id", middleware.AuthMiddleware, middleware.AdminMiddleware, validators.CreateCategory(), controllers.UpdateCategory)
	categories.Delete("/:id", middleware.AuthMiddleware, middleware.AdminMiddleware, controllers.DeleteCategory)
}
