package documentRoutes

import (
	controllers "tms/controllers/document"
	"tms/middleware"
	validators "tms/validators/document"

	"github.com/gofiber/fiber/v2"
)

// SetupDocumentRoutes sets up document CRUD and download routes
func SetupDocumentRoutes(app *fiber.App) {
	documents := app.Group("/api/documents")

	documents.Get("/", middleware.AuthMiddleware, controllers.ListDocuments)
	documents.Post("/", middleware.AuthMiddleware, middleware.AdminMiddleware, validators.CreateDocument(), controllers.CreateDocument)
	documents.Post("/:id/download", middleware.AuthMiddleware, controllers.DownloadDocument)
	documents.Delete("/:id", middleware.AuthMiddleware, middleware.AdminMiddleware, controllers.DeleteDocument)
}
