package main

import (
	"log"
	"tms/config"
	"tms/database"
	announcementRoutes "tms/routers/announcementRoutes"
	authRoutes "tms/routers/authRoutes"
	categoryRoutes "tms/routers/categoryRoutes"
	documentRoutes "tms/routers/documentRoutes"
	statsRoutes "tms/routers/statsRoutes"
	userRoutes "tms/routers/userRoutes"
	videoRoutes "tms/routers/videoRoutes"
	"tms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New(fiber.Config{
		// Video uploads are the largest accepted bodies
		BodyLimit: 500 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve the SPA from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	videoRoutes.SetupVideoRoutes(app)
	documentRoutes.SetupDocumentRoutes(app)
	announcementRoutes.SetupAnnouncementRoutes(app)
	statsRoutes.SetupStatsRoutes(app)

	utils.InitializeAnnouncementScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
