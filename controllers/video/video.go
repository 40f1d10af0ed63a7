package videoController

import (
	"log"
	"path/filepath"
	"tms/config"
	"tms/database"
	"tms/middleware"
	"tms/models"
	"tms/utils"
	videoValidator "tms/validators/video"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VideoWithDetails is the read-side aggregate for listings: the video joined
// with its category, uploader, and the raw completion/view rows.
type VideoWithDetails struct {
	models.Video
	Category    *models.Category         `json:"category"`
	Uploader    *models.User             `json:"uploader"`
	Completions []models.VideoCompletion `json:"completions"`
	Views       []models.VideoView       `json:"views"`
}

func withDetails(db *gorm.DB, video models.Video) VideoWithDetails {
	details := VideoWithDetails{
		Video:       video,
		Completions: []models.VideoCompletion{},
		Views:       []models.VideoView{},
	}

	if video.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, *video.CategoryID).Error; err == nil {
			details.Category = &category
		}
	}

	var uploader models.User
	if err := db.First(&uploader, video.UploadedBy).Error; err == nil {
		details.Uploader = &uploader
	}

	db.Where("video_id = ?", video.ID).Find(&details.Completions)
	db.Where("video_id = ?", video.ID).Find(&details.Views)

	return details
}

// ListVideos returns active videos with details, optionally filtered by
// ?category=<id>.
func ListVideos(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("active = ?", true).Order("created_at desc")
	if c.Query("category") != "" {
		query = query.Where("category_id = ?", c.QueryInt("category"))
	}

	var videos []models.Video
	if err := query.Find(&videos).Error; err != nil {
		log.Printf("Error listing videos: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch videos!", nil)
	}

	result := make([]VideoWithDetails, len(videos))
	for i, video := range videos {
		result[i] = withDetails(db, video)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Videos fetched successfully.", result)
}

// GetVideo returns one active video with details.
func GetVideo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	db := database.Database.Db

	var video models.Video
	if err := db.Where("id = ? AND active = ?", id, true).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video fetched successfully.", withDetails(db, video))
}

// CreateVideo stores the uploaded file under uploads/videos with a generated
// filename and creates the metadata row. Admin only.
func CreateVideo(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedCreateVideo").(*videoValidator.CreateVideoRequest)

	file, err := c.FormFile("video")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video file is required!", nil)
	}

	destDir := filepath.Join(config.AppConfig.UploadDir, "videos")
	filename, err := utils.SaveUploadedFile(file, destDir)
	if err != nil {
		log.Printf("Error saving uploaded video: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store video file!", nil)
	}

	video := models.Video{
		Title:               reqData.Title,
		Description:         reqData.Description,
		Filename:            filename,
		Duration:            reqData.Duration,
		CategoryID:          reqData.CategoryID,
		RequiresCertificate: reqData.RequiresCertificate,
		UploadedBy:          userID,
		Active:              true,
	}

	if err := database.Database.Db.Create(&video).Error; err != nil {
		log.Printf("Error creating video: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video created successfully.", video)
}

// DeleteVideo soft-deletes by clearing the active flag; the backing file and
// the telemetry rows are retained.
func DeleteVideo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	db := database.Database.Db

	var video models.Video
	if err := db.Where("id = ? AND active = ?", id, true).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	if err := db.Model(&video).Update("active", false).Error; err != nil {
		log.Printf("Error deleting video %d: %v", video.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video deleted successfully.", nil)
}
