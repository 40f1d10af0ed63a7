package videoController

import (
	"errors"
	"log"
	"time"
	"tms/database"
	"tms/middleware"
	"tms/models"
	videoValidator "tms/validators/video"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RecordView appends one watch-duration sample. The log is append-only
// telemetry: samples are never deduplicated or checked for monotonicity, and
// concurrent or out-of-order samples are all retained.
func RecordView(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	reqData := c.Locals("validatedView").(*videoValidator.ViewRequest)

	view := models.VideoView{
		UserID:   userID,
		VideoID:  uint(videoID),
		Duration: reqData.Duration,
		ViewedAt: time.Now(),
	}

	if err := database.Database.Db.Create(&view).Error; err != nil {
		log.Printf("Error recording view for user %d video %d: %v", userID, videoID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record view!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "View recorded successfully.", view)
}

// CompleteVideo records the one-time completion for (user, video). The
// pre-check gives the friendly duplicate answer; the unique index on the
// completions table is what actually guarantees at-most-once under
// concurrent duplicate requests.
func CompleteVideo(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	db := database.Database.Db

	var existing models.VideoCompletion
	if err := db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video has already been completed!", nil)
	}

	var video models.Video
	if err := db.Where("id = ? AND active = ?", videoID, true).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	completion := models.VideoCompletion{
		UserID:            userID,
		VideoID:           uint(videoID),
		CompletedAt:       time.Now(),
		Progress:          100,
		CertificateIssued: video.RequiresCertificate,
	}

	if err := db.Create(&completion).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video has already been completed!", nil)
		}
		log.Printf("Error recording completion for user %d video %d: %v", userID, videoID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video completed successfully.", completion)
}
