package announcementController

import (
	"log"
	"tms/database"
	"tms/middleware"
	"tms/models"
	announcementValidator "tms/validators/announcement"

	"github.com/gofiber/fiber/v2"
)

// AnnouncementWithCreator joins the creating admin onto the announcement.
type AnnouncementWithCreator struct {
	models.Announcement
	Creator *models.User `json:"creator"`
}

// ListAnnouncements returns active announcements, highest priority first,
// newest first within a priority.
func ListAnnouncements(c *fiber.Ctx) error {
	db := database.Database.Db

	var announcements []models.Announcement
	if err := db.Where("active = ?", true).
		Order("priority desc").
		Order("created_at desc").
		Find(&announcements).Error; err != nil {
		log.Printf("Error listing announcements: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch announcements!", nil)
	}

	result := make([]AnnouncementWithCreator, len(announcements))
	for i, a := range announcements {
		result[i] = AnnouncementWithCreator{Announcement: a}
		var creator models.User
		if err := db.First(&creator, a.CreatedBy).Error; err == nil {
			result[i].Creator = &creator
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcements fetched successfully.", result)
}

// CreateAnnouncement creates a system-wide announcement. Admin only.
func CreateAnnouncement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedCreateAnnouncement").(*announcementValidator.CreateAnnouncementRequest)

	announcement := models.Announcement{
		Title:      reqData.Title,
		Content:    reqData.Content,
		Type:       reqData.Type,
		Priority:   reqData.Priority,
		CreatedBy:  userID,
		ExpiresAt:  reqData.ParsedExpiresAt,
		Active:     true,
		TargetRole: reqData.TargetRole,
	}

	if err := database.Database.Db.Create(&announcement).Error; err != nil {
		log.Printf("Error creating announcement: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create announcement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Announcement created successfully.", announcement)
}

// DeleteAnnouncement soft-deletes by clearing the active flag.
func DeleteAnnouncement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid announcement id!", nil)
	}

	db := database.Database.Db

	var announcement models.Announcement
	if err := db.Where("id = ? AND active = ?", id, true).First(&announcement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Announcement not found!", nil)
	}

	if err := db.Model(&announcement).Update("active", false).Error; err != nil {
		log.Printf("Error deleting announcement %d: %v", announcement.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete announcement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcement deleted successfully.", nil)
}
