package announcementValidator

import (
	"strings"
	"time"
	"tms/middleware"
	"tms/models"

	"github.com/gofiber/fiber/v2"
)

var allowedTypes = map[string]bool{
	"info":    true,
	"warning": true,
	"urgent":  true,
	"success": true,
}

type CreateAnnouncementRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Type       string `json:"type"`
	Priority   int    `json:"priority"`
	ExpiresAt  string `json:"expiresAt"` // RFC 3339, optional
	TargetRole string `json:"targetRole"`

	ParsedExpiresAt *time.Time `json:"-"`
}

func CreateAnnouncement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateAnnouncementRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if strings.TrimSpace(reqData.Content) == "" {
			errors["content"] = "Content is required!"
		}

		if reqData.Type == "" {
			reqData.Type = "info"
		} else if !allowedTypes[reqData.Type] {
			errors["type"] = "Type must be one of info, warning, urgent, success!"
		}

		if reqData.Priority == 0 {
			reqData.Priority = 1
		} else if reqData.Priority < 1 || reqData.Priority > 3 {
			errors["priority"] = "Priority must be between 1 and 3!"
		}

		if reqData.ExpiresAt != "" {
			t, err := time.Parse(time.RFC3339, reqData.ExpiresAt)
			if err != nil {
				errors["expiresAt"] = "ExpiresAt must be an RFC 3339 timestamp!"
			} else {
				reqData.ParsedExpiresAt = &t
			}
		}

		if reqData.TargetRole != "" && reqData.TargetRole != models.RoleUser && reqData.TargetRole != models.RoleAdmin {
			errors["targetRole"] = "Target role must be 'user' or 'admin'!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateAnnouncement", reqData)
		return c.Next()
	}
}
