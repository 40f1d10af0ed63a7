package videoValidator

import (
	"strconv"
	"strings"
	"tms/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateVideoRequest struct {
	Title               string
	Description         string
	Duration            int
	CategoryID          *uint
	RequiresCertificate bool
}

type ViewRequest struct {
	Duration int `json:"duration"`
}

// CreateVideo validates the multipart upload: the "video" file part plus its
// metadata form fields.
func CreateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		file, err := c.FormFile("video")
		if err != nil {
			errors["video"] = "Video file is required!"
		} else if !strings.HasPrefix(file.Header.Get("Content-Type"), "video/") {
			errors["video"] = "Only video files are allowed!"
		}

		reqData := &CreateVideoRequest{
			Title:       strings.TrimSpace(c.FormValue("title")),
			Description: strings.TrimSpace(c.FormValue("description")),
		}

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}

		duration, err := strconv.Atoi(c.FormValue("duration"))
		if err != nil || duration < 0 {
			errors["duration"] = "Duration must be a non-negative number of seconds!"
		} else {
			reqData.Duration = duration
		}

		if raw := c.FormValue("categoryId"); raw != "" {
			categoryID, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				errors["categoryId"] = "Category must be a valid id!"
			} else {
				id := uint(categoryID)
				reqData.CategoryID = &id
			}
		}

		reqData.RequiresCertificate = c.FormValue("requiresCertificate") == "true"

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateVideo", reqData)
		return c.Next()
	}
}

// View validates a watch-progress sample.
func View() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ViewRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Duration < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"duration": "Duration must be a non-negative number of seconds!",
			})
		}

		c.Locals("validatedView", reqData)
		return c.Next()
	}
}
