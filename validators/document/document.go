package documentValidator

import (
	"strconv"
	"strings"
	"tms/middleware"

	"github.com/gofiber/fiber/v2"
)

// Document uploads are capped well below the video bound.
const maxDocumentSize = 50 * 1024 * 1024

var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

type CreateDocumentRequest struct {
	Title       string
	Description string
	CategoryID  *uint
}

func CreateDocument() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		file, err := c.FormFile("file")
		if err != nil {
			errors["file"] = "File is required!"
		} else {
			if !allowedDocumentTypes[file.Header.Get("Content-Type")] {
				errors["file"] = "Only PDF, DOC, DOCX, TXT, and image files are allowed!"
			}
			if file.Size > maxDocumentSize {
				errors["file"] = "File exceeds the 50 MB limit!"
			}
		}

		reqData := &CreateDocumentRequest{
			Title:       strings.TrimSpace(c.FormValue("title")),
			Description: strings.TrimSpace(c.FormValue("description")),
		}

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
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

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateDocument", reqData)
		return c.Next()
	}
}
