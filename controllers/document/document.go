package documentController

import (
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"
	"tms/config"
	"tms/database"
	"tms/middleware"
	"tms/models"
	"tms/utils"
	documentValidator "tms/validators/document"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DocumentWithDetails is the read-side aggregate for document listings.
type DocumentWithDetails struct {
	models.Document
	Category *models.Category      `json:"category"`
	Uploader *models.User          `json:"uploader"`
	Views    []models.DocumentView `json:"views"`
}

func withDetails(db *gorm.DB, document models.Document) DocumentWithDetails {
	details := DocumentWithDetails{
		Document: document,
		Views:    []models.DocumentView{},
	}

	if document.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, *document.CategoryID).Error; err == nil {
			details.Category = &category
		}
	}

	var uploader models.User
	if err := db.First(&uploader, document.UploadedBy).Error; err == nil {
		details.Uploader = &uploader
	}

	db.Where("document_id = ?", document.ID).Find(&details.Views)

	return details
}

// ListDocuments returns active documents with details.
func ListDocuments(c *fiber.Ctx) error {
	db := database.Database.Db

	var documents []models.Document
	if err := db.Where("active = ?", true).Order("created_at desc").Find(&documents).Error; err != nil {
		log.Printf("Error listing documents: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch documents!", nil)
	}

	result := make([]DocumentWithDetails, len(documents))
	for i, document := range documents {
		result[i] = withDetails(db, document)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Documents fetched successfully.", result)
}

// CreateDocument stores the uploaded file under uploads/documents and creates
// the metadata row. Admin only.
func CreateDocument(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedCreateDocument").(*documentValidator.CreateDocumentRequest)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	destDir := filepath.Join(config.AppConfig.UploadDir, "documents")
	filename, err := utils.SaveUploadedFile(file, destDir)
	if err != nil {
		log.Printf("Error saving uploaded document: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store document file!", nil)
	}

	fileType := strings.TrimPrefix(filepath.Ext(file.Filename), ".")
	if fileType == "" {
		if parts := strings.SplitN(file.Header.Get("Content-Type"), "/", 2); len(parts) == 2 {
			fileType = parts[1]
		}
	}

	document := models.Document{
		Title:       reqData.Title,
		Description: reqData.Description,
		Filename:    filename,
		FileType:    fileType,
		FileSize:    file.Size,
		CategoryID:  reqData.CategoryID,
		UploadedBy:  userID,
		Active:      true,
	}

	if err := database.Database.Db.Create(&document).Error; err != nil {
		log.Printf("Error creating document: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create document!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Document created successfully.", document)
}

// DownloadDocument records the download and serves the file as an attachment.
func DownloadDocument(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document id!", nil)
	}

	db := database.Database.Db

	var document models.Document
	if err := db.Where("id = ? AND active = ?", id, true).First(&document).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
	}

	documentPath := filepath.Join(config.AppConfig.UploadDir, "documents", document.Filename)
	if _, err := os.Stat(documentPath); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "File not found!", nil)
	}

	view := models.DocumentView{
		UserID:     userID,
		DocumentID: document.ID,
		ViewedAt:   time.Now(),
		Downloaded: true,
	}
	if err := db.Create(&view).Error; err != nil {
		log.Printf("Error recording document view: %v", err)
	}

	if err := db.Model(&document).Update("download_count", gorm.Expr("download_count + 1")).Error; err != nil {
		log.Printf("Error incrementing download count for document %d: %v", document.ID, err)
	}

	if contentType := mime.TypeByExtension(filepath.Ext(document.Filename)); contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.Download(documentPath, document.Filename)
}

// DeleteDocument soft-deletes by clearing the active flag.
func DeleteDocument(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document id!", nil)
	}

	db := database.Database.Db

	var document models.Document
	if err := db.Where("id = ? AND active = ?", id, true).First(&document).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
	}

	if err := db.Model(&document).Update("active", false).Error; err != nil {
		log.Printf("Error deleting document %d: %v", document.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete document!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document deleted successfully.", nil)
}
