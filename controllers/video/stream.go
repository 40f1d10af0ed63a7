package videoController

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"tms/config"
	"tms/database"
	"tms/middleware"
	"tms/models"

	"github.com/gofiber/fiber/v2"
)

// rangeReader streams one byte span of an open file. fasthttp closes the body
// stream after serving when it implements io.Closer, which releases the file
// handle even on early client disconnect.
type rangeReader struct {
	r io.Reader
	f *os.File
}

func (rr *rangeReader) Read(p []byte) (int, error) { return rr.r.Read(p) }
func (rr *rangeReader) Close() error               { return rr.f.Close() }

// parseRange parses "bytes=start-end". start is required; end defaults to
// size-1 and is clamped to the file.
func parseRange(header string, size int64) (int64, int64, error) {
	spec := strings.TrimPrefix(header, "bytes=")
	if spec == header {
		return 0, 0, fmt.Errorf("unsupported range unit")
	}

	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed range")
	}

	start, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil || start < 0 || start >= size {
		return 0, 0, fmt.Errorf("invalid range start")
	}

	end := size - 1
	if raw := strings.TrimSpace(parts[1]); raw != "" {
		end, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || end < start {
			return 0, 0, fmt.Errorf("invalid range end")
		}
		if end > size-1 {
			end = size - 1
		}
	}

	return start, end, nil
}

// StreamVideo serves the video bytes, honoring HTTP byte-range requests so
// the player can seek without downloading the whole file.
func StreamVideo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	var video models.Video
	if err := database.Database.Db.Where("id = ? AND active = ?", id, true).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	videoPath := filepath.Join(config.AppConfig.UploadDir, "videos", video.Filename)

	info, err := os.Stat(videoPath)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "File not found!", nil)
	}
	fileSize := info.Size()

	f, err := os.Open(videoPath)
	if err != nil {
		log.Printf("Error opening video file %s: %v", videoPath, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to open video file!", nil)
	}

	c.Set(fiber.HeaderContentType, "video/mp4")

	rangeHeader := c.Get(fiber.HeaderRange)
	if rangeHeader == "" {
		c.Status(fiber.StatusOK)
		return c.SendStream(&rangeReader{r: f, f: f}, int(fileSize))
	}

	start, end, err := parseRange(rangeHeader, fileSize)
	if err != nil {
		f.Close()
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Range header!", nil)
	}

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		f.Close()
		log.Printf("Error seeking video file %s: %v", videoPath, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read video file!", nil)
	}

	chunkSize := end - start + 1
	c.Set(fiber.HeaderContentRange, fmt.Sprintf("bytes %d-%d/%d", start, end, fileSize))
	c.Set(fiber.HeaderAcceptRanges, "bytes")
	c.Status(fiber.StatusPartialContent)

	return c.SendStream(&rangeReader{r: io.LimitReader(f, chunkSize), f: f}, int(chunkSize))
}
