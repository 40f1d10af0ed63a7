package statsController

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
	"tms/database"
	"tms/middleware"
	"tms/models"
	"tms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserStats is the per-user aggregate over completions and view samples.
// TotalVideos is the denominator: the count of currently active videos.
type UserStats struct {
	CompletedVideos int64 `json:"completedVideos"`
	TotalVideos     int64 `json:"totalVideos"`
	TotalWatchTime  int64 `json:"totalWatchTime"`
	Certificates    int64 `json:"certificates"`
}

// UserWithStats is a user row joined with their aggregates for listings and
// the progress report.
type UserWithStats struct {
	models.User
	CompletedVideos int64 `json:"completedVideos"`
	TotalWatchTime  int64 `json:"totalWatchTime"`
	Certificates    int64 `json:"certificates"`
}

// SystemStatsData are the system-wide counters.
type SystemStatsData struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalVideos       int64 `json:"totalVideos"`
	TotalViews        int64 `json:"totalViews"`
	TotalCertificates int64 `json:"totalCertificates"`
}

// ComputeUserStats recomputes a user's aggregates from the store. No caching;
// every request pays the query cost.
func ComputeUserStats(db *gorm.DB, userID uint) (UserStats, error) {
	var stats UserStats

	if err := db.Model(&models.VideoCompletion{}).
		Where("user_id = ?", userID).
		Count(&stats.CompletedVideos).Error; err != nil {
		return stats, err
	}

	if err := db.Model(&models.Video{}).
		Where("active = ?", true).
		Count(&stats.TotalVideos).Error; err != nil {
		return stats, err
	}

	var watchTime *int64
	if err := db.Model(&models.VideoView{}).
		Where("user_id = ?", userID).
		Select("SUM(duration)").
		Scan(&watchTime).Error; err != nil {
		return stats, err
	}
	if watchTime != nil {
		stats.TotalWatchTime = *watchTime
	}

	if err := db.Model(&models.VideoCompletion{}).
		Where("user_id = ? AND certificate_issued = ?", userID, true).
		Count(&stats.Certificates).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

// ListUsersWithStats returns every user with their aggregates, ordered by name.
func ListUsersWithStats(db *gorm.DB) ([]UserWithStats, error) {
	var users []models.User
	if err := db.Order("name asc").Find(&users).Error; err != nil {
		return nil, err
	}

	result := make([]UserWithStats, len(users))
	for i, user := range users {
		stats, err := ComputeUserStats(db, user.ID)
		if err != nil {
			return nil, err
		}
		result[i] = UserWithStats{
			User:            user,
			CompletedVideos: stats.CompletedVideos,
			TotalWatchTime:  stats.TotalWatchTime,
			Certificates:    stats.Certificates,
		}
	}

	return result, nil
}

// SystemStats handles GET /api/stats/system.
func SystemStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var stats SystemStatsData
	if err := db.Model(&models.User{}).Where("active = ?", true).Count(&stats.TotalUsers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute statistics!", nil)
	}
	if err := db.Model(&models.Video{}).Where("active = ?", true).Count(&stats.TotalVideos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute statistics!", nil)
	}
	if err := db.Model(&models.VideoView{}).Count(&stats.TotalViews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute statistics!", nil)
	}
	if err := db.Model(&models.VideoCompletion{}).Where("certificate_issued = ?", true).Count(&stats.TotalCertificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute statistics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "System statistics fetched successfully.", stats)
}

type videoReportRow struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Duration    int    `json:"duration"`
	Completions int64  `json:"completions"`
	Views       int64  `json:"views"`
}

// ProgressReport handles GET /api/reports/progress. With ?format=csv the
// per-user summary is streamed as a CSV attachment.
func ProgressReport(c *fiber.Ctx) error {
	db := database.Database.Db

	users, err := ListUsersWithStats(db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate report!", nil)
	}

	if c.Query("format") == "csv" {
		return sendUsersCSV(c, users)
	}

	var videos []models.Video
	if err := db.Where("active = ?", true).Order("created_at desc").Find(&videos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate report!", nil)
	}

	videoRows := make([]videoReportRow, len(videos))
	for i, video := range videos {
		row := videoReportRow{
			ID:       video.ID,
			Title:    video.Title,
			Category: "Uncategorized",
			Duration: video.Duration,
		}
		if video.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *video.CategoryID).Error; err == nil {
				row.Category = category.Name
			}
		}
		db.Model(&models.VideoCompletion{}).Where("video_id = ?", video.ID).Count(&row.Completions)
		db.Model(&models.VideoView{}).Where("video_id = ?", video.ID).Count(&row.Views)
		videoRows[i] = row
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress report generated successfully.", fiber.Map{
		"users":       users,
		"videos":      videoRows,
		"generatedAt": time.Now().Format(time.RFC3339),
	})
}

func sendUsersCSV(c *fiber.Ctx, users []UserWithStats) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"name", "nip", "rank", "completed_videos", "watch_time", "certificates", "last_login"})
	for _, u := range users {
		lastLogin := ""
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format(time.RFC3339)
		}
		w.Write([]string{
			u.Name,
			u.NIP,
			u.Rank,
			strconv.FormatInt(u.CompletedVideos, 10),
			utils.FormatDuration(float64(u.TotalWatchTime)),
			strconv.FormatInt(u.Certificates, 10),
			lastLogin,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate report!", nil)
	}

	filename := fmt.Sprintf("progress-report-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
