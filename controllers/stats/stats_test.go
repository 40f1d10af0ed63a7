package statsController_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"tms/config"
	"tms/database"
	"tms/middleware"
	"tms/models"
	statsRoutes "tms/routers/statsRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()
	database.ConnectTestDb()

	app := fiber.New()
	statsRoutes.SetupStatsRoutes(app)
	return app
}

func createTestUser(t *testing.T, nip, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:     "Test User " + nip,
		NIP:      nip,
		Password: string(hash),
		Role:     role,
		Active:   true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func authedRequest(t *testing.T, target string, user models.User) *http.Request {
	t.Helper()

	token, err := middleware.GenerateSessionToken(user.ID, user.Role)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", target, nil)
	req.Header.Set("Cookie", middleware.SessionCookieName+"="+token)
	return req
}

func TestSystemStatsRequiresAdmin(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "11.1111.11", models.RoleUser)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/stats/system", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	resp, err = app.Test(authedRequest(t, "/api/stats/system", user), -1)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestSystemStatsTwoUsersNonCertificateVideo(t *testing.T) {
	app := setupTestApp(t)
	admin := createTestUser(t, "99.9999.99", models.RoleAdmin)
	alice := createTestUser(t, "11.1111.11", models.RoleUser)
	bob := createTestUser(t, "22.2222.22", models.RoleUser)

	db := database.Database.Db
	video := models.Video{Title: "Briefing", Filename: "b.mp4", Duration: 300, UploadedBy: admin.ID, Active: true}
	require.NoError(t, db.Create(&video).Error)

	// Both users watch and complete; the video does not grant certificates.
	for _, u := range []models.User{alice, bob} {
		require.NoError(t, db.Create(&models.VideoView{UserID: u.ID, VideoID: video.ID, Duration: 150}).Error)
		require.NoError(t, db.Create(&models.VideoView{UserID: u.ID, VideoID: video.ID, Duration: 290}).Error)
		require.NoError(t, db.Create(&models.VideoCompletion{
			UserID: u.ID, VideoID: video.ID, Progress: 100, CertificateIssued: video.RequiresCertificate,
		}).Error)
	}

	resp, err := app.Test(authedRequest(t, "/api/stats/system", admin), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var env struct {
		Data struct {
			TotalUsers        int64 `json:"totalUsers"`
			TotalVideos       int64 `json:"totalVideos"`
			TotalViews        int64 `json:"totalViews"`
			TotalCertificates int64 `json:"totalCertificates"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	assert.Equal(t, int64(3), env.Data.TotalUsers)
	assert.Equal(t, int64(1), env.Data.TotalVideos)
	assert.Equal(t, int64(4), env.Data.TotalViews)
	assert.Equal(t, int64(0), env.Data.TotalCertificates)
}

func TestProgressReportJson(t *testing.T) {
	app := setupTestApp(t)
	admin := createTestUser(t, "99.9999.99", models.RoleAdmin)
	user := createTestUser(t, "11.1111.11", models.RoleUser)

	db := database.Database.Db
	category := models.Category{Name: "Safety"}
	require.NoError(t, db.Create(&category).Error)

	video := models.Video{Title: "Drill", Filename: "d.mp4", Duration: 120, CategoryID: &category.ID, UploadedBy: admin.ID, Active: true}
	require.NoError(t, db.Create(&video).Error)
	require.NoError(t, db.Create(&models.VideoView{UserID: user.ID, VideoID: video.ID, Duration: 120}).Error)
	require.NoError(t, db.Create(&models.VideoCompletion{UserID: user.ID, VideoID: video.ID, Progress: 100}).Error)

	resp, err := app.Test(authedRequest(t, "/api/reports/progress", admin), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var env struct {
		Data struct {
			Users []struct {
				NIP string `json:"nip"`
			} `json:"users"`
			Videos []struct {
				Title       string `json:"title"`
				Category    string `json:"category"`
				Completions int64  `json:"completions"`
				Views       int64  `json:"views"`
			} `json:"videos"`
			GeneratedAt string `json:"generatedAt"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	assert.Len(t, env.Data.Users, 2)
	require.Len(t, env.Data.Videos, 1)
	assert.Equal(t, "Drill", env.Data.Videos[0].Title)
	assert.Equal(t, "Safety", env.Data.Videos[0].Category)
	assert.Equal(t, int64(1), env.Data.Videos[0].Completions)
	assert.Equal(t, int64(1), env.Data.Videos[0].Views)
	assert.NotEmpty(t, env.Data.GeneratedAt)
}

func TestProgressReportCsv(t *testing.T) {
	app := setupTestApp(t)
	admin := createTestUser(t, "99.9999.99", models.RoleAdmin)
	user := createTestUser(t, "11.1111.11", models.RoleUser)

	db := database.Database.Db
	require.NoError(t, db.Create(&models.VideoView{UserID: user.ID, VideoID: 1, Duration: 3661}).Error)

	resp, err := app.Test(authedRequest(t, "/api/reports/progress?format=csv", admin), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, "name,nip,rank,completed_videos,watch_time,certificates,last_login")
	assert.Contains(t, body, "11.1111.11")
	// 3661 seconds renders with the hour component
	assert.Contains(t, body, "1:01:01")
}
