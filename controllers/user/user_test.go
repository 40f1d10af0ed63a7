package userController_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"tms/config"
	"tms/database"
	"tms/middleware"
	"tms/models"
	userRoutes "tms/routers/userRoutes"

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
	userRoutes.SetupUserRoutes(app)
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

func authedRequest(t *testing.T, method, target string, user models.User, body string) *http.Request {
	t.Helper()

	token, err := middleware.GenerateSessionToken(user.ID, user.Role)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Cookie", middleware.SessionCookieName+"="+token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestListUsersRequiresAdmin(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "11.1111.11", models.RoleUser)

	// Unauthenticated
	resp, err := app.Test(httptest.NewRequest("GET", "/api/users", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	// Authenticated but not admin
	resp, err = app.Test(authedRequest(t, "GET", "/api/users", user, ""), -1)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestListUsersIncludesStats(t *testing.T) {
	app := setupTestApp(t)
	admin := createTestUser(t, "99.9999.99", models.RoleAdmin)
	user := createTestUser(t, "11.1111.11", models.RoleUser)

	db := database.Database.Db
	require.NoError(t, db.Create(&models.Video{Title: "Clip", Filename: "c.mp4", Duration: 600, UploadedBy: admin.ID, Active: true}).Error)
	require.NoError(t, db.Create(&models.VideoCompletion{UserID: user.ID, VideoID: 1, Progress: 100, CertificateIssued: true}).Error)
	require.NoError(t, db.Create(&models.VideoView{UserID: user.ID, VideoID: 1, Duration: 300}).Error)
	require.NoError(t, db.Create(&models.VideoView{UserID: user.ID, VideoID: 1, Duration: 290}).Error)

	resp, err := app.Test(authedRequest(t, "GET", "/api/users", admin, ""), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var env struct {
		Data []struct {
			NIP             string `json:"nip"`
			CompletedVideos int64  `json:"completedVideos"`
			TotalWatchTime  int64  `json:"totalWatchTime"`
			Certificates    int64  `json:"certificates"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Len(t, env.Data, 2)

	for _, row := range env.Data {
		if row.NIP == "11.1111.11" {
			assert.Equal(t, int64(1), row.CompletedVideos)
			assert.Equal(t, int64(590), row.TotalWatchTime)
			assert.Equal(t, int64(1), row.Certificates)
		}
	}
}

func TestCreateUserDuplicateNIP(t *testing.T) {
	app := setupTestApp(t)
	admin := createTestUser(t, "99.9999.99", models.RoleAdmin)
	createTestUser(t, "11.1111.11", models.RoleUser)

	resp, err := app.Test(authedRequest(t, "POST", "/api/users", admin,
		`{"name":"Dup","nip":"11.1111.11","password":"secret123"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	app := setupTestApp(t)
	admin := createTestUser(t, "99.9999.99", models.RoleAdmin)
	user := createTestUser(t, "11.1111.11", models.RoleUser)

	resp, err := app.Test(authedRequest(t, "PUT", fmt.Sprintf("/api/users/%d", user.ID), admin,
		`{"password":"changed123","rank":"Captain"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated models.User
	require.NoError(t, database.Database.Db.First(&updated, user.ID).Error)
	assert.Equal(t, "Captain", updated.Rank)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("changed123")))
}

func TestProgressIsolation(t *testing.T) {
	app := setupTestApp(t)
	admin := createTestUser(t, "99.9999.99", models.RoleAdmin)
	alice := createTestUser(t, "11.1111.11", models.RoleUser)
	bob := createTestUser(t, "22.2222.22", models.RoleUser)

	// A user may fetch their own progress
	resp, err := app.Test(authedRequest(t, "GET", fmt.Sprintf("/api/users/%d/progress", alice.ID), alice, ""), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// but not someone else's
	resp, err = app.Test(authedRequest(t, "GET", fmt.Sprintf("/api/users/%d/progress", alice.ID), bob, ""), -1)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	// while an admin may fetch anyone's
	resp, err = app.Test(authedRequest(t, "GET", fmt.Sprintf("/api/users/%d/progress", alice.ID), admin, ""), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestProgressPayload(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "11.1111.11", models.RoleUser)

	db := database.Database.Db
	require.NoError(t, db.Create(&models.Video{Title: "A", Filename: "a.mp4", Duration: 100, UploadedBy: user.ID, Active: true}).Error)
	require.NoError(t, db.Create(&models.Video{Title: "B", Filename: "b.mp4", Duration: 100, UploadedBy: user.ID, Active: true}).Error)
	require.NoError(t, db.Create(&models.VideoCompletion{UserID: user.ID, VideoID: 1, Progress: 100}).Error)
	require.NoError(t, db.Create(&models.VideoView{UserID: user.ID, VideoID: 1, Duration: 95}).Error)

	resp, err := app.Test(authedRequest(t, "GET", fmt.Sprintf("/api/users/%d/progress", user.ID), user, ""), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var env struct {
		Data struct {
			Stats struct {
				CompletedVideos int64 `json:"completedVideos"`
				TotalVideos     int64 `json:"totalVideos"`
				TotalWatchTime  int64 `json:"totalWatchTime"`
				Certificates    int64 `json:"certificates"`
			} `json:"stats"`
			Completions []models.VideoCompletion `json:"completions"`
			Views       []models.VideoView       `json:"views"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	assert.Equal(t, int64(1), env.Data.Stats.CompletedVideos)
	assert.Equal(t, int64(2), env.Data.Stats.TotalVideos)
	assert.Equal(t, int64(95), env.Data.Stats.TotalWatchTime)
	assert.Equal(t, int64(0), env.Data.Stats.Certificates)
	assert.Len(t, env.Data.Completions, 1)
	assert.Len(t, env.Data.Views, 1)
}
