package videoController_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"tms/config"
	"tms/database"
	"tms/middleware"
	"tms/models"
	videoRoutes "tms/routers/videoRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()
	config.AppConfig.UploadDir = t.TempDir()
	database.ConnectTestDb()

	app := fiber.New()
	videoRoutes.SetupVideoRoutes(app)
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

func sessionCookie(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateSessionToken(user.ID, user.Role)
	require.NoError(t, err)
	return middleware.SessionCookieName + "=" + token
}

func jsonRequest(method, target, cookie, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return req
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}
