package videoController_test

import (
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"tms/config"
	"tms/database"
	"tms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeVideoFile drops a file with size distinct byte values under the
// uploads/videos directory and returns its content.
func writeVideoFile(t *testing.T, filename string, size int) []byte {
	t.Helper()

	content := make([]byte, size)
	for i := range content {
		content[i] = byte(i % 251)
	}

	dir := filepath.Join(config.AppConfig.UploadDir, "videos")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), content, 0644))
	return content
}

func TestStreamVideoFull(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "11.1111.11", models.RoleUser)
	cookie := sessionCookie(t, user)

	content := writeVideoFile(t, "clip.mp4", 4096)
	video := models.Video{Title: "Clip", Filename: "clip.mp4", Duration: 60, UploadedBy: user.ID, Active: true}
	require.NoError(t, database.Database.Db.Create(&video).Error)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/videos/%d/stream", video.ID), nil)
	req.Header.Set("Cookie", cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "video/mp4", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, body)
}

func TestStreamVideoOpenEndedRange(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "11.1111.11", models.RoleUser)
	cookie := sessionCookie(t, user)

	content := writeVideoFile(t, "clip.mp4", 4096)
	video := models.Video{Title: "Clip", Filename: "clip.mp4", Duration: 60, UploadedBy: user.ID, Active: true}
	require.NoError(t, database.Database.Db.Create(&video).Error)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/videos/%d/stream", video.ID), nil)
	req.Header.Set("Cookie", cookie)
	req.Header.Set("Range", "bytes=0-")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, 206, resp.StatusCode)
	assert.Equal(t, "bytes 0-4095/4096", resp.Header.Get("Content-Range"))
	assert.Equal(t, "bytes", resp.Header.Get("Accept-Ranges"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, body)
}

func TestStreamVideoMidRange(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "11.1111.11", models.RoleUser)
	cookie := sessionCookie(t, user)

	content := writeVideoFile(t, "clip.mp4", 4096)
	video := models.Video{Title: "Clip", Filename: "clip.mp4", Duration: 60, UploadedBy: user.ID, Active: true}
	require.NoError(t, database.Database.Db.Create(&video).Error)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/videos/%d/stream", video.ID), nil)
	req.Header.Set("Cookie", cookie)
	req.Header.Set("Range", "bytes=100-199")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, 206, resp.StatusCode)
	assert.Equal(t, "bytes 100-199/4096", resp.Header.Get("Content-Range"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content[100:200], body)
}

func TestStreamVideoRangeEndClamped(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "11.1111.11", models.RoleUser)
	cookie := sessionCookie(t, user)

	content := writeVideoFile(t, "clip.mp4", 1000)
	video := models.Video{Title: "Clip", Filename: "clip.mp4", Duration: 60, UploadedBy: user.ID, Active: true}
	require.NoError(t, database.Database.Db.Create(&video).Error)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/videos/%d/stream", video.ID), nil)
	req.Header.Set("Cookie", cookie)
	req.Header.Set("Range", "bytes=900-5000")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, 206, resp.StatusCode)
	assert.Equal(t, "bytes 900-999/1000", resp.Header.Get("Content-Range"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content[900:], body)
}

func TestStreamVideoErrors(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "11.1111.11", models.RoleUser)
	cookie := sessionCookie(t, user)

	// Unauthenticated
	req := httptest.NewRequest("GET", "/api/videos/1/stream", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	// Video record missing
	req = httptest.NewRequest("GET", "/api/videos/999/stream", nil)
	req.Header.Set("Cookie", cookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	// Record exists but backing file is gone
	video := models.Video{Title: "Ghost", Filename: "missing.mp4", Duration: 60, UploadedBy: user.ID, Active: true}
	require.NoError(t, database.Database.Db.Create(&video).Error)

	req = httptest.NewRequest("GET", fmt.Sprintf("/api/videos/%d/stream", video.ID), nil)
	req.Header.Set("Cookie", cookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	// Malformed range
	writeVideoFile(t, "ok.mp4", 100)
	ok := models.Video{Title: "OK", Filename: "ok.mp4", Duration: 60, UploadedBy: user.ID, Active: true}
	require.NoError(t, database.Database.Db.Create(&ok).Error)

	req = httptest.NewRequest("GET", fmt.Sprintf("/api/videos/%d/stream", ok.ID), nil)
	req.Header.Set("Cookie", cookie)
	req.Header.Set("Range", "bytes=oops")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
