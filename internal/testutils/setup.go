package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gifdock/gifdock/internal/database"
	"github.com/gifdock/gifdock/internal/downloader"
	"github.com/gifdock/gifdock/internal/server"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// TestDB opens a fresh database file under the test's temp dir and runs the
// full migration sequence against it.
func TestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "Failed to migrate test database")

	t.Cleanup(func() { db.Close() })
	return db
}

// TestDownloader builds a downloader rooted in the test's temp dir.
func TestDownloader(t *testing.T) *downloader.Downloader {
	t.Helper()

	dl := downloader.New(filepath.Join(t.TempDir(), "media"), nil)
	require.NoError(t, dl.EnsureDirectories(), "Failed to initialize media directories")
	return dl
}

// SetupTestApp wires a fiber app with a fresh database and media tree and no
// provider client.
func SetupTestApp(t *testing.T) (*fiber.App, *database.Database, *downloader.Downloader) {
	t.Helper()

	db := TestDB(t)
	dl := TestDownloader(t)

	app := server.New(server.Deps{DB: db, Downloader: dl})
	return app, db, dl
}

// MakeRequest runs a JSON request against the test app and returns a
// recorder holding the response.
func MakeRequest(t *testing.T, app *fiber.App, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()

	return rec
}

// StandardResponse mirrors the command boundary envelope for assertions.
type StandardResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorDetail    `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseResponse decodes the envelope and, when out is non-nil, the data
// payload into out.
func ParseResponse(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) StandardResponse {
	t.Helper()

	var envelope StandardResponse
	err := json.NewDecoder(rec.Body).Decode(&envelope)
	require.NoError(t, err, "Failed to parse response envelope")

	if out != nil && envelope.Data != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out), "Failed to parse response data")
	}
	return envelope
}
