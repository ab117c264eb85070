package settings_test

import (
	"net/http"
	"testing"

	"github.com/gifdock/gifdock/internal/models"
	"github.com/gifdock/gifdock/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsDefaults(t *testing.T) {
	app, _, _ := testutils.SetupTestApp(t)

	rec := testutils.MakeRequest(t, app, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var settings models.Settings
	envelope := testutils.ParseResponse(t, rec, &settings)
	assert.True(t, envelope.Success)
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestSaveSettings(t *testing.T) {
	app, _, _ := testutils.SetupTestApp(t)

	apiKey := "secret"
	updated := models.DefaultSettings()
	updated.APIKey = &apiKey
	updated.Theme = models.ThemeDark
	updated.WindowWidth = 1280

	rec := testutils.MakeRequest(t, app, http.MethodPut, "/settings", updated)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = testutils.MakeRequest(t, app, http.MethodGet, "/settings", nil)
	var settings models.Settings
	testutils.ParseResponse(t, rec, &settings)
	assert.Equal(t, updated, settings)
}

func TestUpdateSettingsKey(t *testing.T) {
	app, _, _ := testutils.SetupTestApp(t)

	rec := testutils.MakeRequest(t, app, http.MethodPatch, "/settings/window_height", map[string]string{
		"value": `720`,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = testutils.MakeRequest(t, app, http.MethodGet, "/settings", nil)
	var settings models.Settings
	testutils.ParseResponse(t, rec, &settings)
	assert.Equal(t, 720, settings.WindowHeight)

	// The other keys keep their defaults.
	assert.Equal(t, 800, settings.WindowWidth)
}

func TestUpdateSettingsKeyRequiresValue(t *testing.T) {
	app, _, _ := testutils.SetupTestApp(t)

	rec := testutils.MakeRequest(t, app, http.MethodPatch, "/settings/hotkey", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
