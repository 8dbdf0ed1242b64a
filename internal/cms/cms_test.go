package cms

import (
	"net/http"
	"testing"

	"delivery-admin/internal/models"
	"delivery-admin/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cmsApp() *fiber.App {
	app := testutil.NewApp()
	app.Get("/api/config", ListConfigHandler())
	app.Post("/api/config", CreateConfigHandler())
	app.Get("/api/config/key/:key", GetConfigByKeyHandler())
	app.Put("/api/config/key/:key", UpsertConfigHandler())
	app.Put("/api/config/:id", UpdateConfigHandler())
	app.Delete("/api/config/:id", DeleteConfigHandler())
	app.Get("/api/content", ListContentHandler())
	app.Post("/api/content", CreateContentHandler())
	app.Put("/api/content/:id", UpdateContentHandler())
	app.Delete("/api/content/:id", DeleteContentHandler())
	return app
}

func TestCreateConfigAcceptsEditorText(t *testing.T) {
	testutil.SetupDB(t)
	app := cmsApp()

	status, body := testutil.Do(t, app, http.MethodPost, "/api/config", map[string]any{
		"key": "delivery", "value": `{"min_order": 10}`, "description": "Delivery rules",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	row := testutil.Decode[models.AppConfig](t, body)
	assert.JSONEq(t, `{"min_order": 10}`, string(row.Value))

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/config", map[string]any{"key": "delivery", "value": 1})
	assert.Equal(t, http.StatusConflict, status)

	status, body = testutil.Do(t, app, http.MethodPost, "/api/config", map[string]any{"key": "broken", "value": "{nope"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Value must be valid JSON", testutil.ErrorMessage(t, body))

	status, body = testutil.Do(t, app, http.MethodPost, "/api/config", map[string]any{"value": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Key is required", testutil.ErrorMessage(t, body))
}

func TestCreateConfigWithoutValueStoresEmptyObject(t *testing.T) {
	testutil.SetupDB(t)
	app := cmsApp()

	status, body := testutil.Do(t, app, http.MethodPost, "/api/config", map[string]any{"key": "flags"})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.JSONEq(t, `{}`, string(testutil.Decode[models.AppConfig](t, body).Value))
}

func TestUpdateConfigKeepsKey(t *testing.T) {
	db := testutil.SetupDB(t)
	app := cmsApp()

	row := models.AppConfig{Key: "hours", Value: []byte(`{"open":"10:00"}`)}
	require.NoError(t, db.Create(&row).Error)

	status, body := testutil.Do(t, app, http.MethodPut, "/api/config/"+row.ID, map[string]any{
		"key": "renamed", "value": map[string]any{"open": "11:00"},
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var got models.AppConfig
	require.NoError(t, db.First(&got, "id = ?", row.ID).Error)
	assert.Equal(t, "hours", got.Key)
	assert.JSONEq(t, `{"open":"11:00"}`, string(got.Value))
}

func TestUpsertConfigByKey(t *testing.T) {
	db := testutil.SetupDB(t)
	app := cmsApp()

	status, body := testutil.Do(t, app, http.MethodPut, "/api/config/key/banner", map[string]any{"value": map[string]any{"text": "Hi"}})
	require.Equal(t, http.StatusOK, status, string(body))
	first := testutil.Decode[models.AppConfig](t, body)

	status, body = testutil.Do(t, app, http.MethodPut, "/api/config/key/banner", map[string]any{
		"value": map[string]any{"text": "Ciao"}, "description": "Home banner",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	second := testutil.Decode[models.AppConfig](t, body)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Home banner", second.Description)

	var count int64
	db.Model(&models.AppConfig{}).Count(&count)
	assert.EqualValues(t, 1, count)

	status, body = testutil.Do(t, app, http.MethodGet, "/api/config/key/banner", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"text":"Ciao"}`, string(testutil.Decode[models.AppConfig](t, body).Value))

	var actions []models.AuditAction
	db.Model(&models.AuditLog{}).Where("entity_type = ?", "app_config").Order("id").Pluck("action", &actions)
	assert.Equal(t, []models.AuditAction{models.AuditActionCreate, models.AuditActionUpdate}, actions)

	status, _ = testutil.Do(t, app, http.MethodGet, "/api/config/key/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteConfig(t *testing.T) {
	db := testutil.SetupDB(t)
	app := cmsApp()

	row := models.AppConfig{Key: "gone", Value: []byte(`{}`)}
	require.NoError(t, db.Create(&row).Error)

	status, _ := testutil.Do(t, app, http.MethodDelete, "/api/config/"+row.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/config/"+row.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestContentDefaultsAndOrdering(t *testing.T) {
	testutil.SetupDB(t)
	app := cmsApp()

	status, body := testutil.Do(t, app, http.MethodPost, "/api/content", map[string]any{"order_index": 2})
	require.Equal(t, http.StatusCreated, status, string(body))
	row := testutil.Decode[models.Content](t, body)
	assert.Equal(t, "home", row.Page)
	assert.Equal(t, "default", row.Section)
	assert.Equal(t, "", row.Title)
	assert.JSONEq(t, `{}`, string(row.Content))
	assert.True(t, row.IsActive)

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/content", map[string]any{
		"page": "home", "section": "hero", "order_index": 1, "content": map[string]any{"cta": "Order now"},
	})
	require.Equal(t, http.StatusCreated, status)
	status, _ = testutil.Do(t, app, http.MethodPost, "/api/content", map[string]any{"page": "about"})
	require.Equal(t, http.StatusCreated, status)

	status, body = testutil.Do(t, app, http.MethodGet, "/api/content?page=home", nil)
	require.Equal(t, http.StatusOK, status)
	list := testutil.Decode[[]models.Content](t, body)
	require.Len(t, list, 2)
	assert.Equal(t, "hero", list[0].Section)
}

func TestUpdateAndDeleteContent(t *testing.T) {
	db := testutil.SetupDB(t)
	app := cmsApp()

	row := models.Content{Page: "home", Section: "hero", Content: []byte(`{}`), IsActive: true}
	require.NoError(t, db.Create(&row).Error)

	status, body := testutil.Do(t, app, http.MethodPut, "/api/content/"+row.ID, map[string]any{
		"page": "home", "section": "hero", "title": "Welcome", "is_active": false,
	})
	require.Equal(t, http.StatusOK, status, string(body))
	got := testutil.Decode[models.Content](t, body)
	assert.Equal(t, row.ID, got.ID)
	assert.Equal(t, "Welcome", got.Title)
	assert.False(t, got.IsActive)

	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/content/"+row.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)
}
