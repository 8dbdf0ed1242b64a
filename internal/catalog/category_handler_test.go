package catalog

import (
	"net/http"
	"testing"

	"delivery-admin/internal/models"
	"delivery-admin/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryApp() *fiber.App {
	app := testutil.NewApp()
	app.Get("/api/categories", ListCategoriesHandler())
	app.Get("/api/categories/options", CategoryOptionsHandler())
	app.Post("/api/categories", CreateCategoryHandler())
	app.Put("/api/categories/:id", UpdateCategoryHandler())
	app.Delete("/api/categories/:id", DeleteCategoryHandler())
	return app
}

func TestCategoryLifecycle(t *testing.T) {
	testutil.SetupDB(t)
	app := categoryApp()

	status, body := testutil.Do(t, app, http.MethodPost, "/api/categories", map[string]any{
		"name": "Pizza & Pasta", "icon": "🍕", "order_index": "2",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	pizza := testutil.Decode[models.Category](t, body)
	assert.Equal(t, "pizza-pasta", pizza.Slug)
	assert.Equal(t, 2, pizza.OrderIndex)
	assert.True(t, pizza.IsActive)

	status, body = testutil.Do(t, app, http.MethodPost, "/api/categories", map[string]any{"name": "Burgers", "order_index": 1})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = testutil.Do(t, app, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, status)
	list := testutil.Decode[[]models.Category](t, body)
	require.Len(t, list, 2)
	assert.Equal(t, "Burgers", list[0].Name)

	status, body = testutil.Do(t, app, http.MethodPut, "/api/categories/"+pizza.ID, map[string]any{
		"name": "Pizza", "slug": "pizza", "is_active": false,
	})
	require.Equal(t, http.StatusOK, status, string(body))
	updated := testutil.Decode[models.Category](t, body)
	assert.Equal(t, "pizza", updated.Slug)
	assert.Nil(t, updated.Icon)
	assert.False(t, updated.IsActive)

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/categories", map[string]any{"name": "Pizza"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/categories/"+pizza.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = testutil.Do(t, app, http.MethodGet, "/api/categories/options", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, testutil.Decode[[]OptionResponse](t, body), 1)
}
