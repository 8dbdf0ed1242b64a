package cache

import (
	"context"
	"net/http"
	"testing"
	"time"

	"delivery-admin/internal/config"
	"delivery-admin/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
	})
	return mr
}

func newApp() *fiber.App {
	app := testutil.NewApp()
	app.Get("/api/redis", GetHandler())
	app.Post("/api/redis", SetHandler())
	app.Delete("/api/redis", DeleteHandler())
	app.Post("/api/redis/clear", ClearHandler())
	return app
}

func TestSetThenGet(t *testing.T) {
	mr := setupRedis(t)
	app := newApp()

	status, body := testutil.Do(t, app, http.MethodPost, "/api/redis", map[string]any{
		"key":   "restaurant:featured",
		"value": map[string]any{"ids": []string{"a", "b"}},
	})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.JSONEq(t, `{"success":true}`, string(body))

	stored, err := mr.Get("restaurant:featured")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ids":["a","b"]}`, stored)

	status, body = testutil.Do(t, app, http.MethodGet, "/api/redis?key=restaurant:featured", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"value":{"ids":["a","b"]}}`, string(body))
}

func TestSetWithTTL(t *testing.T) {
	mr := setupRedis(t)
	app := newApp()

	status, _ := testutil.Do(t, app, http.MethodPost, "/api/redis", map[string]any{
		"key": "banner", "value": "summer", "ttl": 60,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 60*time.Second, mr.TTL("banner"))

	mr.FastForward(61 * time.Second)
	assert.False(t, mr.Exists("banner"))
}

func TestSetNullValueIsAllowed(t *testing.T) {
	setupRedis(t)
	app := newApp()

	status, _ := testutil.Do(t, app, http.MethodPost, "/api/redis", map[string]any{"key": "k", "value": nil})
	assert.Equal(t, http.StatusOK, status)
}

func TestValidation(t *testing.T) {
	setupRedis(t)
	app := newApp()

	status, body := testutil.Do(t, app, http.MethodGet, "/api/redis", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Key is required", testutil.ErrorMessage(t, body))

	status, body = testutil.Do(t, app, http.MethodPost, "/api/redis", map[string]any{"key": "only-key"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Key and value are required", testutil.ErrorMessage(t, body))

	status, body = testutil.Do(t, app, http.MethodPost, "/api/redis", map[string]any{"value": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Key and value are required", testutil.ErrorMessage(t, body))

	status, _ = testutil.Do(t, app, http.MethodDelete, "/api/redis", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetMissingKey(t *testing.T) {
	setupRedis(t)
	status, body := testutil.Do(t, newApp(), http.MethodGet, "/api/redis?key=nope", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"value":null}`, string(body))
}

func TestGetNonJSONValueIs500(t *testing.T) {
	mr := setupRedis(t)
	require.NoError(t, mr.Set("raw", "not json"))

	status, body := testutil.Do(t, newApp(), http.MethodGet, "/api/redis?key=raw", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, testutil.ErrorMessage(t, body), "not valid JSON")
}

func TestDelete(t *testing.T) {
	mr := setupRedis(t)
	require.NoError(t, mr.Set("k", `"v"`))

	status, body := testutil.Do(t, newApp(), http.MethodDelete, "/api/redis?key=k", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"success":true}`, string(body))
	assert.False(t, mr.Exists("k"))
}

func TestClearWithPattern(t *testing.T) {
	mr := setupRedis(t)
	for _, k := range []string{"menu:1", "menu:2", "menu:3", "offer:1"} {
		require.NoError(t, mr.Set(k, "1"))
	}

	status, _ := testutil.Do(t, newApp(), http.MethodPost, "/api/redis/clear", map[string]any{"pattern": "menu:*"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"offer:1"}, mr.Keys())
}

func TestClearWithoutPatternFlushes(t *testing.T) {
	mr := setupRedis(t)
	require.NoError(t, mr.Set("a", "1"))
	require.NoError(t, mr.Set("b", "1"))

	status, _ := testutil.Do(t, newApp(), http.MethodPost, "/api/redis/clear", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, mr.Keys())
}

func TestRedisDownIs500(t *testing.T) {
	mr := setupRedis(t)
	mr.Close()

	status, body := testutil.Do(t, newApp(), http.MethodGet, "/api/redis?key=k", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotEmpty(t, testutil.ErrorMessage(t, body))
}

func TestJSONHelpers(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	var got map[string]int
	ok, err := GetJSON(ctx, "stats", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetJSON(ctx, "stats", map[string]int{"orders": 4}, time.Minute))
	ok, err = GetJSON(ctx, "stats", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, got["orders"])

	n, err := DeletePattern(ctx, "st*")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClientIsMemoised(t *testing.T) {
	Init(&configStub)
	t.Cleanup(func() { _ = Close() })

	a, err := Client()
	require.NoError(t, err)
	b, err := Client()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

var configStub = config.Config{RedisURL: "redis://127.0.0.1:6390/2"}
