// Package testutil wires handlers to an in-memory sqlite database and a
// bare fiber app for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"delivery-admin/internal/apierror"
	"delivery-admin/internal/auth"
	"delivery-admin/internal/database"
	"delivery-admin/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	UserID   = "7b0f3c1e-2d4a-4c55-9a61-0c7f3d2b9e10"
	UserName = "Test Admin"
)

// SetupDB opens a fresh in-memory sqlite database, migrates it and installs
// it as database.DB for the duration of the test.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})
	return db
}

// NewApp returns a fiber app with the production error handler and the
// locals the JWT middleware would set for an admin.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apierror.Handler})
	app.Use(FakeAuth(models.RoleSuperAdmin))
	return app
}

func FakeAuth(role models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, UserID)
		c.Locals(auth.CtxUserNameKey, UserName)
		c.Locals(auth.CtxUserRoleKey, role)
		return c.Next()
	}
}

// Do sends body as JSON (nil for no body) and returns the status code and
// raw response body.
func Do(t *testing.T, app *fiber.App, method, target string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return Send(t, app, req)
}

func Send(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// Decode unmarshals a response body into T.
func Decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

// ErrorMessage returns the "error" field of an error response.
func ErrorMessage(t *testing.T, body []byte) string {
	t.Helper()
	return Decode[map[string]string](t, body)["error"]
}
