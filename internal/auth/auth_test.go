package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"delivery-admin/internal/apierror"
	"delivery-admin/internal/auth"
	"delivery-admin/internal/config"
	"delivery-admin/internal/models"
	"delivery-admin/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func authApp() *fiber.App {
	cfg := &config.Config{JWTSecret: secret}
	app := fiber.New(fiber.Config{ErrorHandler: apierror.Handler})
	app.Post("/api/auth/register-super-admin", auth.RegisterSuperAdminHandler())
	app.Post("/api/auth/login", auth.LoginHandler(cfg))

	protected := app.Group("/api", auth.JWTMiddleware(cfg))
	protected.Get("/auth/me", auth.MeHandler())
	admin := protected.Group("/admin", auth.RequireRole(models.RoleSuperAdmin))
	admin.Post("/users", auth.CreateAdminUserHandler())
	admin.Get("/users", auth.ListAdminUsersHandler())
	return app
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	status, body := testutil.Do(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, status, string(body))
	return testutil.Decode[map[string]any](t, body)["token"].(string)
}

func withToken(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestSuperAdminRegistersOnce(t *testing.T) {
	testutil.SetupDB(t)
	app := authApp()

	body := map[string]any{"name": "Owner", "email": " Owner@Example.com ", "password": "long-enough"}
	status, resp := testutil.Do(t, app, http.MethodPost, "/api/auth/register-super-admin", body)
	require.Equal(t, http.StatusCreated, status, string(resp))
	user := testutil.Decode[auth.UserResponse](t, resp)
	assert.Equal(t, "owner@example.com", user.Email)
	assert.Equal(t, models.RoleSuperAdmin, user.Role)

	status, resp = testutil.Do(t, app, http.MethodPost, "/api/auth/register-super-admin", body)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "A super admin already exists", testutil.ErrorMessage(t, resp))
}

func TestRegisterValidatesPassword(t *testing.T) {
	testutil.SetupDB(t)
	app := authApp()

	status, resp := testutil.Do(t, app, http.MethodPost, "/api/auth/register-super-admin", map[string]any{
		"name": "Owner", "email": "owner@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Password must be at least 8 characters", testutil.ErrorMessage(t, resp))
}

func TestLoginAndMe(t *testing.T) {
	testutil.SetupDB(t)
	app := authApp()

	status, _ := testutil.Do(t, app, http.MethodPost, "/api/auth/register-super-admin", map[string]any{
		"name": "Owner", "email": "owner@example.com", "password": "long-enough",
	})
	require.Equal(t, http.StatusCreated, status)

	status, resp := testutil.Do(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email": "owner@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", testutil.ErrorMessage(t, resp))

	token := login(t, app, "OWNER@example.com", "long-enough")
	status, resp = testutil.Send(t, app, withToken(http.MethodGet, "/api/auth/me", token))
	require.Equal(t, http.StatusOK, status, string(resp))
	assert.Equal(t, "Owner", testutil.Decode[auth.UserResponse](t, resp).Name)
}

func TestMiddlewareRejectsBadTokens(t *testing.T) {
	testutil.SetupDB(t)
	app := authApp()

	status, resp := testutil.Send(t, app, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Missing Authorization header", testutil.ErrorMessage(t, resp))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Token abc")
	status, _ = testutil.Send(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = testutil.Send(t, app, withToken(http.MethodGet, "/api/auth/me", "not-a-jwt"))
	assert.Equal(t, http.StatusUnauthorized, status)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.JWTCustomClaims{
		UserID: testutil.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte(secret))
	require.NoError(t, err)
	status, resp = testutil.Send(t, app, withToken(http.MethodGet, "/api/auth/me", signed))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", testutil.ErrorMessage(t, resp))

	wrongKey, err := auth.GenerateToken("another-secret-another-secret-xx", &models.User{Base: models.Base{ID: testutil.UserID}})
	require.NoError(t, err)
	status, _ = testutil.Send(t, app, withToken(http.MethodGet, "/api/auth/me", wrongKey))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminUsersRequireSuperAdmin(t *testing.T) {
	db := testutil.SetupDB(t)
	app := authApp()

	status, _ := testutil.Do(t, app, http.MethodPost, "/api/auth/register-super-admin", map[string]any{
		"name": "Owner", "email": "owner@example.com", "password": "long-enough",
	})
	require.Equal(t, http.StatusCreated, status)
	ownerToken := login(t, app, "owner@example.com", "long-enough")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/users",
		strings.NewReader(`{"name":"Staff","email":"staff@example.com","password":"long-enough"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+ownerToken)
	status, resp := testutil.Send(t, app, req)
	require.Equal(t, http.StatusCreated, status, string(resp))
	assert.Equal(t, models.RoleAdmin, testutil.Decode[auth.UserResponse](t, resp).Role)

	staffToken := login(t, app, "staff@example.com", "long-enough")
	status, _ = testutil.Send(t, app, withToken(http.MethodGet, "/api/admin/users", staffToken))
	assert.Equal(t, http.StatusForbidden, status)

	status, resp = testutil.Send(t, app, withToken(http.MethodGet, "/api/admin/users", ownerToken))
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, testutil.Decode[[]auth.UserResponse](t, resp), 2)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 2, count)
}
