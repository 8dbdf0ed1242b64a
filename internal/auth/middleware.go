package auth

import (
	"strings"

	"delivery-admin/internal/config"
	"delivery-admin/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUserNameKey = "user_name"
	CtxUserRoleKey = "user_role"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing Authorization header")
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
	}
	return token, nil
}

// JWTMiddleware verifies HS256 tokens issued by LoginHandler and exposes
// the operator through c.Locals.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	key := []byte(cfg.JWTSecret)

	return func(c *fiber.Ctx) error {
		raw, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims := &JWTCustomClaims{}
		if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return key, nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}
		if claims.UserID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Could not read token claims")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserNameKey, claims.Name)
		c.Locals(CtxUserRoleKey, claims.Role)
		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Missing role information")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "You are not allowed to perform this action")
	}
}

// Actor returns the authenticated operator's id and name.
func Actor(c *fiber.Ctx) (string, string) {
	id, _ := c.Locals(CtxUserIDKey).(string)
	name, _ := c.Locals(CtxUserNameKey).(string)
	return id, name
}
