package auth

import (
	"strings"

	"delivery-admin/internal/config"
	"delivery-admin/internal/database"
	"delivery-admin/internal/logger"
	"delivery-admin/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

var log = logger.New("auth")

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	CreatedAt string          `json:"created_at"`
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func createUser(body RegisterRequest, role models.UserRole) (*models.User, error) {
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	body.Name = strings.TrimSpace(body.Name)

	if body.Email == "" || body.Password == "" || body.Name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required")
	}
	if len(body.Password) < 8 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
	}

	user := models.User{
		Name:         body.Name,
		Email:        body.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "This email is already registered")
		}
		log.Errorf("create user %s: %v", body.Email, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
	}
	return &user, nil
}

// POST /api/auth/register-super-admin
// Only allowed while no super admin exists.
func RegisterSuperAdminHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var count int64
		if err := database.DB.Model(&models.User{}).
			Where("role = ?", models.RoleSuperAdmin).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not check existing users")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "A super admin already exists")
		}

		user, err := createUser(body, models.RoleSuperAdmin)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toUserResponse(*user))
	}
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		log.Infof("login: %s", user.Email)
		return c.JSON(fiber.Map{
			"token": token,
			"user":  toUserResponse(user),
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := Actor(c)

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User no longer exists")
		}
		return c.JSON(toUserResponse(user))
	}
}

// POST /api/admin/users (super_admin only)
func CreateAdminUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		user, err := createUser(body, models.RoleAdmin)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toUserResponse(*user))
	}
}

// GET /api/admin/users
func ListAdminUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list users")
		}

		res := make([]UserResponse, 0, len(users))
		for _, u := range users {
			res = append(res, toUserResponse(u))
		}
		return c.JSON(res)
	}
}
