// Package server builds the fiber application and its route table.
package server

import (
	"strings"

	"delivery-admin/internal/apierror"
	"delivery-admin/internal/audit"
	"delivery-admin/internal/auth"
	"delivery-admin/internal/cache"
	"delivery-admin/internal/catalog"
	"delivery-admin/internal/cms"
	"delivery-admin/internal/config"
	"delivery-admin/internal/dashboard"
	"delivery-admin/internal/events"
	"delivery-admin/internal/files"
	"delivery-admin/internal/i18n"
	"delivery-admin/internal/models"
	"delivery-admin/internal/orders"
	"delivery-admin/internal/promotions"
	"delivery-admin/internal/riders"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
)

// BodyLimit leaves room for multipart overhead on top of the 5 MiB image cap.
const BodyLimit = 20 << 20

func New(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: apierror.Handler,
		BodyLimit:    BodyLimit,
	})

	// Credentials (the language cookie) cannot be combined with a wildcard.
	origins := strings.Join(cfg.Origins(), ",")
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: !strings.Contains(origins, "*"),
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "${time} ${status} ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(i18n.Middleware())

	if cfg.StorageDriver == "local" {
		app.Static("/storage", cfg.StoragePath)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Get("/i18n", i18n.GetLanguageHandler())
	api.Put("/i18n", i18n.SetLanguageHandler())

	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))
	adminRoutes.Get("/users", auth.ListAdminUsersHandler())
	adminRoutes.Post("/users", auth.CreateAdminUserHandler())

	registerCatalog(protected)
	registerOperations(protected, cfg)
	registerContent(protected)

	// Dashboard
	protected.Get("/dashboard/stats", dashboard.StatsHandler(cfg.DashboardCacheTTL))
	protected.Get("/dashboard/revenue-chart", dashboard.RevenueChartHandler(cfg.TZ()))
	protected.Get("/dashboard/nav", dashboard.NavHandler())

	// Redis
	protected.Get("/redis", cache.GetHandler())
	protected.Post("/redis", cache.SetHandler())
	protected.Delete("/redis", cache.DeleteHandler())
	protected.Post("/redis/clear", cache.ClearHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	return app
}

func registerCatalog(r fiber.Router) {
	r.Get("/restaurants", catalog.ListRestaurantsHandler())
	r.Get("/restaurants/options", catalog.RestaurantOptionsHandler())
	r.Get("/restaurants/:id", catalog.GetRestaurantHandler())
	r.Post("/restaurants", catalog.CreateRestaurantHandler())
	r.Put("/restaurants/:id", catalog.UpdateRestaurantHandler())
	r.Delete("/restaurants/:id", catalog.DeleteRestaurantHandler())

	r.Get("/categories", catalog.ListCategoriesHandler())
	r.Get("/categories/options", catalog.CategoryOptionsHandler())
	r.Post("/categories", catalog.CreateCategoryHandler())
	r.Put("/categories/:id", catalog.UpdateCategoryHandler())
	r.Delete("/categories/:id", catalog.DeleteCategoryHandler())

	r.Get("/menu-items", catalog.ListMenuItemsHandler())
	r.Post("/menu-items/import", catalog.ImportMenuItemsHandler())
	r.Get("/menu-items/:id", catalog.GetMenuItemHandler())
	r.Post("/menu-items", catalog.CreateMenuItemHandler())
	r.Put("/menu-items/:id", catalog.UpdateMenuItemHandler())
	r.Delete("/menu-items/:id", catalog.DeleteMenuItemHandler())

	r.Get("/addons", catalog.ListAddonsHandler())
	r.Post("/addons", catalog.CreateAddonHandler())
	r.Put("/addons/:id", catalog.UpdateAddonHandler())
	r.Delete("/addons/:id", catalog.DeleteAddonHandler())
	r.Get("/addons/:id/options", catalog.ListAddonOptionsHandler())
	r.Post("/addons/:id/options", catalog.CreateAddonOptionHandler())
	r.Put("/addons/:id/options/:optionId", catalog.UpdateAddonOptionHandler())
	r.Delete("/addons/:id/options/:optionId", catalog.DeleteAddonOptionHandler())
}

func registerOperations(r fiber.Router, cfg *config.Config) {
	r.Get("/offers", promotions.ListOffersHandler())
	r.Get("/offers/:id", promotions.GetOfferHandler())
	r.Post("/offers", promotions.CreateOfferHandler(cfg))
	r.Put("/offers/:id", promotions.UpdateOfferHandler(cfg))
	r.Delete("/offers/:id", promotions.DeleteOfferHandler())

	r.Get("/events", events.ListEventsHandler())
	r.Get("/events/:id", events.GetEventHandler(cfg))
	r.Post("/events", events.CreateEventHandler(cfg))
	r.Put("/events/:id", events.UpdateEventHandler(cfg))
	r.Delete("/events/:id", events.DeleteEventHandler())

	r.Get("/party-requests", events.ListPartyRequestsHandler())
	r.Put("/party-requests/:id/status", events.UpdatePartyRequestStatusHandler())

	r.Get("/orders", orders.ListOrdersHandler())
	r.Get("/orders/export", orders.ExportOrdersHandler(cfg.TZ()))
	r.Get("/orders/:id", orders.GetOrderHandler())
	r.Put("/orders/:id/status", orders.UpdateOrderStatusHandler())
	r.Put("/orders/:id/rider", orders.AssignRiderHandler())
	r.Delete("/orders/:id", orders.DeleteOrderHandler())
	r.Get("/customers", orders.ListCustomersHandler())

	r.Get("/riders", riders.ListRidersHandler())
	r.Get("/riders/available", orders.AvailableRidersHandler())
	r.Get("/riders/linked-users", riders.LinkedUsersHandler())
	r.Get("/riders/:id", riders.GetRiderHandler())
	r.Post("/riders", riders.CreateRiderHandler())
	r.Put("/riders/:id", riders.UpdateRiderHandler())
	r.Delete("/riders/:id", riders.DeleteRiderHandler())
}

func registerContent(r fiber.Router) {
	r.Get("/config", cms.ListConfigHandler())
	r.Post("/config", cms.CreateConfigHandler())
	r.Get("/config/key/:key", cms.GetConfigByKeyHandler())
	r.Put("/config/key/:key", cms.UpsertConfigHandler())
	r.Put("/config/:id", cms.UpdateConfigHandler())
	r.Delete("/config/:id", cms.DeleteConfigHandler())

	r.Get("/content", cms.ListContentHandler())
	r.Post("/content", cms.CreateContentHandler())
	r.Put("/content/:id", cms.UpdateContentHandler())
	r.Delete("/content/:id", cms.DeleteContentHandler())

	r.Post("/uploads/image", files.UploadImageHandler())
	r.Get("/files", files.ListFilesHandler())
	r.Post("/files", files.UploadFileHandler())
	r.Delete("/files/:id", files.DeleteFileHandler())
}
