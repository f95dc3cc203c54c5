package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"griya-properti/internal/config"
	"griya-properti/internal/handler"
	"griya-properti/internal/middleware"
	"griya-properti/internal/repository"
	"griya-properti/internal/service"
	"griya-properti/internal/service/auth"
	"griya-properti/internal/service/notification"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (media upload will not work)", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos := repository.NewRepositories(db)
	services := service.NewServices(ctx, repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	dispatcher := notification.NewDispatcher(services.Notification, redis, cfg.DispatchInterval)
	go dispatcher.Run(ctx)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Use(middleware.RequestInfo())

	setupRoutes(app, handlers, services.Auth)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	public := v1.Group("/public")
	public.Get("/properties", h.Property.ListApproved)
	public.Get("/properties/:propertyId", h.Property.Get)

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/auth/me", h.Auth.Me)

	properties := protected.Group("/properties")
	properties.Post("/", middleware.RequireRole("lister"), h.Property.Create)
	properties.Get("/mine", middleware.RequireRole("lister"), h.Property.ListMine)
	properties.Get("/pending", middleware.RequireRole("admin"), h.Property.ListPending)
	properties.Get("/:propertyId", h.Property.Get)
	properties.Post("/:propertyId/photo", middleware.RequireRole("lister"), h.Property.UploadPhoto)
	properties.Post("/:propertyId/approve", middleware.RequireRole("admin"), h.Property.Approve)
	properties.Post("/:propertyId/reject", middleware.RequireRole("admin"), h.Property.Reject)

	notifications := protected.Group("/notifications")
	notifications.Get("/me", h.Notification.ListMine)
	notifications.Get("/me/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/me/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/me/mark-all-read", h.Notification.MarkAllAsRead)

	notifications.Post("/", middleware.RequireRole("admin"), h.Notification.Send)
	notifications.Get("/", middleware.RequireRole("admin"), h.Notification.List)
	notifications.Get("/recipients", middleware.RequireRole("admin"), h.Notification.Recipients)
	notifications.Get("/:id", middleware.RequireRole("admin"), h.Notification.Get)
	notifications.Delete("/:id", middleware.RequireRole("admin"), h.Notification.Delete)

	watermarkGroup := protected.Group("/settings/watermark", middleware.RequireRole("admin"))
	watermarkGroup.Get("/", h.Watermark.GetSettings)
	watermarkGroup.Put("/", h.Watermark.UpdateSettings)
	watermarkGroup.Post("/logo", h.Watermark.UploadLogo)
	watermarkGroup.Get("/apply", h.Watermark.Apply)
}
