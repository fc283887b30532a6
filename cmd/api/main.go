package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-scorer/internal/bootstrap"
	"alfredoptarigan/resume-scorer/internal/config"
	"alfredoptarigan/resume-scorer/internal/handlers"
	"alfredoptarigan/resume-scorer/internal/repositories"
	"alfredoptarigan/resume-scorer/internal/services"
	"alfredoptarigan/resume-scorer/web"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scoring components
	components, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize scoring: %v", err)
	}
	defer components.Close()

	if components.RoleIndex != nil {
		if err := components.RoleIndex.IndexProfiles(ctx, components.Profiles.All()); err != nil {
			log.Printf("⚠️  Failed to index roles: %v\n", err)
		}
	}
	components.WatchProfiles(ctx, cfg.Profiles.Watch)
	log.Println("✅ Services initialized successfully")

	// Session store
	var sessionRepo repositories.SessionRepository
	if cfg.DatabaseEnabled() {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		sessionRepo = repositories.NewSessionRepository(db)
	} else {
		sessionRepo = repositories.NewMemorySessionRepository(cfg.Session.TTL)
		log.Printf("✅ Sessions kept in memory (TTL %s)\n", cfg.Session.TTL)
	}

	exportStore := services.NewExportStore(cfg.Storage.ExportPath)
	if err := exportStore.EnsureExportDir(); err != nil {
		log.Fatalf("❌ Failed to create export directory: %v", err)
	}

	// Initialize Handlers
	h := handlers.Handlers{
		Score: handlers.NewScoreHandler(
			components.Profiles,
			components.Pool,
			sessionRepo,
			components.Weights,
			cfg.Storage.MaxFileSize,
		),
		Session: handlers.NewSessionHandler(sessionRepo, exportStore),
		Role: handlers.NewRoleHandler(
			components.Profiles,
			components.Pipeline,
			components.RoleIndex,
			cfg.Storage.MaxFileSize,
		),
		Compare: handlers.NewCompareHandler(
			components.Profiles,
			components.Pipeline,
			components.Extractor,
			components.Weights,
			cfg.Storage.MaxFileSize,
		),
	}
	log.Println("✅ Handlers initialized")

	engine, err := web.NewEngine()
	if err != nil {
		log.Fatalf("❌ Failed to load templates: %v", err)
	}
	engine.Reload(cfg.Server.Env == "development")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Scorer",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 20,
		Views:        engine,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.Register(app, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 UI: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
