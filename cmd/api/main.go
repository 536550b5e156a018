package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"jobhunt/match-analyzer/internal/config"
	"jobhunt/match-analyzer/internal/handlers"
	"jobhunt/match-analyzer/internal/logger"
	"jobhunt/match-analyzer/internal/middleware"
	"jobhunt/match-analyzer/internal/repositories"
	"jobhunt/match-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("❌ Failed to load config: %v", err)
	}
	logger.Init(cfg.Server.LogLevel, os.Stdout)
	logger.Log.Info("✅ Config loaded successfully")

	// Optional analysis history
	var historyRepo repositories.AnalysisRepository
	if cfg.History.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			logger.Log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		historyRepo = repositories.NewAnalysisRepository(db)
		logger.Log.Info("✅ Analysis history enabled")
	}

	// Initialize services
	extractor := services.NewDocumentExtractor(
		services.NewPDFParserService(),
		services.NewDOCXParserService(),
	)
	normalizer := services.NewInputNormalizer(extractor, cfg.Upload.MaxFileSize)

	llmClient, err := services.NewLLMClient(context.Background(), cfg.LLM)
	if err != nil {
		logger.Log.Fatalf("❌ Failed to initialize LLM client: %v", err)
	}
	logger.Log.Infof("✅ LLM client initialized (%s, %s)", llmClient.Provider(), llmClient.Model())

	analyzer := services.NewMatchAnalyzer(llmClient)

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		normalizer,
		analyzer,
		historyRepo,
		llmClient.Provider(),
		llmClient.Model(),
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "JobHunt AI API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 30*time.Second,
		BodyLimit:    cfg.RequestBodyLimit(),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !cfg.IsProduction(),
	}))
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger(logger.Log))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigin,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	app.Get("/", handlers.HandleRoot)
	analyzeHandler.RegisterRoutes(app, middleware.RateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window))

	api := app.Group("/api/v1")
	api.Get("/health", handlers.HandleHealth)
	if historyRepo != nil {
		handlers.NewHistoryHandler(historyRepo).RegisterRoutes(api)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Log.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			logger.Log.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Log.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		logger.Log.Fatalf("❌ Failed to start server: %v", err)
	}
}
