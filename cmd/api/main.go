package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizforge/internal/adapter"
	"quizforge/internal/adapter/llm"
	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/database"
	"quizforge/internal/domain"
	"quizforge/internal/handler"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/repository"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// LLM client is constructed once here and injected; an unconfigured key
	// leaves it nil so generation requests fail with a descriptive error
	// instead of a crash at startup.
	var completionClient domain.CompletionClient
	if cfg.LLM.APIKey != "" {
		completionClient, err = llm.NewOpenRouterClient(cfg.LLM)
		if err != nil {
			appLogger.Fatal("Failed to create completion client", zap.Error(err))
		}
	} else {
		appLogger.Warn("OPENROUTER_API_KEY not set; question generation is unavailable")
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	questionRepository := repository.NewQuestionDatabaseAdapter(db)

	// Redis is optional: without it reads simply skip the cache.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, continuing without question cache", zap.Error(err))
	} else {
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized")
	}

	questionService := service.NewQuestionService(questionRepository, completionClient, cacheAdapter, cfg)
	questionHandler := handler.NewQuestionHandler(questionService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "message": "API is running"})
	})

	questionHandler.RegisterRoutes(app)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		appLogger.Info("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			appLogger.Error("Server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	appLogger.Info("Starting server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		appLogger.Fatal("Server failed", zap.Error(err))
	}
}
