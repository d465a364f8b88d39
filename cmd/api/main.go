// @title Quiz Exam API
// @version 1.0
// @description Exam assembly from markdown question banks and a paged quiz engine with signed result documents.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quiz-exam/cmd/api/docs"
	"quiz-exam/internal/cache"
	"quiz-exam/internal/catalog"
	"quiz-exam/internal/certify"
	"quiz-exam/internal/config"
	"quiz-exam/internal/handler"
	"quiz-exam/internal/logger"
	"quiz-exam/internal/middleware"
	"quiz-exam/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	store, closeStore, err := cache.NewStore(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to session store", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			appLogger.Warn("Failed to close session store", zap.Error(err))
		}
	}()
	storeName := "memory"
	if cfg.Redis.Address != "" {
		storeName = "redis"
	}

	fsys := afero.NewOsFs()
	courses := catalog.NewFSCatalog(fsys, cfg.Exam.Folder)
	header := catalog.NewFileHeaderLoader(fsys, cfg.App.HeaderFile)

	certifier := certify.NewCertifier(fsys, cfg.Signing)
	if certifier.Enabled() {
		appLogger.Info("Result documents will be signed", zap.String("key_path", cfg.Signing.KeyPath))
	} else {
		appLogger.Info("No signing key configured, result documents are delivered unsigned")
	}

	// Initialize services
	examService := service.NewExamService(courses, cfg.Exam.Questions)
	quizService := service.NewQuizService(
		examService,
		service.NewSessionService(store, cfg.Exam.QuestionsPerPage, cfg.Session.TTL),
		service.NewResultCacheService(store, cfg.Session.ResultTTL),
		certify.NewRenderer(cfg.App.Name),
		certifier,
	)
	tokens, err := service.NewSessionTokenService(cfg.Session.SecretKey, cfg.Session.TTL)
	if err != nil {
		appLogger.Fatal("Failed to create session token service", zap.Error(err))
	}
	cookie := middleware.NewSessionCookie(tokens, cfg.Session.CookieName, cfg.Session.TTL, cfg.Logger.Env == "production")

	// Initialize handlers
	handlers := handler.Handlers{
		Exam:   handler.NewExamHandler(examService, quizService, header, cookie, cfg.App),
		Quiz:   handler.NewQuizHandler(quizService),
		Health: handler.NewHealthHandler(store, storeName),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	handler.RegisterRoutes(app, handlers, cookie, middleware.NewValidationMiddleware())

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env),
			zap.String("exams", cfg.Exam.Folder),
			zap.String("store", storeName),
		)
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
