// @title MindSpark API
// @version 1.0
// @description AI generated multiple-choice quizzes with scoring, history and site theming.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "mindspark/cmd/api/docs"
	"mindspark/internal/adapter"
	"mindspark/internal/adapter/quizgen"
	"mindspark/internal/adapter/storage"
	"mindspark/internal/cache"
	"mindspark/internal/config"
	"mindspark/internal/database"
	"mindspark/internal/domain"
	"mindspark/internal/handler"
	"mindspark/internal/logger"
	"mindspark/internal/middleware"
	"mindspark/internal/repository"
	"mindspark/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.NewSQLXDB(ctx, cfg.DB)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, running without cache", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}

	textGenerator, closeGenerator, err := quizgen.NewTextGenerator(ctx, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create question generator", zap.Error(err))
	}
	defer closeGenerator()
	generator := quizgen.NewGenerator(textGenerator, cfg.LLM.Timeout)

	// A nil *S3Storage must not end up inside the interface.
	var objectStorage domain.ObjectStorage
	s3Storage, err := storage.NewS3Storage(ctx, cfg.Storage)
	if err != nil {
		appLogger.Fatal("Failed to create object storage client", zap.Error(err))
	}
	if s3Storage != nil {
		objectStorage = s3Storage
	}

	txManager := repository.NewTransactionManagerAdapter(db)
	quizRepo := repository.NewSQLXQuizRepository(db)
	attemptRepo := repository.NewSQLXAttemptRepository(db)
	profileRepo := repository.NewSQLXProfileRepository(db)
	userRepo := repository.NewSQLXUserRepository(db)
	themeRepo := repository.NewSQLXThemeRepository(db)

	authService, err := service.NewAuthService(userRepo, profileRepo, txManager, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	profileService := service.NewProfileService(profileRepo, attemptRepo, userRepo, objectStorage)
	quizService := service.NewQuizService(quizRepo, generator, txManager, cacheAdapter, cfg)
	gradingService := service.NewGradingService(quizRepo, attemptRepo, txManager, profileService)
	themeService := service.NewThemeService(themeRepo, txManager, cacheAdapter, cfg)
	adminService := service.NewAdminService(userRepo, quizRepo, attemptRepo, profileRepo)

	authHandler := handler.NewAuthHandler(authService)
	quizHandler := handler.NewQuizHandler(quizService, gradingService)
	attemptHandler := handler.NewAttemptHandler(gradingService)
	userHandler := handler.NewUserHandler(profileService, cfg.Storage.MaxAvatarBytes)
	themeHandler := handler.NewThemeHandler(themeService)
	adminHandler := handler.NewAdminHandler(adminService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	validate := middleware.NewValidationMiddleware()
	protected := middleware.Protected(authService)
	adminOnly := middleware.AdminOnly(profileService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)

	generateLimiter := limiter.New(limiter.Config{
		Max:        cfg.RateLimit.GenerateMax,
		Expiration: cfg.RateLimit.GenerateWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			if userID, ok := c.Locals(middleware.UserIDKey).(string); ok {
				return userID
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(middleware.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "Too many quiz generation requests",
				Status:  fiber.StatusTooManyRequests,
			})
		},
	})

	quizzes := api.Group("/quizzes", protected)
	quizzes.Post("/generate", generateLimiter, quizHandler.GenerateQuiz)
	quizzes.Get("/", validate.ValidatePagination(), quizHandler.ListQuizzes)
	quizzes.Get("/:id", quizHandler.GetQuiz)
	quizzes.Post("/:id/submit", quizHandler.SubmitQuiz)

	api.Get("/attempts/:id", protected, attemptHandler.GetAttempt)

	users := api.Group("/users", protected)
	users.Get("/me", userHandler.GetMyProfile)
	users.Put("/me", userHandler.UpdateMyProfile)
	users.Put("/me/avatar", userHandler.UploadAvatar)
	users.Get("/me/attempts", validate.ValidatePagination(), attemptHandler.ListMyAttempts)

	themes := api.Group("/themes")
	themes.Get("/active", themeHandler.GetActiveTheme)
	themes.Get("/active/css", themeHandler.GetActiveCSS)

	admin := api.Group("/admin", protected, adminOnly)
	admin.Get("/dashboard", adminHandler.GetDashboard)
	admin.Get("/themes", themeHandler.ListThemes)
	admin.Post("/themes", themeHandler.CreateTheme)
	admin.Get("/themes/:id", validate.ValidateIDParam("id"), themeHandler.GetTheme)
	admin.Put("/themes/:id", validate.ValidateIDParam("id"), themeHandler.UpdateTheme)
	admin.Delete("/themes/:id", validate.ValidateIDParam("id"), themeHandler.DeleteTheme)
	admin.Post("/themes/:id/activate", validate.ValidateIDParam("id"), themeHandler.ActivateTheme)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
