package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
	httphandlers "github.com/rafabene/contenthub-backend/internal/handlers/http"
	"github.com/rafabene/contenthub-backend/internal/handlers/middleware"
	"github.com/rafabene/contenthub-backend/internal/infrastructure/config"
	"github.com/rafabene/contenthub-backend/internal/infrastructure/i18n"
	"github.com/rafabene/contenthub-backend/internal/infrastructure/logging"
	"github.com/rafabene/contenthub-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/contenthub-backend/internal/services"
)

func main() {
	// Carregar variáveis de ambiente (.env é opcional)
	_ = godotenv.Load()

	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting contenthub backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Migrar schema
	if err := postgres.AutoMigrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService("./internal/infrastructure/i18n/locales", "en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewRefreshTokenRepository(db)

	// Varredura de refresh tokens vencidos; a revogação em si vive na
	// tabela, a varredura só contém o crescimento dela
	sweepLogger := logging.Component(logger, "maintenance")
	if removed, err := tokenRepo.DeleteExpired(context.Background(), time.Now()); err != nil {
		sweepLogger.Warn("expired refresh token sweep failed", "error", err)
	} else if removed > 0 {
		sweepLogger.Info("expired refresh tokens removed", "count", removed)
	}

	contentRepo := postgres.NewContentRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	tokenService := services.NewTokenService(
		userRepo, tokenRepo,
		cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry,
		logger,
	)
	authService := services.NewAuthService(userRepo, tokenService, uow, logger)
	contentService := services.NewContentService(contentRepo, logger)
	categoryService := services.NewCategoryService(categoryRepo, logger)
	userService := services.NewUserService(userRepo, logger)

	// Inicializar handlers
	authHandler := httphandlers.NewAuthHandler(authService)
	contentHandler := httphandlers.NewContentHandler(contentService)
	categoryHandler := httphandlers.NewCategoryHandler(categoryService)
	userHandler := httphandlers.NewUserHandler(userService)

	// Middleware de autenticação
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.Server.BaseURL)
		c.Next()
	})

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	corsConfig := cors.DefaultConfig()
	if cfg.CORS.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.CORS.AllowedOrigins, ",")
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authMiddleware.RequireAuth(), authHandler.Logout)
		auth.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
	}

	// Content routes (todas exigem bearer token)
	content := router.Group("/content", authMiddleware.RequireAuth())
	{
		content.POST("",
			authMiddleware.RequireRoles(entities.RoleAdmin, entities.RoleEditor),
			contentHandler.Create)
		content.GET("", contentHandler.List)
		content.GET("/slug/:slug", contentHandler.GetBySlug)
		content.GET("/:id", contentHandler.GetByID)
		content.PATCH("/:id",
			authMiddleware.RequireRoles(entities.RoleAdmin, entities.RoleEditor),
			contentHandler.Update)
		content.DELETE("/:id",
			authMiddleware.RequireRoles(entities.RoleAdmin, entities.RoleEditor),
			contentHandler.Delete)
	}

	// Category routes (leitura autenticada; escrita ADMIN)
	categories := router.Group("/categories", authMiddleware.RequireAuth())
	{
		categories.GET("", categoryHandler.List)
		categories.GET("/:id", categoryHandler.Get)
		categories.POST("",
			authMiddleware.RequireRoles(entities.RoleAdmin),
			categoryHandler.Create)
		categories.PATCH("/:id",
			authMiddleware.RequireRoles(entities.RoleAdmin),
			categoryHandler.Update)
		categories.DELETE("/:id",
			authMiddleware.RequireRoles(entities.RoleAdmin),
			categoryHandler.Delete)
	}

	// User administration routes (ADMIN-only)
	users := router.Group("/users",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRoles(entities.RoleAdmin))
	{
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.PATCH("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
