package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnpath.backend/internal/config"
	"learnpath.backend/internal/infrastructure/datasources/postgres"
	"learnpath.backend/internal/infrastructure/models"
	"learnpath.backend/internal/infrastructure/repositories"
	"learnpath.backend/internal/interfaces/http/handlers"
	"learnpath.backend/internal/interfaces/http/middleware"
	"learnpath.backend/internal/usecases"
	"learnpath.backend/pkg/jwt"
	"learnpath.backend/pkg/logger"
	"learnpath.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = postgres.NewConnection
	migrateDB  = func(db *gorm.DB) error {
		return db.AutoMigrate(&models.User{}, &models.CatalogEntity{}, &models.Enrollment{})
	}
	newSessionStore = redis.NewSessionStore
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	runServer       = serve
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis backs sessions and idempotency; without it both are switched off.
	var sessionStore *redis.SessionStore
	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		logger.Info(ctx, "Redis initialized")

		if cfg.Security.SessionEncryptionKey != "" {
			store, err := newSessionStore(cfg.Security.SessionEncryptionKey)
			if err != nil {
				return fmt.Errorf("failed to initialize session store: %w", err)
			}
			sessionStore = store
		}
	} else {
		logger.Warn(ctx, "REDIS_URL not set, sessions and idempotency disabled")
	}

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := migrateDB(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info(ctx, "Database migrated")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	// a nil *SessionStore must not become a non-nil interface
	var sessions usecases.SessionStore
	if sessionStore != nil {
		sessions = sessionStore
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := newRouter(cfg, db, jwtService, sessions, registry)

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	logger.Info(ctx, "LearnPath backend starting", zap.String("port", cfg.Server.Port))
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// newRouter wires repositories, usecases and handlers onto a fresh engine
func newRouter(cfg *config.Config, db *gorm.DB, jwtService *jwt.JWTService, sessions usecases.SessionStore, registry *prometheus.Registry) *gin.Engine {
	userRepo := repositories.NewUserRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	uow := repositories.NewUnitOfWork(db)

	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, sessions)
	catalogUsecase := usecases.NewCatalogUsecase(catalogRepo, uow)
	enrollmentUsecase := usecases.NewEnrollmentUsecase(enrollmentRepo, catalogRepo)
	profileUsecase := usecases.NewProfileUsecase(userRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.NewMetrics(registry).Handler())

	applyCORSMiddleware(r, cfg.Server.CORSAllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r, registry)
	registerAPIV1Routes(r, routeDeps{
		authHandler:        handlers.NewAuthHandler(authUsecase),
		catalogHandler:     handlers.NewCatalogHandler(catalogUsecase),
		enrollmentHandler:  handlers.NewEnrollmentHandler(enrollmentUsecase),
		profileHandler:     handlers.NewProfileHandler(profileUsecase),
		authMiddleware:     middleware.AuthMiddleware(jwtService, authUsecase),
		optionalAuth:       middleware.OptionalAuthMiddleware(jwtService, authUsecase),
		idempotencyHandler: middleware.IdempotencyMiddleware(),
	})
	return r
}

// serve runs until SIGINT or SIGTERM, then drains in-flight requests.
func serve(r *gin.Engine, port string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
