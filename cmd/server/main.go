package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"projecttrack/internal/auth"
	"projecttrack/internal/cache"
	"projecttrack/internal/config"
	"projecttrack/internal/data"
	"projecttrack/internal/s3client"
	"projecttrack/internal/server/http/handler"
	"projecttrack/internal/server/http/middleware"
	"projecttrack/internal/service"
	"projecttrack/pkg/kafka"
	"projecttrack/pkg/logging"
	"projecttrack/pkg/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	logger := logging.New(zapLogger)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.New()
	if err != nil {
		logger.Fatal(ctx, "cannot create config", zap.Error(err))
	}

	pool, err := postgres.New(ctx, postgres.Config{
		Host:          cfg.PostgresHost,
		Port:          cfg.PostgresPort,
		User:          cfg.PostgresUser,
		Password:      cfg.PostgresPassword,
		DBName:        cfg.PostgresDB,
		SSLMode:       cfg.PostgresSSLMode,
		MaxConns:      cfg.PostgresMaxConn,
		MigrationsDir: cfg.MigrationsDir,
	})
	if err != nil {
		logger.Fatal(ctx, "cannot connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	surrealDB, err := data.NewSurreal(ctx, data.SurrealConfig{
		Endpoint:  cfg.SurrealEndpoint,
		Namespace: cfg.SurrealNamespace,
		Database:  cfg.SurrealDatabase,
		Username:  cfg.SurrealUser,
		Password:  cfg.SurrealPassword,
	})
	if err != nil {
		logger.Fatal(ctx, "cannot connect to surrealdb", zap.Error(err))
	}
	defer surrealDB.Close(ctx)

	s3Client, err := s3client.New(ctx, s3client.Config{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logger.Fatal(ctx, "cannot create s3 client", zap.Error(err))
	}

	redisConn := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	redisCache := cache.NewRedisCache(redisConn)

	var producer service.EventProducer
	if cfg.KafkaBrokers != "" {
		kafkaProducer, err := kafka.NewProducer(kafka.Config{Brokers: strings.Split(cfg.KafkaBrokers, ",")})
		if err != nil {
			logger.Fatal(ctx, "cannot create kafka producer", zap.Error(err))
		}
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	userRepo := data.NewUserRepository(pool)
	fileRepo := data.NewFileRepository(pool)
	projectRepo := data.NewProjectRepository(surrealDB)
	taskRepo := data.NewTaskRepository(surrealDB)
	activityRepo := data.NewActivityRepository(surrealDB)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	activityService := service.NewActivityService(activityRepo, producer, cfg.KafkaAuditTopic)
	userService := service.NewUserService(userRepo, tokens, activityService, redisCache)
	projectService := service.NewProjectService(projectRepo, taskRepo, activityService)
	submissionService := service.NewSubmissionService(taskRepo, activityService)

	fileService, err := service.NewFileService(ctx, fileRepo, s3Client, cfg.S3Bucket)
	if err != nil {
		logger.Fatal(ctx, "cannot prepare file storage", zap.Error(err))
	}

	authHandler := handler.NewAuthHandler(userService)
	adminHandler := handler.NewAdminHandler(userService, activityService)
	teacherHandler := handler.NewTeacherHandler(projectService, submissionService)
	studentHandler := handler.NewStudentHandler(projectService, submissionService)
	fileHandler := handler.NewFileHandler(fileService)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := chi.NewRouter()
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, 10<<20) // 10 MB
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/auth", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
	})

	r.Route("/api/admin", func(r chi.Router) {
		adminHandler.RegisterRoutes(r, authMiddleware)
	})

	r.Route("/api/teacher", func(r chi.Router) {
		teacherHandler.RegisterRoutes(r, authMiddleware)
	})

	r.Route("/api/student", func(r chi.Router) {
		studentHandler.RegisterRoutes(r, authMiddleware)
	})

	r.Route("/api/files", func(r chi.Router) {
		fileHandler.RegisterRoutes(r, authMiddleware)
	})

	port := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info(ctx, "Starting server", zap.String("port", port))

	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "cannot start http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info(ctx, "Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal(ctx, "server forced to shutdown", zap.Error(err))
	}
	logger.Info(ctx, "Server stopped")
}
