package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"tripflux/internal/config"
	"tripflux/internal/db"
	"tripflux/internal/email"
	apihttp "tripflux/internal/http"
	"tripflux/internal/jobs"
	"tripflux/internal/llm"
	"tripflux/internal/repository"
	"tripflux/internal/service"
	"tripflux/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	travelRepo := repository.NewPgTravelLogRepository(pool)
	expenseRepo := repository.NewPgExpenseRepository(pool)
	mediaRepo := repository.NewPgMediaRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var resetLimiter service.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			resetLimiter = service.NewRedisRateLimiter(redisClient, 10*time.Minute, 3)
		}
		cancel()
	}

	photoStore, err := storage.NewObjectStore(cfg)
	if err != nil {
		logger.Fatal("object store init failed", zap.Error(err))
	}
	if err := photoStore.EnsureBucket(ctx); err != nil {
		logger.Fatal("ensure bucket failed", zap.Error(err))
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authSvc := service.NewAuthService(
		logger,
		userRepo,
		emailSender,
		resetLimiter,
		time.Duration(cfg.ResetTTLMinutes)*time.Minute,
		cfg.AppBaseURL,
	)

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, zap.NewStdLog(logger))
	assistantSvc := service.NewAssistantService(llmClient)

	authHandler := apihttp.NewAuthHandler(logger, authSvc, jwtSvc)
	travelHandler := apihttp.NewTravelLogHandler(logger, travelRepo)
	expenseHandler := apihttp.NewExpenseHandler(logger, expenseRepo)
	mediaHandler := apihttp.NewMediaHandler(logger, mediaRepo, photoStore)
	assistantHandler := apihttp.NewAssistantHandler(logger, assistantSvc)

	router := apihttp.NewRouter(logger, jwtSvc, authHandler, travelHandler, expenseHandler, mediaHandler, assistantHandler, cfg.AllowedOrigins)

	scheduler := jobs.NewScheduler(userRepo, logger)
	if err := scheduler.Start(); err != nil {
		logger.Warn("scheduler start failed", zap.Error(err))
	}
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
