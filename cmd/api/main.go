package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"metizcare/internal/config"
	"metizcare/internal/db"
	"metizcare/internal/faceanalysis"
	apihttp "metizcare/internal/http"
	"metizcare/internal/llm"
	"metizcare/internal/recommend"
	"metizcare/internal/repository"
	"metizcare/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := db.Ping(pingCtx, pool); err != nil {
		logger.Warn("db ping failed", zap.Error(err))
	}
	cancelPing()

	userRepo := repository.NewPgUserRepository(pool)
	productRepo := repository.NewPgProductRepository(pool)
	quizRepo := repository.NewPgQuizRepository(pool)
	tipRepo := repository.NewPgTipRepository(pool)

	llmClient := llm.NewDisabledClient()
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Warn("gemini client init failed", zap.Error(err))
		} else {
			defer gemini.Close()
			llmClient = gemini
		}
	} else {
		logger.Warn("gemini api key not configured, AI features disabled")
	}

	var (
		loginLimiter service.RateLimiter
		faceLimiter  service.RateLimiter
		tokenStore   service.RefreshTokenStore
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisRateLimiter(redisClient, "login", time.Minute, cfg.LoginRateLimit)
			faceLimiter = service.NewRedisRateLimiter(redisClient, "face", time.Minute, cfg.FaceRateLimit)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}
	if loginLimiter == nil {
		loginLimiter = service.NewMemoryRateLimiter(time.Minute, cfg.LoginRateLimit)
	}
	if faceLimiter == nil {
		faceLimiter = service.NewMemoryRateLimiter(time.Minute, cfg.FaceRateLimit)
	}

	jwtSvc := service.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	engine := recommend.NewEngine(nil)
	faceClient := faceanalysis.NewClient(cfg.FaceServiceURL, time.Duration(cfg.FaceServiceTimeout)*time.Second, logger)

	userSvc := service.NewUserService(logger, userRepo, loginLimiter)
	quizSvc := service.NewQuizService(
		quizRepo,
		productRepo,
		engine,
		service.NewQuizEnhancer(llmClient, logger),
		logger,
		service.WithQuizLimits(cfg.RecommendationLimit, cfg.QuizCatalogLimit),
	)
	faceSvc := service.NewFaceService(faceClient, productRepo, engine, logger, cfg.RecommendationLimit)

	router := apihttp.NewRouter(logger, apihttp.RouterDeps{
		Users:       apihttp.NewUserHandler(logger, userSvc, jwtSvc),
		Products:    apihttp.NewProductHandler(logger, service.NewProductService(productRepo, 0)),
		Quiz:        apihttp.NewQuizHandler(logger, quizSvc),
		Face:        apihttp.NewFaceHandler(logger, faceSvc),
		Tips:        apihttp.NewTipHandler(logger, service.NewTipService(tipRepo, logger)),
		Assistant:   apihttp.NewAssistantHandler(logger, service.NewAssistantService(llmClient, logger)),
		JWT:         jwtSvc,
		FaceLimiter: faceLimiter,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}
