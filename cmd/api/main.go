package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"asd-screen/internal/config"
	"asd-screen/internal/db"
	apihttp "asd-screen/internal/http"
	"asd-screen/internal/metrics"
	"asd-screen/internal/model"
	"asd-screen/internal/repository"
	"asd-screen/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
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

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	if cfg.SessionSecret == config.DefaultSessionSecret {
		logger.Warn("session secret not configured, using development default")
	}

	capability, err := model.LoadCapability(cfg.ModelPath, cfg.EncodersPath, cfg.ONNXLibraryPath)
	if err != nil {
		// El servicio arranca igual: login y registro siguen disponibles.
		logger.Error("model capability unavailable", zap.Error(err),
			zap.String("model_path", cfg.ModelPath), zap.String("encoders_path", cfg.EncodersPath))
	} else {
		logger.Info("model capability loaded", zap.String("model_path", cfg.ModelPath))
		if closer, ok := capability.Classifier.(io.Closer); ok {
			defer closer.Close()
		}
	}

	userRepo := openUserRepository(ctx, cfg, logger)

	var (
		wizardStore = service.NewMemoryWizardStateStore(cfg.SessionTTL())
		limiter     = service.NewLoginLimiter(cfg.LoginWindow(), cfg.LoginMaxAttempts)
		sessions    = service.NewMemorySessionStore()
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory stores", zap.Error(err))
		} else {
			wizardStore = service.NewRedisWizardStateStore(redisClient, cfg.SessionTTL())
			limiter = service.NewRedisLoginLimiter(redisClient, cfg.LoginWindow(), cfg.LoginMaxAttempts)
			sessions = service.NewRedisSessionStore(redisClient)
			defer redisClient.Close()
		}
		cancel()
	}

	m := metrics.New()
	sessionSvc := service.NewSessionServiceWithStore(cfg.SessionSecret, cfg.SessionTTL(), sessions)
	userSvc := service.NewUserService(logger, userRepo, limiter)
	screeningSvc := service.NewScreeningService(capability, m, logger)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Logger:    logger,
		Metrics:   m,
		Sessions:  sessionSvc,
		Guard:     apihttp.NewWizardGuard(logger, wizardStore),
		Auth:      apihttp.NewAuthHandler(logger, userSvc, sessionSvc, wizardStore, m, cfg.CookieSecure),
		Wizard:    apihttp.NewWizardHandler(logger, screeningSvc, wizardStore),
		Screening: screeningSvc,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.Bool("capability", screeningSvc.Ready()))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openUserRepository usa Postgres si hay DATABASE_URL y SQLite local si no.
func openUserRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) repository.UserRepository {
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		if err := db.Ping(ctx, pool); err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}
		repo := repository.NewPgUserRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Fatal("users schema", zap.Error(err))
		}
		logger.Info("user store: postgres")
		return repo
	}

	sqlDB, err := db.OpenSQLite(cfg.UsersDBPath)
	if err != nil {
		logger.Fatal("open users db", zap.Error(err), zap.String("path", cfg.UsersDBPath))
	}
	repo := repository.NewSQLiteUserRepository(sqlDB)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal("users schema", zap.Error(err))
	}
	logger.Info("user store: sqlite", zap.String("path", cfg.UsersDBPath))
	return repo
}
