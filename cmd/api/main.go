package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pageturn/bookshelf-api/internal/api"
	"github.com/pageturn/bookshelf-api/internal/core/service"
	"github.com/pageturn/bookshelf-api/internal/infrastructure/config"
	mongodb "github.com/pageturn/bookshelf-api/internal/infrastructure/db/mongo"
	redisdb "github.com/pageturn/bookshelf-api/internal/infrastructure/db/redis"
	"github.com/pageturn/bookshelf-api/internal/infrastructure/identifier"
	"github.com/pageturn/bookshelf-api/internal/infrastructure/storage"
	"github.com/pageturn/bookshelf-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "bookshelf-api",
	})

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, disconnect, err := mongodb.Open(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		_ = disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		_ = rdb.Close()
	}()

	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := bookRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create book indexes")
	}

	s3Client, err := storage.NewS3Client(ctx, cfg.Covers.Region, cfg.Covers.Endpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build s3 client")
	}
	coverStorage := storage.NewS3CoverStorage(s3Client, cfg.Covers.Bucket)

	ids := identifier.NewUUIDGenerator()
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, ids, log)
	bookCache := redisdb.NewBookCache(rdb, cfg.Redis.CacheTTL, log)
	bookService := service.NewBookService(bookRepo, userRepo, bookCache, ids, log)
	coverService := service.NewCoverService(bookRepo, coverStorage, log)

	e := api.NewRouter(api.Deps{
		Auth:   authService,
		Books:  bookService,
		Covers: coverService,
		Tokens: tokenService,
		Users:  userRepo,
		Mongo:  db,
		Redis:  rdb,
		Logger: log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
