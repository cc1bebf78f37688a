package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jugendhilfe/casework-system/internal/api"
	"github.com/jugendhilfe/casework-system/internal/core/service"
	"github.com/jugendhilfe/casework-system/internal/infrastructure/config"
	mongodb "github.com/jugendhilfe/casework-system/internal/infrastructure/db/mongo"
	redisdb "github.com/jugendhilfe/casework-system/internal/infrastructure/db/redis"
	"github.com/jugendhilfe/casework-system/internal/infrastructure/export"
	"github.com/jugendhilfe/casework-system/internal/infrastructure/ocr"
	"github.com/jugendhilfe/casework-system/internal/infrastructure/queue"
	"github.com/jugendhilfe/casework-system/internal/infrastructure/storage"
	"github.com/jugendhilfe/casework-system/internal/infrastructure/translate"
	"github.com/jugendhilfe/casework-system/pkg/logger"
)

const shutdownGrace = 10 * time.Second

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not configured")
	}

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index setup failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- File storage ---
	store, err := storage.NewS3Store(ctx, storage.S3Config{
		Bucket:     cfg.S3.Bucket,
		Region:     cfg.S3.Region,
		Public:     cfg.S3.Public,
		PresignTTL: cfg.S3.PresignTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("s3 store setup failed")
	}
	spool, err := storage.NewSpool(cfg.UploadTmpDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload spool setup failed")
	}

	// --- Text extraction ---
	extractor, err := ocr.NewVisionExtractor(ctx, ocr.Config{
		CredentialsFile: cfg.Vision.CredentialsFile,
		CredentialsJSON: cfg.Vision.CredentialsJSON,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("vision client setup failed")
	}
	defer extractor.Close()

	// --- Translation ---
	translator, err := translate.NewDeepLClient(translate.Config{
		APIKey:   cfg.DeepL.APIKey,
		Endpoint: cfg.DeepL.Endpoint,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("deepl client setup failed")
	}

	// --- Background cleanup of stored objects ---
	cleaner := queue.NewCleaner(0, store, redisdb.NewOrphanLedger(rdb), log)
	cleaner.Start(ctx)

	// --- Repositories and services ---
	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	reportRepo := mongodb.NewReportRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	clientService := service.NewClientService(clientRepo, userRepo, log)
	reportService := service.NewReportService(reportRepo, clientRepo, userRepo, store, extractor, cleaner, log)
	translationService := service.NewTranslationService(reportRepo, clientRepo, store, extractor, translator, export.NewTranslationPDF(), log)

	e := api.NewRouter(api.Dependencies{
		Auth:        authService,
		Clients:     clientService,
		Reports:     reportService,
		Translation: translationService,
		Spool:       spool,
		Mongo:       db,
		Redis:       rdb,
		JWTSecret:   cfg.JWTSecret,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
