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

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fellowship-server/internal/config"
	apphttp "fellowship-server/internal/http"
	"fellowship-server/internal/live"
	"fellowship-server/internal/payment"
	"fellowship-server/internal/repository/sqlite"
	"fellowship-server/internal/service"
	"fellowship-server/internal/session"
	"fellowship-server/internal/storage"
	"fellowship-server/internal/store"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	contentRepo := sqlite.NewContentRepository(db)
	if err := contentRepo.Init(ctx); err != nil {
		logger.Fatalf("init content repository: %v", err)
	}

	entities := store.NewMemStore()
	sessions := session.NewStore(
		time.Duration(cfg.Auth.SessionTTLHours)*time.Hour,
		time.Duration(cfg.Auth.SweepPeriodHours)*time.Hour,
	)
	go sessions.Run(ctx)

	userService := service.NewUserService(entities)
	communityService := service.NewCommunityService(entities)
	givingService := service.NewGivingService(entities, payment.NewMpesaSimulator())
	libraryService := service.NewLibraryService(entities)

	mediaStorage, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		communityService,
		givingService,
		libraryService,
		contentRepo,
		live.NewStaticProvider(),
		mediaStorage,
		sessions,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Payment.TimeoutSeconds)*time.Second,
		logger,
	)
	handler.RegisterRoutes(router)

	if cfg.Storage.Backend == "local" {
		router.Static("/media", cfg.Storage.LocalDir)
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	switch cfg.Storage.Backend {
	case "local":
		if err := os.MkdirAll(cfg.Storage.LocalDir, 0o755); err != nil {
			return nil, fmt.Errorf("create media dir: %w", err)
		}
		logger.Infof("storing media under %s", cfg.Storage.LocalDir)
		return storage.NewLocalService(cfg.Storage.LocalDir, "/media"), nil
	case "s3":
		if cfg.Storage.Bucket == "" {
			return nil, fmt.Errorf("storage bucket is required")
		}

		loadOpts := []func(*awscfg.LoadOptions) error{
			awscfg.WithRegion(cfg.Storage.Region),
		}
		if cfg.AWS.Profile != "" {
			loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
		}

		awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Storage.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
				o.UsePathStyle = true
			}
		})
		logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
		return storage.NewS3Service(client, cfg.Storage.Bucket, cfg.Storage.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
