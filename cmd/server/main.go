package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	handlers "github.com/Ferdismit7/qmstool-sub002/internal/adapter/handler/http"
	"github.com/Ferdismit7/qmstool-sub002/internal/adapter/repository"
	"github.com/Ferdismit7/qmstool-sub002/internal/config"
	domainrepo "github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/cache"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/database"
	grpcServer "github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/grpc"
	httpServer "github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/http"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/oidc"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/secrets"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/session"
	"github.com/Ferdismit7/qmstool-sub002/internal/infrastructure/storage"
	"github.com/Ferdismit7/qmstool-sub002/internal/middleware/auth"
	"github.com/Ferdismit7/qmstool-sub002/internal/usecase"
	"github.com/Ferdismit7/qmstool-sub002/pkg/logger"
	"github.com/Ferdismit7/qmstool-sub002/pkg/messaging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Secrets must be in the environment before configuration is read.
	bootLogger := logger.DefaultZapLogger()
	if res, err := secrets.Bootstrap(ctx); err != nil {
		bootLogger.Fatal("Failed to load secrets", zap.Error(err))
	} else if res != nil {
		bootLogger.Info("Secrets loaded",
			zap.Strings("applied", res.Applied),
			zap.Strings("skipped", res.Skipped),
		)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.Logger
	defer func() { _ = logger.Sync() }()

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, logger); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	if err := database.Seed(db, cfg.Seed.BusinessAreasFile, logger); err != nil {
		logger.Fatal("Failed to seed business areas", zap.Error(err))
	}

	repos := repository.NewRepositories(db, logger)

	var (
		membershipCache domainrepo.MembershipCache = cache.NewNoopMembershipCache()
		publisher                                  = messaging.NewLogPublisher(logger)
		health                                     = map[string]httpServer.HealthCheck{"database": pingDatabase(db)}
	)
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = client.Close() }()

		membershipCache = cache.NewMembershipCache(client, cfg.Redis.MembershipTTL, logger)
		publisher = messaging.NewPublisherFromClient(client)
		health["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	storageCfg := storage.Config{
		Region:       cfg.Storage.Region,
		Bucket:       cfg.Storage.Bucket,
		AccessKey:    cfg.Storage.AccessKey,
		SecretKey:    cfg.Storage.SecretKey,
		Endpoint:     cfg.Storage.Endpoint,
		URLCacheSize: cfg.Storage.URLCacheSize,
		URLCacheTTL:  cfg.Storage.URLCacheTTL,
	}
	s3Client, err := storage.NewS3Client(ctx, storageCfg)
	if err != nil {
		logger.Fatal("Failed to create S3 client", zap.Error(err))
	}
	files := storage.NewGateway(s3Client, storageCfg, logger)

	var provider handlers.OIDCProvider
	if cfg.OIDCEnabled() {
		client, err := oidc.NewClient(oidc.Config{
			Issuer:             cfg.OIDC.Issuer,
			ClientID:           cfg.OIDC.ClientID,
			ClientSecret:       cfg.OIDC.ClientSecret,
			RedirectURL:        cfg.OIDC.RedirectURL,
			PostLogoutRedirect: cfg.OIDC.PostLogoutRedirect,
			Scopes:             cfg.OIDC.Scopes,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize OIDC client", zap.Error(err))
		}
		provider = client
	} else {
		logger.Warn("OIDC is not configured; single sign-on routes are disabled")
	}

	sessionStore, err := session.NewStore(session.Config{
		Store:     cfg.Session.Store,
		Secret:    cfg.Session.Secret,
		MaxAge:    cfg.Session.MaxAge,
		Secure:    cfg.Session.Secure,
		RedisAddr: cfg.RedisAddr(),
		RedisPass: cfg.Redis.Password,
		RedisDB:   cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create session store", zap.Error(err))
	}

	signer := auth.NewTokenSigner(cfg.JWT.Secret, cfg.JWT.Expiry)
	resolver := auth.NewResolver(repos.Memberships, membershipCache, logger)
	audit := usecase.NewAuditRecorder(repos.AuditLogs, publisher, logger)

	recordService := usecase.NewRecordService(usecase.RecordServiceConfig{
		Stores:         repos.Records,
		Versions:       repos.FileVersions,
		Transactor:     repos.Transactor,
		Audit:          audit,
		Files:          files,
		Logger:         logger,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
	})
	linkService := usecase.NewLinkService(repos.Records, repos.DocumentLinks, repos.BusinessAreas, repos.Transactor, audit, logger)
	authService := usecase.NewAuthService(repos.Users, resolver, signer, logger)

	routes := handlers.Handlers{
		Records:       handlers.NewRecordHandler(recordService, logger),
		Files:         handlers.NewFileHandler(recordService, logger),
		Links:         handlers.NewLinkHandler(linkService),
		Audit:         handlers.NewAuditHandler(usecase.NewAuditService(repos.AuditLogs)),
		BusinessAreas: handlers.NewBusinessAreaHandler(usecase.NewBusinessAreaService(repos.BusinessAreas)),
		Auth: handlers.NewAuthHandler(provider, authService, handlers.AuthHandlerConfig{
			PostLoginRedirect: cfg.OIDC.PostLoginRedirect,
			SecureCookies:     cfg.Session.Secure,
		}, logger),
	}

	jwt := auth.JWTMiddleware(auth.JWTConfig{
		Signer:   signer,
		Resolver: resolver,
		Logger:   logger,
	})

	httpSrv := httpServer.NewServer(httpServer.Config{
		Port:        cfg.Server.HTTP.Port,
		Timeout:     time.Duration(cfg.Server.HTTP.Timeout) * time.Second,
		Debug:       cfg.Server.HTTP.Debug,
		CORSOrigins: cfg.Server.HTTP.CORSOrigins,
		BodyLimit:   bodyLimit(recordService.MaxUploadBytes()),
		Service:     cfg.Service.Name,
		Version:     cfg.Service.Version,
	}, logger, sessionStore, health, func(e *echo.Echo) {
		handlers.RegisterRoutes(e, routes, jwt, auth.RequireBusinessAreas())
	})

	var grpcSrv *grpcServer.Server
	if cfg.Server.GRPC.Port != "" {
		grpcSrv = grpcServer.NewServer(cfg.Server.GRPC.Port, logger)
		go func() {
			if err := grpcSrv.Start(); err != nil {
				logger.Fatal("Failed to start gRPC server", zap.Error(err))
			}
		}()
	}

	go func() {
		if err := httpSrv.Start(); err != nil {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down servers...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 15*time.Second)
	defer shutdownCancel()

	if grpcSrv != nil {
		if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown gRPC server", zap.Error(err))
		}
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		logger.Warn("Failed to close event publisher", zap.Error(err))
	}

	logger.Info("Servers shut down successfully")
}

func pingDatabase(db *gorm.DB) httpServer.HealthCheck {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// bodyLimit leaves room for multipart framing around the largest upload.
func bodyLimit(maxUpload int64) string {
	return fmt.Sprintf("%dK", (maxUpload+(1<<20))>>10)
}
