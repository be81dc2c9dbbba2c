package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/auth"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/logging"
	"resume-builder/internal/usecase"
	ai "resume-builder/pkg/ai"
	infra "resume-builder/pkg/infrastructure"

	"go.uber.org/zap"
)

type stores struct {
	resumes  usecase.ResumeRepository
	users    usecase.UserRepository
	checkers []usecase.Checker
	close    func()
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer st.close()

	tokens := auth.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	resumes := usecase.NewResumeService(st.resumes, logger.Named("resumes"))
	authSvc := usecase.NewAuthService(st.users, tokens, logger.Named("auth"))

	chrome := infra.NewChrome(cfg.ChromePath)
	exporter := usecase.NewExporter([]usecase.PDFStrategy{
		infra.NewFilePrinter(chrome),
		infra.NewInlinePrinter(chrome),
	}, cfg.ExportTimeout, logger.Named("export"))

	var images httpadapter.ImageStore
	if cfg.S3.Enabled() {
		s3store, err := infra.NewS3ImageStore(ctx, infra.S3Options{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			logger.Fatal("s3 image store", zap.Error(err))
		}
		images = s3store
	} else {
		logger.Warn("S3_BUCKET not set, image uploads disabled")
	}

	app := httpadapter.NewApp(httpadapter.Handlers{
		Resumes: httpadapter.NewHandler(resumes),
		Auth:    httpadapter.NewAuthHandler(authSvc, time.Duration(cfg.JWTTTLMinutes)*time.Minute),
		Export:  httpadapter.NewExportHandler(resumes, exporter),
		Upload:  httpadapter.NewUploadHandler(images, cfg.MaxUploadBytes),
		AI:      httpadapter.NewAIHandler(resumes, ai.NewClient(cfg.AIServiceURL, logger.Named("ai"))),
		Health:  httpadapter.NewHealthHandler(usecase.NewReadiness(st.checkers...)),
		Tokens:  tokens,
	}, cfg.BodyLimitBytes, logger)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func openStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := infra.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return stores{}, err
		}
		db := client.Database(cfg.MongoDatabase)
		resumes, users := repo.NewMongoResumes(db), repo.NewMongoUsers(db)
		if err := resumes.EnsureIndexes(ctx); err != nil {
			return stores{}, fmt.Errorf("resume indexes: %w", err)
		}
		if err := users.EnsureIndexes(ctx); err != nil {
			return stores{}, fmt.Errorf("user indexes: %w", err)
		}
		return stores{
			resumes:  resumes,
			users:    users,
			checkers: []usecase.Checker{infra.NewMongoChecker(client)},
			close:    func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.DriverPostgres:
		pool, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return stores{}, err
		}
		if err := migration.RunMigrations(ctx, pool, logger.Named("migrations")); err != nil {
			pool.Close()
			return stores{}, err
		}
		return stores{
			resumes:  repo.NewPostgresResumes(pool),
			users:    repo.NewPostgresUsers(pool),
			checkers: []usecase.Checker{infra.NewPostgresChecker(pool)},
			close:    pool.Close,
		}, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		mem := repo.NewMemoryStore()
		return stores{resumes: mem, users: mem.Users(), close: func() {}}, nil
	}
	return stores{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
