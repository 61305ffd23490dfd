package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/ur-campus-api/internal/handler"
	"github.com/noah-isme/ur-campus-api/internal/repository"
	"github.com/noah-isme/ur-campus-api/internal/service"
	"github.com/noah-isme/ur-campus-api/pkg/cache"
	"github.com/noah-isme/ur-campus-api/pkg/config"
	"github.com/noah-isme/ur-campus-api/pkg/database"
	"github.com/noah-isme/ur-campus-api/pkg/jobs"
	"github.com/noah-isme/ur-campus-api/pkg/logger"
	"github.com/noah-isme/ur-campus-api/pkg/storage"
	"github.com/noah-isme/ur-campus-api/pkg/validation"
)

// @title UR CST Campus Facility API
// @version 1.0.0
// @description Facility management dashboard for the University of Rwanda College of Science and Technology
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := bootstrap(ctx, cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("bootstrap failed", "error", err)
	}
	defer cleanup()

	app.reportQueue.Start(ctx)
	defer app.reportQueue.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(cfg, logr, app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}

type application struct {
	metrics     *service.MetricsService
	auth        *service.AuthService
	users       *service.UserService
	facilities  *service.FacilityService
	feedback    *service.FeedbackService
	recs        *service.RecommendationService
	predictions *service.PredictionService
	reports     *service.ReportService
	analytics   *service.AnalyticsService
	dashboard   *service.DashboardService
	announce    *service.AnnouncementService
	cache       *service.CacheService
	reportQueue *jobs.Queue
	checks      map[string]handler.ReadinessCheck
}

func bootstrap(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*application, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*application, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	app := &application{checks: map[string]handler.ReadinessCheck{}}
	app.metrics = service.NewMetricsService()
	validate := validation.New()
	latency := service.ProviderLatency{
		List:       cfg.Providers.ListLatency,
		Detail:     cfg.Providers.DetailLatency,
		Mutate:     cfg.Providers.MutateLatency,
		Report:     cfg.Providers.ReportLatency,
		Prediction: cfg.Providers.PredictionLatency,
	}

	var redisClient *redis.Client
	if needsRedis(cfg) {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			if cfg.Session.Driver == config.DriverRedis {
				return fail(err)
			}
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			redisClient = client
			closers = append(closers, func() { _ = client.Close() })
			app.checks["redis"] = cache.Check(client)
		}
	}

	sessions, err := sessionStorage(ctx, cfg, redisClient, &closers, app.checks)
	if err != nil {
		return fail(err)
	}

	assignments, err := assignmentStore(ctx, cfg, &closers, app.checks)
	if err != nil {
		return fail(err)
	}

	blobs, err := reportStorage(ctx, cfg.Reports)
	if err != nil {
		return fail(err)
	}

	if redisClient != nil {
		app.cache = service.NewCacheService(repository.NewCacheRepository(redisClient, logr), app.metrics, cfg.Analytics.CacheTTL, logr, cfg.Analytics.CacheEnabled)
	}

	userRepo := repository.NewUserRepository(repository.SeedUsers())
	facilityRepo := repository.NewFacilityRepository(repository.SeedFacilities())
	feedbackRepo := repository.NewFeedbackRepository(repository.SeedFeedback())
	recRepo := repository.NewRecommendationRepository(repository.SeedRecommendations())
	predictionRepo := repository.NewPredictionRepository(repository.SeedPredictions(), repository.SeedDatasets())
	reportRepo := repository.NewReportRepository(repository.SeedReports(time.Now()))
	announcementRepo := repository.NewAnnouncementRepository(repository.SeedAnnouncements())

	app.auth = service.NewAuthService(userRepo, sessions, validate, logr, app.metrics, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		SessionKeyPrefix:  cfg.Session.KeyPrefix,
	})
	app.users = service.NewUserService(userRepo, validate, logr, app.metrics, latency)
	app.facilities = service.NewFacilityService(facilityRepo, assignments, validate, logr, app.metrics, latency)
	app.feedback = service.NewFeedbackService(feedbackRepo, facilityRepo, validate, logr, app.metrics, latency)
	app.recs = service.NewRecommendationService(recRepo, validate, logr, app.metrics, latency)
	app.predictions = service.NewPredictionService(predictionRepo, validate, logr, app.metrics, latency)
	app.announce = service.NewAnnouncementService(announcementRepo, logr, app.metrics, latency)

	exporter := service.NewExportService(service.ReportSources{
		Facilities:      facilityRepo,
		Feedback:        feedbackRepo,
		Recommendations: recRepo,
		Predictions:     predictionRepo,
	}, blobs, logr)
	worker := service.NewReportWorker(reportRepo, exporter, app.metrics, logr)
	workers := cfg.Reports.WorkerConcurrency
	if workers <= 0 {
		workers = 1
	}
	app.reportQueue = jobs.NewQueue("reports", worker.Handle, jobs.QueueConfig{
		Workers:     workers,
		MaxRetries:  cfg.Reports.WorkerRetries,
		RetryDelay:  time.Second,
		OnExhausted: worker.MarkFailed,
		Logger:      logr,
	})
	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
	app.reports = service.NewReportService(reportRepo, app.reportQueue, exporter, signer, validate, logr, app.metrics, latency, service.ReportServiceConfig{
		APIPrefix: cfg.APIPrefix,
	})

	app.analytics = service.NewAnalyticsService(service.AnalyticsSources{
		Facilities:      facilityRepo,
		Feedback:        feedbackRepo,
		Recommendations: recRepo,
	}, app.cache, validate, logr, app.metrics, latency)

	app.dashboard = service.NewDashboardService(service.DashboardServiceParams{
		Facilities:      app.facilities,
		Feedback:        app.feedback,
		Recommendations: app.recs,
		Reports:         app.reports,
		Announcements:   app.announce,
		Users:           app.users,
		Analytics:       app.analytics,
		Cache:           app.cache,
		Logger:          logr,
		Config:          service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})

	return app, cleanup, nil
}

func needsRedis(cfg *config.Config) bool {
	return cfg.Session.Driver == config.DriverRedis || cfg.Analytics.CacheEnabled
}

func sessionStorage(ctx context.Context, cfg *config.Config, client *redis.Client, closers *[]func(), checks map[string]handler.ReadinessCheck) (repository.SessionStorage, error) {
	switch cfg.Session.Driver {
	case config.DriverRedis:
		return repository.NewRedisSessionStorage(client), nil
	case config.DriverSQLite:
		db, err := database.NewSQLite(cfg.Session.SQLitePath)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = db.Close() })
		checks["sqlite"] = db.PingContext
		return repository.NewSQLSessionStorage(ctx, db)
	case config.DriverMemory, "":
		return repository.NewMemorySessionStorage(), nil
	default:
		return nil, fmt.Errorf("unknown session driver %q", cfg.Session.Driver)
	}
}

func assignmentStore(ctx context.Context, cfg *config.Config, closers *[]func(), checks map[string]handler.ReadinessCheck) (repository.AssignmentStore, error) {
	switch cfg.Assignments.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = db.Close() })
		checks["postgres"] = db.PingContext
		store := repository.NewPostgresAssignmentStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverMemory, "":
		return repository.NewMemoryAssignmentStore(repository.SeedAssignments()), nil
	default:
		return nil, fmt.Errorf("unknown assignments driver %q", cfg.Assignments.Driver)
	}
}

func reportStorage(ctx context.Context, cfg config.ReportsConfig) (storage.BlobStore, error) {
	switch cfg.StorageDriver {
	case config.DriverS3:
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			PathStyle:       cfg.S3PathStyle,
		})
	case config.DriverLocal, "":
		return storage.NewLocalStorage(cfg.StorageDir)
	default:
		return nil, fmt.Errorf("unknown report storage driver %q", cfg.StorageDriver)
	}
}
