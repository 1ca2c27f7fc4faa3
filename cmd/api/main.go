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
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/edurank/teacher-directory-api/api/swagger"
	"github.com/edurank/teacher-directory-api/internal/directory"
	"github.com/edurank/teacher-directory-api/internal/handler"
	"github.com/edurank/teacher-directory-api/internal/middleware"
	"github.com/edurank/teacher-directory-api/internal/querylog"
	"github.com/edurank/teacher-directory-api/internal/search"
	"github.com/edurank/teacher-directory-api/internal/service"
	"github.com/edurank/teacher-directory-api/internal/snapshot"
	"github.com/edurank/teacher-directory-api/pkg/cache"
	"github.com/edurank/teacher-directory-api/pkg/config"
	"github.com/edurank/teacher-directory-api/pkg/database"
	"github.com/edurank/teacher-directory-api/pkg/export"
	"github.com/edurank/teacher-directory-api/pkg/jobs"
	"github.com/edurank/teacher-directory-api/pkg/logger"
	corsmiddleware "github.com/edurank/teacher-directory-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edurank/teacher-directory-api/pkg/middleware/requestid"
	"github.com/edurank/teacher-directory-api/pkg/storage"
)

// @title Teacher Directory API
// @version 1.0.0
// @description Relevance-ranked instructor search with review aggregation and voting
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	directorySnap, queryLogSnap, err := buildSnapshotStores(ctx, cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init snapshot backend", "backend", cfg.Snapshot.Backend, "error", err)
	}

	store, err := directory.NewStore(ctx, directorySnap, directory.Options{
		BaseInstructorID: cfg.Directory.BaseInstructorID,
		BaseReviewID:     cfg.Directory.BaseReviewID,
		Logger:           logr,
	})
	if err != nil {
		logr.Sugar().Fatalw("failed to load directory", "error", err)
	}
	logr.Sugar().Infow("directory loaded", "instructors", store.Count())

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	engine := search.New(cfg.Search.MinQueryLength)

	var queryQueue *jobs.Queue
	if cfg.QueryLog.Enabled {
		journal, err := querylog.New(ctx, queryLogSnap, querylog.Options{Logger: logr})
		if err != nil {
			logr.Sugar().Fatalw("failed to load query log", "error", err)
		}
		queryQueue = service.NewQueryLogQueue(journal, cfg.QueryLog.Workers, cfg.QueryLog.BufferSize, logr)
		queryQueue.Start(ctx)
		defer queryQueue.Stop()
	}

	directorySvc := service.NewDirectoryService(store, engine, queryQueue, metricsSvc, validate, logr, service.DirectoryOptions{
		InstructorsPage: cfg.Directory.InstructorsPage,
		ReviewsPage:     cfg.Directory.ReviewsPage,
		TopLimit:        cfg.Directory.TopLimit,
	})
	authSvc := service.NewAuthService(cfg.Auth, validate, logr)

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		archive, err := storage.NewReportArchive(cfg.Exports.Dir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init report archive", "dir", cfg.Exports.Dir, "error", err)
		}
		exportSvc = service.NewExportService(store, export.NewCSVExporter(), export.NewPDFExporter(), archive, logr)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "instructors": store.Count()})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	instructors := handler.NewInstructorHandler(directorySvc)
	reviews := handler.NewReviewHandler(directorySvc)
	auth := handler.NewAuthHandler(authSvc)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/token", auth.Token)

		api.GET("/instructors", instructors.List)
		api.POST("/instructors", middleware.JWT(authSvc), instructors.Create)
		api.GET("/instructors/top", instructors.Top)
		api.GET("/instructors/:id", instructors.Get)
		api.GET("/instructors/:id/reviews", instructors.ListReviews)
		api.POST("/instructors/:id/reviews", instructors.CreateReview)

		api.GET("/reviews/:id", reviews.Get)
		api.POST("/reviews/:id/votes", reviews.Vote)

		api.GET("/search", instructors.Search)

		if exportSvc != nil {
			exports := handler.NewExportHandler(exportSvc)
			api.GET("/exports/top-instructors", middleware.JWT(authSvc), exports.TopInstructors)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "snapshot_backend", cfg.Snapshot.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Warn("forced shutdown", zap.Error(err))
	}
}

// buildSnapshotStores returns the corpus and query-log snapshot stores for
// the configured backend.
func buildSnapshotStores(ctx context.Context, cfg *config.Config) (snapshot.Store, snapshot.Store, error) {
	switch cfg.Snapshot.Backend {
	case config.SnapshotBackendFile:
		corpus, err := snapshot.NewFileStore(cfg.Snapshot.FilePath)
		if err != nil {
			return nil, nil, err
		}
		queries, err := snapshot.NewFileStore(cfg.Snapshot.QueryLogPath)
		if err != nil {
			return nil, nil, err
		}
		return corpus, queries, nil

	case config.SnapshotBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		corpus := snapshot.NewPostgresStore(db, cfg.Snapshot.PostgresKey)
		if err := corpus.EnsureSchema(ctx); err != nil {
			return nil, nil, err
		}
		queries := snapshot.NewPostgresStore(db, cfg.Snapshot.PostgresKey+"-queries")
		return corpus, queries, nil

	case config.SnapshotBackendRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		corpus := snapshot.NewRedisStore(client, cfg.Snapshot.RedisKey)
		queries := snapshot.NewRedisStore(client, cfg.Snapshot.QueryLogKey)
		return corpus, queries, nil

	default:
		return nil, nil, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshot.Backend)
	}
}
