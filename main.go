package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gallery-api/config"
	"gallery-api/database"
	routes "gallery-api/internal/app/http"
	"gallery-api/internal/app/http/middleware"
	"gallery-api/internal/domain/media"
	"gallery-api/internal/infra/mailer"
	"gallery-api/internal/infra/storage"
	"gallery-api/internal/jobs"
	"gallery-api/internal/logger"
	"gallery-api/internal/scheduler"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	logger.Init(config.LOG_LEVEL)
	gin.SetMode(config.GIN_MODE)

	if config.SENTRY_DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              config.SENTRY_DSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
		}); err != nil {
			slog.Error("sentry init failed", "err", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	database.InitDB()

	ctx := context.Background()
	if err := storage.Init(ctx, storage.Config{
		AccessKey: config.AWS_ACCESS_KEY_ID,
		SecretKey: config.AWS_SECRET_ACCESS_KEY,
		Region:    config.AWS_REGION,
		Bucket:    config.S3_BUCKET,
		Endpoint:  config.S3_ENDPOINT,
		UseSSL:    config.S3_USE_SSL,
		CDNDomain: config.CLOUDFRONT_DOMAIN,
	}); err != nil {
		slog.Error("storage unavailable, uploads are disabled", "err", err)
	} else if s3, ok := storage.Default.(*storage.S3); ok {
		if err := s3.EnsurePrefixExpiration(ctx, media.FolderTemp+"/", 1); err != nil {
			slog.Warn("could not set temp upload lifecycle rule", "err", err)
		}
	}

	mailer.Default = mailer.New(mailer.Config{
		From:         config.MAIL_FROM,
		ResendAPIKey: config.RESEND_API_KEY,
		SMTPHost:     config.SMTP_HOST,
		SMTPPort:     config.SMTP_PORT,
		SMTPUser:     config.SMTP_USER,
		SMTPPassword: config.SMTP_PASSWORD,
	})

	cleaner := media.DefaultCleaner(database.DB)
	var (
		pendingJob *jobs.PendingDeletionSweepJob
		tempJob    *jobs.TempUploadSweepJob
	)
	if storage.Default != nil {
		pendingJob = jobs.NewPendingDeletionSweepJob(cleaner)
		tempJob = jobs.NewTempUploadSweepJob(cleaner)
	}
	sched := scheduler.NewManager(
		jobs.NewUnverifiedUserCleanupJob(database.DB, cleaner, config.UNVERIFIED_ACCOUNT_TTL),
		pendingJob,
		tempJob,
	)
	if err := scheduler.Init(sched); err != nil {
		slog.Error("failed to start scheduler", "err", err)
		os.Exit(1)
	}

	r := gin.New()
	logger.SetupGin(r)
	r.Use(middleware.Trace())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))

	// CORS must be registered before the routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.CORS_ORIGINS,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.TraceHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.TraceHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + config.PORT,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("server starting", "port", config.PORT)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "err", err)
	}
	sched.Stop()
}
