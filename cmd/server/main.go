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

	"github.com/Freeeeeet/academy_booking/internal/app"
	"github.com/Freeeeeet/academy_booking/internal/config"
	"github.com/Freeeeeet/academy_booking/internal/controller"
	"github.com/Freeeeeet/academy_booking/internal/notifier"
	"github.com/Freeeeeet/academy_booking/internal/service"
	"github.com/Freeeeeet/academy_booking/internal/storage"
	"github.com/Freeeeeet/academy_booking/migrations"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting academy server",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("timezone", cfg.Location.String()),
	)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := app.OpenPool(ctx, cfg.DBDSN, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, migrations.FS, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	repos := app.NewRepositories(pool)

	seed := service.NewSeedService(repos.Users, repos.AllowedStudents, repos.Schedules, service.SeedConfig{
		TeacherPhone:    cfg.SeedTeacherPhone,
		TeacherPassword: cfg.SeedTeacherPassword,
		TeacherName:     cfg.SeedTeacherName,
	}, logger)
	if err := seed.EnsureSeedData(ctx); err != nil {
		return err
	}

	// Уведомления учителю
	var teacherNotifier service.Notifier = service.NopNotifier{}
	if cfg.NotificationsEnabled() {
		b, err := notifier.NewTelegramBot(cfg.TelegramToken)
		if err != nil {
			return err
		}
		tg := notifier.NewTelegram(b, repos.Schedules, cfg.TelegramTeacherChatID, cfg.Location, logger)
		defer tg.Wait()
		teacherNotifier = tg
		logger.Info("Telegram notifications enabled")
	} else {
		logger.Warn("Telegram notifications disabled")
	}

	// Хранилище фотографий
	var uploader controller.Uploader
	if cfg.UploadsEnabled() {
		gcs, err := storage.NewGCSUploader(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile, cfg.GCSPublicBaseURL, logger)
		if err != nil {
			return err
		}
		defer gcs.Close()
		uploader = gcs
		logger.Info("Photo uploads enabled", zap.String("bucket", cfg.GCSBucket))
	} else {
		logger.Warn("Photo uploads disabled, GCS_BUCKET is not set")
	}

	authService := service.NewAuthService(repos.Users, repos.AllowedStudents, repos.Sessions, cfg.SessionTTL, logger)
	scheduleService := service.NewScheduleService(repos.Schedules)
	reservationService := service.NewReservationService(
		repos.Tx,
		repos.Users,
		repos.Schedules,
		repos.Reservations,
		teacherNotifier,
		cfg.Location,
		logger,
	)
	rosterService := service.NewRosterService(repos.Tx, repos.AllowedStudents, logger)

	scheduler := app.NewScheduler(authService, time.Hour, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := controller.NewHandler(controller.Deps{
		Auth:         authService,
		Schedules:    scheduleService,
		Reservations: reservationService,
		Roster:       rosterService,
		Uploader:     uploader,
		Logger:       logger,
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           controller.NewRouter(handler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("Server stopped")
	return nil
}
