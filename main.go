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

	"eduplatform/config"
	"eduplatform/controllers"
	"eduplatform/jobs"
	"eduplatform/routes"
	"eduplatform/services"
	"eduplatform/services/logger"
	"eduplatform/services/notification"
)

const shutdownTimeout = 15 * time.Second

func main() {
	config.LoadEnv()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewDefaultLogger(logger.ParseLevel(cfg.Log.Level))
	defer func() { _ = appLogger.Sync() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Server stopped: %v", err)
		_ = appLogger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger *logger.ZapLogger) error {
	ctx := context.Background()

	db, err := config.ConnectDB(cfg.DB, appLogger)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.AutoMigrate(); err != nil {
		return err
	}

	rdb, err := config.ConnectRedis(ctx, cfg.Redis, appLogger)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}
	cache := services.NewCache(rdb)

	cld, err := config.ConnectCloudinary(cfg.Cloudinary)
	if err != nil {
		return err
	}

	router, m, c := config.InitApp(cfg, appLogger.Zap())

	tokens := services.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	dispatcher := notification.NewDispatcher(
		notification.NewEmailChannel(notification.EmailConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, appLogger),
		notification.NewPushChannel(m),
	)

	notificationService := services.NewNotificationService(services.NotificationServiceOptions{
		DB:         db.DB,
		Logger:     appLogger,
		Cache:      cache,
		Dispatcher: dispatcher,
	})
	contentService := services.NewContentService(services.ContentServiceOptions{
		DB:     db.DB,
		Logger: appLogger,
		Cache:  cache,
	})
	subjectService := services.NewSubjectService(services.SubjectServiceOptions{
		DB:     db.DB,
		Logger: appLogger,
		Cache:  cache,
	})
	authService := services.NewAuthService(services.AuthServiceOptions{
		DB:             db.DB,
		Logger:         appLogger,
		Tokens:         tokens,
		GoogleClientID: cfg.Google.ClientID,
	})

	mediaOpts := services.MediaServiceOptions{Content: contentService, Logger: appLogger}
	if cld != nil {
		mediaOpts.Uploader = services.NewCloudinaryUploader(cld)
	}
	mediaService := services.NewMediaService(mediaOpts)

	if err := jobs.InitCronJobs(c, notificationService, cfg.Cleanup.Cron, cfg.Cleanup.DaysOld, appLogger); err != nil {
		return err
	}
	defer func() { <-c.Stop().Done() }()

	config.InitWebSocket(router, m, tokens, appLogger)
	router.GET("/health", config.Health(db))

	routes.SetupRoutes(router, tokens, routes.Controllers{
		Auth:         controllers.NewAuthController(authService),
		Notification: controllers.NewNotificationController(notificationService),
		Content:      controllers.NewContentController(contentService, mediaService),
		Subject:      controllers.NewSubjectController(subjectService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Server starting on port %s...", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		appLogger.Info("Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	_ = m.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	appLogger.Info("Server exited")
	return nil
}
