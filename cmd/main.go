package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/vamshigadde09/PickleMatch-sub001/brackets"
	"github.com/vamshigadde09/PickleMatch-sub001/config"
	"github.com/vamshigadde09/PickleMatch-sub001/db"
	"github.com/vamshigadde09/PickleMatch-sub001/handlers"
	"github.com/vamshigadde09/PickleMatch-sub001/repositories"
	"github.com/vamshigadde09/PickleMatch-sub001/routes"
	"github.com/vamshigadde09/PickleMatch-sub001/services"
	"github.com/vamshigadde09/PickleMatch-sub001/storage"
)

// staleSweepSpec runs the stale-game sweeper once an hour.
const staleSweepSpec = "@hourly"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(dbConn, cfg.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("migrations applied")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	statsRepo := repositories.NewPostgresStatsRepository(dbConn)
	roomRepo := repositories.NewPostgresRoomRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, statsRepo, uploader)
	roomService := services.NewRoomService(roomRepo, uploader)
	gameService := services.NewGameService(dbConn, gameRepo, teamRepo, matchRepo, roomRepo, statsRepo, wsHub, logger)
	logger.Info("services initialized")

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(staleSweepSpec, func() {
		if err := gameService.CompleteStaleGames(context.Background()); err != nil {
			logger.Error("stale game sweep failed", slog.Any("error", err))
		}
	}); err != nil {
		logger.Error("failed to schedule stale game sweep", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()
	logger.Info("stale game sweeper scheduled", slog.String("spec", staleSweepSpec))

	jwtSecret := []byte(cfg.JWTSecretKey)
	h := routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService, jwtSecret),
		User:      handlers.NewUserHandler(userService),
		Room:      handlers.NewRoomHandler(roomService),
		Game:      handlers.NewGameHandler(gameService),
		Websocket: handlers.NewWebsocketHandler(wsHub, roomService, logger),
	}
	router := routes.InitRoutes(h, jwtSecret)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
