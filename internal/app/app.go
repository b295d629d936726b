// Package app собирает сервис воедино: хранилище, кеш, сервисы,
// HTTP-сервер и планировщик зачистки подписок.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/novasports/nova-backend/internal/cache"
	"github.com/novasports/nova-backend/internal/config"
	"github.com/novasports/nova-backend/internal/lib/jwt"
	"github.com/novasports/nova-backend/internal/migrations"
	"github.com/novasports/nova-backend/internal/ratelimit"
	"github.com/novasports/nova-backend/internal/scheduler"
	authservice "github.com/novasports/nova-backend/internal/services/auth"
	recservice "github.com/novasports/nova-backend/internal/services/recommendation"
	subservice "github.com/novasports/nova-backend/internal/services/subscription"
	"github.com/novasports/nova-backend/internal/storage/repository"
)

// App держит процесс-скоуповое состояние сервиса: сервер, базу и
// планировщик. Всё это стартует при запуске и останавливается при
// завершении — глобальных синглтонов нет.
type App struct {
	server    *http.Server
	scheduler *scheduler.Scheduler
	logger    *slog.Logger
	db        *repository.Storage
}

// New инициализирует все зависимости приложения.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL, cfg.RefreshTTL)
	authService := authservice.NewAuthService(db, jwtMaker, cfg.AdminNickname)
	subscriptionService := subservice.NewSubscriptionService(db, logger, cfg.TierAPrice, cfg.TierBPrice)
	recommendationService := recservice.NewRecommendationService(db, subscriptionService, cacheRedis, logger)

	sched, err := scheduler.New(subscriptionService, logger)
	if err != nil {
		return nil, err
	}

	authLimiter := ratelimit.NewKeyed(cfg.AuthPerMinute, time.Minute)
	readLimiter := ratelimit.NewKeyed(cfg.ReadPerMinute, time.Minute)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker,
		authService, subscriptionService, recommendationService,
		authLimiter, readLimiter,
		cfg.WebhookSecret, cfg.TokenTTL)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		scheduler: sched,
		logger:    logger,
		db:        db,
	}, nil
}

// Run запускает HTTP-сервер и планировщик и блокируется до отмены ctx.
// При завершении сначала гасится сервер, затем планировщик дожидается
// завершения идущего прохода зачистки, после чего закрывается база.
func (a *App) Run(ctx context.Context) error {
	a.scheduler.Start()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.scheduler.Stop()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.scheduler.Stop()
		_ = a.db.DB.Close()
		return err
	}
}
