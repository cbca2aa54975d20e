// Package fanbase собирает зависимости HTTP API: хранилище, кеш, подписыватель
// ссылок, сервисы и маршруты; управляет запуском и остановкой сервера.
package fanbase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/fanbase-dev/fanbase/internal/cache"
	"github.com/fanbase-dev/fanbase/internal/config"
	libjwt "github.com/fanbase-dev/fanbase/internal/lib/jwt"
	"github.com/fanbase-dev/fanbase/internal/migrations"
	followservice "github.com/fanbase-dev/fanbase/internal/services/follow"
	profileservice "github.com/fanbase-dev/fanbase/internal/services/profile"
	subservice "github.com/fanbase-dev/fanbase/internal/services/subscription"
	"github.com/fanbase-dev/fanbase/internal/storage/objectstore"
	"github.com/fanbase-dev/fanbase/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	signer, err := objectstore.New(cfg.ObjectStorage)
	if err != nil {
		return nil, err
	}

	jwtMaker := libjwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	profileService := profileservice.NewProfileService(db, signer, logger)
	followService := followservice.NewFollowService(db, cacheRedis, logger)
	subscriptionService := subservice.NewSubscriptionService(db, cacheRedis, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, jwtMaker, profileService, followService, subscriptionService, signer)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.cache.Client.Close()
		_ = a.db.DB.Close()
		return err
	}
}
