// Package fanbase предоставляет маршруты для основного приложения.
package fanbase

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	followcreate "github.com/fanbase-dev/fanbase/internal/http/handlers/follow/create"
	"github.com/fanbase-dev/fanbase/internal/http/handlers/follow/following"
	followremove "github.com/fanbase-dev/fanbase/internal/http/handlers/follow/remove"
	"github.com/fanbase-dev/fanbase/internal/http/handlers/health"
	"github.com/fanbase-dev/fanbase/internal/http/handlers/profile/me"
	"github.com/fanbase-dev/fanbase/internal/http/handlers/subscription/status"
	"github.com/fanbase-dev/fanbase/internal/http/handlers/subscription/trial"
	"github.com/fanbase-dev/fanbase/internal/http/handlers/upload/presign"
	"github.com/fanbase-dev/fanbase/internal/http/middlewarectx"
	followservice "github.com/fanbase-dev/fanbase/internal/services/follow"
	profileservice "github.com/fanbase-dev/fanbase/internal/services/profile"
	subservice "github.com/fanbase-dev/fanbase/internal/services/subscription"
	"github.com/fanbase-dev/fanbase/internal/storage/objectstore"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, tokenParser middlewarectx.TokenParser,
	profileService *profileservice.ProfileService, followService *followservice.FollowService,
	subscriptionService *subservice.SubscriptionService, signer *objectstore.Signer) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			// Выпуск подписанных ссылок не требует профиля платформы
			r.Post("/upload/presign/read", presign.New(logger, signer).ServeHTTP)

			// Группа с разрешённым профилем текущего пользователя
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.ProfileMiddleware(logger, profileService))
				r.Get("/profile/me", me.New(logger, profileService).ServeHTTP)
				r.Get("/follow/following", following.New(logger, followService).ServeHTTP)
				r.Post("/follow", followcreate.New(logger, followService).ServeHTTP)
				r.Delete("/follow/{handle}", followremove.New(logger, followService).ServeHTTP)
				r.Post("/subscription/trial", trial.New(logger, subscriptionService).ServeHTTP)
				r.Get("/subscription/status", status.New(logger, subscriptionService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
