package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/fanbase-dev/fanbase/internal/http/response"
	"github.com/fanbase-dev/fanbase/internal/lib/sl"
	"github.com/fanbase-dev/fanbase/internal/models"
	profileservice "github.com/fanbase-dev/fanbase/internal/services/profile"
)

// ProfileResolver определяет интерфейс разрешения учётной записи в профиль.
type ProfileResolver interface {
	Resolve(ctx context.Context, userUID string) (*models.Profile, error)
}

// ProfileMiddleware создает middleware, разрешающее учётную запись текущего
// пользователя в профиль платформы. Запросы без профиля (онбординг не
// завершён) получают 404 и не доходят до обработчиков.
func ProfileMiddleware(log *slog.Logger, resolver ProfileResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			profile, err := resolver.Resolve(r.Context(), userUID)
			if err != nil {
				if errors.Is(err, profileservice.ErrProfileNotFound) {
					log.Error("profile not found", slog.String("user_uid", userUID))
					w.WriteHeader(http.StatusNotFound)
					render.JSON(w, r, response.Error("profile not found"))
					return
				}
				log.Error("failed to resolve profile", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			ctx := context.WithValue(r.Context(), ProfileKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ProfileFromContext извлекает профиль текущего пользователя из контекста запроса.
func ProfileFromContext(ctx context.Context) (*models.Profile, bool) {
	profile, ok := ctx.Value(ProfileKey).(*models.Profile)
	return profile, ok && profile != nil
}
