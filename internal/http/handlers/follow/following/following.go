// Package following реализует HTTP-обработчик для получения списка авторов,
// на которых подписан текущий пользователь.
//
// Handler извлекает профиль из контекста, вызывает бизнес-логику чтения
// списка подписок и возвращает авторов от свежих подписок к старым.
package following

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fanbase-dev/fanbase/internal/http/middlewarectx"
	"github.com/fanbase-dev/fanbase/internal/http/response"
	"github.com/fanbase-dev/fanbase/internal/lib/sl"
	"github.com/fanbase-dev/fanbase/internal/models"
)

// Handler управляет HTTP-запросами на чтение списка подписок пользователя.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики подписок на авторов
}

// Service описывает интерфейс бизнес-логики чтения списка подписок.
type Service interface {
	ListFollowing(ctx context.Context, followerProfileID string) ([]*models.FollowedCreator, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список подписок на авторов
// @Description Возвращает авторов, на которых подписан текущий пользователь, от свежих подписок к старым.
// @Tags Follow
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список авторов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /follow/following [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.follow.following"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	profile, ok := middlewarectx.ProfileFromContext(r.Context())
	if !ok {
		log.Error("profile not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	following, err := h.service.ListFollowing(r.Context(), profile.ID)
	if err != nil {
		log.Error("failed to list following", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list following"))
		return
	}

	log.Info("success to list following", slog.Int("count", len(following)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"following": following,
	}))
}
