// Package remove реализует HTTP-обработчик для отмены подписки на автора.
//
// Handler извлекает handle автора из URL-параметров, вызывает бизнес-логику
// удаления связи и возвращает признак того, существовала ли подписка.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fanbase-dev/fanbase/internal/http/middlewarectx"
	"github.com/fanbase-dev/fanbase/internal/http/response"
	"github.com/fanbase-dev/fanbase/internal/lib/sl"
	followservice "github.com/fanbase-dev/fanbase/internal/services/follow"
)

// Handler управляет HTTP-запросами на отмену подписки на автора.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики подписок на авторов
}

// Service описывает интерфейс бизнес-логики отмены подписки.
type Service interface {
	Unfollow(ctx context.Context, followerProfileID, creatorHandle string) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отписаться от автора
// @Description Удаляет подписку текущего пользователя на автора по его handle.
// @Tags Follow
// @Produce json
// @Security BearerAuth
// @Param handle path string true "Handle автора"
// @Success 200 {object} response.Response "Признак удаления связи"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Автор не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /follow/{handle} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.follow.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	handle := chi.URLParam(r, "handle")
	if handle == "" {
		log.Error("failed to decode handle from url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode handle from url"))
		return
	}

	profile, ok := middlewarectx.ProfileFromContext(r.Context())
	if !ok {
		log.Error("profile not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	removed, err := h.service.Unfollow(r.Context(), profile.ID, handle)
	if err != nil {
		if errors.Is(err, followservice.ErrCreatorNotFound) {
			log.Error("creator not found", slog.String("handle", handle))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to remove follow", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not unfollow creator"))
		return
	}

	log.Info("success to unfollow creator", slog.Bool("removed", removed))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"removed": removed,
	}))
}
