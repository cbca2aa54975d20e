// Package trial реализует HTTP-обработчик для активации пробного периода.
//
// Handler извлекает профиль текущего пользователя из контекста, вызывает
// бизнес-логику активации пробного периода и возвращает состояние подписки
// в JSON-формате. Пробный период активируется не более одного раза за всё
// время существования профиля.
package trial

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fanbase-dev/fanbase/internal/http/middlewarectx"
	"github.com/fanbase-dev/fanbase/internal/http/response"
	"github.com/fanbase-dev/fanbase/internal/lib/sl"
	"github.com/fanbase-dev/fanbase/internal/models"
	subservice "github.com/fanbase-dev/fanbase/internal/services/subscription"
)

// Handler управляет HTTP-запросами на активацию пробного периода.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики платного доступа
}

// Service описывает интерфейс бизнес-логики активации пробного периода.
type Service interface {
	ActivateTrial(ctx context.Context, profileID string) (*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Активировать пробный период
// @Description Включает тридцатидневный пробный период для текущего пользователя. Доступно один раз за всё время существования профиля.
// @Tags Subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Состояние подписки"
// @Failure 400 {object} response.ErrorResponse "Пробный период недоступен"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription/trial [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.trial"
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

	sub, err := h.service.ActivateTrial(r.Context(), profile.ID)
	if err != nil {
		if errors.Is(err, subservice.ErrTrialUnavailable) {
			log.Error("trial unavailable", slog.String("profile_id", profile.ID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to activate trial", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not activate trial"))
		return
	}

	log.Info("success to activate trial", slog.String("profile_id", profile.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription": sub,
		"message":      "trial activated",
	}))
}
