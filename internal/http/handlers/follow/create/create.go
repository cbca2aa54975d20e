// Package create реализует HTTP-обработчик для подписки на автора.
//
// Handler принимает JSON-запрос с handle автора, валидирует его, извлекает
// профиль текущего пользователя из контекста, вызывает бизнес-логику
// оформления подписки и возвращает данные автора в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fanbase-dev/fanbase/internal/http/middlewarectx"
	"github.com/fanbase-dev/fanbase/internal/http/response"
	"github.com/fanbase-dev/fanbase/internal/lib/sl"
	"github.com/fanbase-dev/fanbase/internal/models"
	followservice "github.com/fanbase-dev/fanbase/internal/services/follow"
)

// Handler управляет HTTP-запросами на подписку на автора.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики подписок на авторов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики оформления подписки.
type Service interface {
	Follow(ctx context.Context, followerProfileID, creatorHandle string) (*models.Profile, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подписаться на автора
// @Description Оформляет подписку текущего пользователя на автора по его handle.
// @Tags Follow
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyFollow true "Handle автора"
// @Success 200 {object} response.Response "Данные автора"
// @Failure 400 {object} response.ErrorResponse "Нарушение бизнес-правила"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Автор не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /follow [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.follow.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyFollow
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	profile, ok := middlewarectx.ProfileFromContext(r.Context())
	if !ok {
		log.Error("profile not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	creator, err := h.service.Follow(r.Context(), profile.ID, req.CreatorHandle)
	if err != nil {
		switch {
		case errors.Is(err, followservice.ErrCreatorNotFound):
			log.Error("creator not found", slog.String("handle", req.CreatorHandle))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(err.Error()))
		case errors.Is(err, followservice.ErrSelfFollow), errors.Is(err, followservice.ErrAlreadyFollowing):
			log.Error("follow rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to create follow", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not follow creator"))
		}
		return
	}

	log.Info("success to follow creator", slog.String("creator_id", creator.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"creator": creator,
	}))
}
