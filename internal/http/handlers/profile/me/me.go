// Package me реализует HTTP-обработчик для получения профиля текущего пользователя.
//
// Handler берет профиль, разрешённый middleware, дополняет его подписанной
// ссылкой на аватар и возвращает в JSON-формате.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fanbase-dev/fanbase/internal/http/middlewarectx"
	"github.com/fanbase-dev/fanbase/internal/http/response"
	"github.com/fanbase-dev/fanbase/internal/models"
	profileservice "github.com/fanbase-dev/fanbase/internal/services/profile"
)

// Handler управляет HTTP-запросами на чтение собственного профиля.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики профилей
}

// Service описывает интерфейс бизнес-логики представления профиля.
type Service interface {
	View(ctx context.Context, profile *models.Profile) *profileservice.ProfileView
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает профиль текущего пользователя с подписанной ссылкой на аватар.
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Router /profile/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.me"
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

	view := h.service.View(r.Context(), profile)

	log.Info("success to read profile", slog.String("profile_id", profile.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"profile": view,
	}))
}
