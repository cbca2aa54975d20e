// Package presign реализует HTTP-обработчик для выпуска подписанной ссылки
// на чтение объекта из хранилища медиа.
//
// Handler принимает JSON-запрос с ключом объекта и необязательным сроком
// действия, валидирует их до обращения к хранилищу и возвращает ссылку
// в JSON-формате. Ошибка провайдера хранилища возвращается как 500.
package presign

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fanbase-dev/fanbase/internal/http/response"
	"github.com/fanbase-dev/fanbase/internal/lib/sl"
	"github.com/fanbase-dev/fanbase/internal/models"
	"github.com/fanbase-dev/fanbase/internal/storage/objectstore"
)

// Handler управляет HTTP-запросами на выпуск подписанных ссылок.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	signer   Signer              // Подписыватель ссылок хранилища
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Signer описывает интерфейс выпуска подписанных ссылок на чтение.
type Signer interface {
	IssueReadURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// New создает новый Handler с переданными логгером и подписывателем.
func New(log *slog.Logger, signer Signer) *Handler {
	return &Handler{
		log:      log,
		signer:   signer,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подписанная ссылка на чтение
// @Description Выпускает ссылку на чтение объекта хранилища с ограниченным сроком действия (не более 7 дней).
// @Tags Upload
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyPresign true "Ключ объекта и срок действия"
// @Success 200 {object} response.Response "Подписанная ссылка"
// @Failure 400 {object} response.ErrorResponse "Ключ объекта не задан"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка провайдера хранилища"
// @Router /upload/presign/read [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.upload.presign"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPresign
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

	ttl := time.Duration(req.TTLSeconds) * time.Second
	url, err := h.signer.IssueReadURL(r.Context(), req.Key, ttl)
	if err != nil {
		if errors.Is(err, objectstore.ErrEmptyKey) {
			log.Error("empty object key")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("object key is required"))
			return
		}
		log.Error("failed to issue read url", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not issue read url"))
		return
	}

	log.Info("success to issue read url", slog.String("key", req.Key))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"url": url,
	}))
}
