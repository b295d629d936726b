// Package create реализует админский HTTP-обработчик загрузки рекомендаций.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/novasports/nova-backend/internal/http/response"
	"github.com/novasports/nova-backend/internal/lib/sl"
	"github.com/novasports/nova-backend/internal/models"
)

// Service описывает интерфейс добавления рекомендаций.
type Service interface {
	Add(ctx context.Context, req models.DummyRecommendation) (int, error)
}

// Handler обрабатывает HTTP-запросы загрузки рекомендаций.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recommendation.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRecommendation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Add(r.Context(), req)
	if err != nil {
		log.Error("failed to add recommendation", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to upload recommendation"))
		return
	}

	log.Info("recommendation uploaded", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":      id,
		"message": "recommendation uploaded",
	}))
}
