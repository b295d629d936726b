// Package checknick реализует HTTP-обработчик проверки доступности никнейма
// перед регистрацией.
package checknick

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
)

// Request — структура входных данных проверки никнейма.
type Request struct {
	Nickname string `json:"nickname" validate:"required,min=3,max=50"`
}

// Service описывает интерфейс проверки доступности никнейма.
type Service interface {
	CheckNickname(ctx context.Context, rawNickname string) (bool, error)
}

// Handler обрабатывает HTTP-запросы проверки никнейма.
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
	const op = "handlers.auth.checknick"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	available, err := h.service.CheckNickname(r.Context(), req.Nickname)
	if err != nil {
		log.Error("nickname check failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	if !available {
		render.JSON(w, r, response.OKWithData(map[string]any{
			"available": false,
			"message":   "this nickname is taken",
		}))
		return
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"available": true,
		"message":   "nickname available",
	}))
}
