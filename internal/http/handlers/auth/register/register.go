// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Никнейм, email и телефон нормализуются в сервисном слое до проверки
// уникальности, поэтому повторная регистрация "Ann" после "ann" отклоняется
// как дубликат с HTTP 409 Conflict.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/novasports/nova-backend/internal/http/response"
	"github.com/novasports/nova-backend/internal/lib/sl"
	"github.com/novasports/nova-backend/internal/models"
	"github.com/novasports/nova-backend/internal/services/auth"
)

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, req models.DummyUser) (string, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
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
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
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

	if _, err := h.service.Register(r.Context(), req); err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			log.Error("duplicate registration", slog.String("nickname", req.Nickname))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("an account already exists with this email, nickname or phone number"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("nickname", req.Nickname))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"nickname": req.Nickname,
		"message":  "registered successfully",
	}))
}
