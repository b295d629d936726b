// Package refresh реализует HTTP-обработчик обновления токена доступа.
//
// По валидному refresh-токену выпускается новый access-токен. Роль в новом
// токене выводится из никнейма заново — из refresh-токена она не берётся.
package refresh

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

	"github.com/novasports/nova-backend/internal/http/middlewarectx"
	"github.com/novasports/nova-backend/internal/http/response"
	"github.com/novasports/nova-backend/internal/lib/jwt"
	"github.com/novasports/nova-backend/internal/lib/sl"
	"github.com/novasports/nova-backend/internal/services/auth"
)

// Request — структура входных данных для обновления токена.
type Request struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Service описывает интерфейс бизнес-логики обновления токенов.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}

// Handler обрабатывает HTTP-запросы обновления токена.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	tokenTTL time.Duration
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, tokenTTL time.Duration) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
		tokenTTL: tokenTTL,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

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

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			log.Error("expired refresh token")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("refresh token is expired, log in again"))
		case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, auth.ErrInvalidCredentials):
			log.Error("invalid refresh token")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid refresh token"))
		default:
			log.Error("refresh failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.AccessTagCookie,
		Value:    pair.Token,
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": pair.Token,
		"role":  pair.Role,
	}))
}
