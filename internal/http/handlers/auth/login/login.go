// Package login реализует HTTP-обработчик входа пользователей.
//
// При успешной аутентификации токен доступа кладётся в cookie access_tag
// (httpOnly, Secure, SameSite=Strict, срок жизни равен TTL токена) и вместе
// с refresh-токеном возвращается в теле ответа. Несуществующий никнейм и
// неверный пароль дают один и тот же ответ, чтобы не помогать перебору учёток.
package login

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
	"github.com/novasports/nova-backend/internal/lib/sl"
	"github.com/novasports/nova-backend/internal/services/auth"
)

// Request — структура входных данных для авторизации.
type Request struct {
	Nickname string `json:"nickname" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, rawNickname, rawPassword string) (*auth.TokenPair, error)
}

// Handler обрабатывает HTTP-запросы авторизации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	tokenTTL time.Duration
}

// New создает новый экземпляр Handler. tokenTTL определяет max-age cookie.
func New(log *slog.Logger, service Service, tokenTTL time.Duration) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
		tokenTTL: tokenTTL,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	pair, err := h.service.Login(r.Context(), req.Nickname, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Error("login rejected", slog.String("nickname", req.Nickname))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
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

	log.Info("login success", slog.String("nickname", req.Nickname))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token":         pair.Token,
		"refresh_token": pair.RefreshToken,
		"role":          pair.Role,
	}))
}
