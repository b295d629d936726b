// Package read реализует HTTP-обработчик чтения подписки текущего пользователя.
//
// Никнейм берётся только из проверенного токена в контексте запроса:
// чужую подписку через этот маршрут посмотреть нельзя.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/novasports/nova-backend/internal/http/middlewarectx"
	"github.com/novasports/nova-backend/internal/http/response"
	"github.com/novasports/nova-backend/internal/lib/sl"
	"github.com/novasports/nova-backend/internal/services/subscription"
)

// Service описывает интерфейс чтения состояния подписки.
type Service interface {
	Get(ctx context.Context, rawNickname string, now time.Time) (*subscription.Status, error)
}

// Handler обрабатывает HTTP-запросы чтения подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	nick, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || nick == "" {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	status, err := h.service.Get(r.Context(), nick, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrNotSubscribed):
			render.JSON(w, r, response.Error("no active subscription"))
		case errors.Is(err, subscription.ErrSubscriptionExpired):
			render.JSON(w, r, response.Error("your subscription is expired, renew to keep receiving recommendations"))
		default:
			log.Error("failed to read subscription", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	message := ""
	if status.ExpiringSoon {
		message = "your subscription will expire soon"
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscription": status.Tier,
		"expires_at":   status.ExpiresAt,
		"message":      message,
	}))
}
