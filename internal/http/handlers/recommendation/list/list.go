// Package list реализует HTTP-обработчик выдачи рекомендаций с учётом
// уровня подписки пользователя.
//
// Отсутствие подписки отвечается отдельным сигналом "нужно подписаться"
// и отличается от пустого списка рекомендаций.
package list

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
	"github.com/novasports/nova-backend/internal/models"
	"github.com/novasports/nova-backend/internal/services/subscription"
)

// Service описывает интерфейс выдачи рекомендаций по подписке.
type Service interface {
	ListVisible(ctx context.Context, rawNickname string, now time.Time) ([]*models.Recommendation, error)
}

// Handler обрабатывает HTTP-запросы списка рекомендаций.
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
	const op = "handlers.recommendation.list"

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

	recommendations, err := h.service.ListVisible(r.Context(), nick, time.Now().UTC())
	if err != nil {
		if errors.Is(err, subscription.ErrNotSubscribed) {
			log.Info("unsubscribed user requested recommendations", slog.String("nickname", nick))
			render.JSON(w, r, response.Error("you have to be subscribed to receive recommendations"))
			return
		}
		log.Error("failed to list recommendations", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	if len(recommendations) == 0 {
		render.JSON(w, r, response.OKWithData(map[string]any{
			"recommendations": []*models.Recommendation{},
			"message":         "no recommendations yet",
		}))
		return
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"recommendations": recommendations,
	}))
}
