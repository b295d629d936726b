// Package removeall реализует админский HTTP-обработчик очистки списка
// рекомендаций перед новым игровым днём.
package removeall

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/novasports/nova-backend/internal/http/response"
	"github.com/novasports/nova-backend/internal/lib/sl"
)

// Service описывает интерфейс очистки рекомендаций.
type Service interface {
	RemoveAll(ctx context.Context) (int64, error)
}

// Handler обрабатывает HTTP-запросы очистки списка рекомендаций.
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
	const op = "handlers.recommendation.removeall"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	deleted, err := h.service.RemoveAll(r.Context())
	if err != nil {
		log.Error("failed to clear recommendations", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to clear recommendations"))
		return
	}

	log.Info("recommendations cleared", slog.Int64("deleted", deleted))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted": deleted,
	}))
}
