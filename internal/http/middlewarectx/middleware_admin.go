package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/novasports/nova-backend/internal/http/response"
	"github.com/novasports/nova-backend/internal/lib/jwt"
)

// AdminOnly пропускает дальше только запросы с ролью admin в контексте.
// Валидный токен с недостаточной ролью даёт HTTP 403 Forbidden.
func AdminOnly(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminOnly"

			role, ok := r.Context().Value(Role).(string)
			if !ok || role != jwt.RoleAdmin {
				log.Error("admin access denied",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("role", role),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("access forbidden, admin only"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
