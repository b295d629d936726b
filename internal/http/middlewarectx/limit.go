package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/novasports/nova-backend/internal/http/response"
	"github.com/novasports/nova-backend/internal/ratelimit"
)

// clientKey выбирает ключ ограничителя: никнейм авторизованной сессии,
// иначе адрес клиента без порта.
func clientKey(r *http.Request) string {
	if nick, ok := r.Context().Value(User).(string); ok && nick != "" {
		return nick
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware отклоняет запросы сверх лимита с HTTP 429.
// Очереди нет: лишние запросы жёстко отбрасываются, чтобы записи в базу
// не копились без ограничения.
func RateLimitMiddleware(limiter *ratelimit.Keyed, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r), time.Now()) {
				log.Error("too many requests", slog.String("client", clientKey(r)))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
