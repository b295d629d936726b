// Package middlewarectx содержит HTTP middleware: проверку токена доступа,
// требование роли администратора и ограничение частоты запросов.
//
// JWTMiddleware достаёт токен из cookie access_tag либо из заголовка
// Authorization, проверяет его и кладёт в контекст запроса никнейм и роль.
// Просроченный токен отклоняется с отдельным сообщением, чтобы клиент мог
// молча обновиться по refresh-токену вместо повторного входа.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/novasports/nova-backend/internal/http/response"
	"github.com/novasports/nova-backend/internal/lib/jwt"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для никнейма пользователя в контексте.
	User Key = "nickname"
	// Role — ключ для роли пользователя в контексте.
	Role Key = "role"
)

// AccessTagCookie — имя cookie с токеном доступа.
const AccessTagCookie = "access_tag"

// credentialFromRequest достаёт токен из cookie или заголовка Authorization.
// Транспортную обвязку дальше этого места токен не покидает.
func credentialFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AccessTagCookie); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен доступа.
//
// Если токен валиден, добавляет никнейм и роль в контекст запроса,
// иначе возвращает HTTP 401 Unauthorized.
func JWTMiddleware(maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := credentialFromRequest(r)
			if tokenStr == "" {
				log.Error("missing access credential")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing access credential"))
				return
			}

			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				if errors.Is(err, jwt.ErrExpiredToken) {
					log.Error("expired access credential")
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error("access credential is expired, refresh or log in again"))
					return
				}
				log.Error("invalid access credential")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid access credential"))
				return
			}

			ctx := context.WithValue(r.Context(), User, claims.Nickname)
			ctx = context.WithValue(ctx, Role, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
