package app

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checknickhandler "github.com/novasports/nova-backend/internal/http/handlers/auth/checknick"
	loginhandler "github.com/novasports/nova-backend/internal/http/handlers/auth/login"
	refreshhandler "github.com/novasports/nova-backend/internal/http/handlers/auth/refresh"
	registerhandler "github.com/novasports/nova-backend/internal/http/handlers/auth/register"
	healthhandler "github.com/novasports/nova-backend/internal/http/handlers/health"
	webhookhandler "github.com/novasports/nova-backend/internal/http/handlers/payment/webhook"
	reccreatehandler "github.com/novasports/nova-backend/internal/http/handlers/recommendation/create"
	reclisthandler "github.com/novasports/nova-backend/internal/http/handlers/recommendation/list"
	recremovehandler "github.com/novasports/nova-backend/internal/http/handlers/recommendation/removeall"
	subreadhandler "github.com/novasports/nova-backend/internal/http/handlers/subscription/read"
	"github.com/novasports/nova-backend/internal/http/middlewarectx"
	"github.com/novasports/nova-backend/internal/lib/jwt"
	"github.com/novasports/nova-backend/internal/ratelimit"
	authservice "github.com/novasports/nova-backend/internal/services/auth"
	recservice "github.com/novasports/nova-backend/internal/services/recommendation"
	subservice "github.com/novasports/nova-backend/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Открытые маршруты аутентификации ограничены более строгим лимитом, чем
// гейтированные чтения. Вебхук провайдера идёт мимо аутентификации и
// лимитов: его единственная защита — подпись тела запроса.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	jwtMaker jwt.Maker,
	authService *authservice.AuthService,
	subscriptionService *subservice.SubscriptionService,
	recommendationService *recservice.RecommendationService,
	authLimiter, readLimiter *ratelimit.Keyed,
	webhookSecret string,
	tokenTTL time.Duration,
) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки со строгим лимитом
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(authLimiter, logger))
			r.Post("/sign-up", registerhandler.New(logger, authService).ServeHTTP)
			r.Post("/sign-in", loginhandler.New(logger, authService, tokenTTL).ServeHTTP)
			r.Post("/refresh", refreshhandler.New(logger, authService, tokenTTL).ServeHTTP)
			r.Post("/check-nick", checknickhandler.New(logger, authService).ServeHTTP)
		})

		// Группа с проверкой токена доступа
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(readLimiter, logger))
			r.Get("/recommendations", reclisthandler.New(logger, recommendationService).ServeHTTP)
			r.Get("/subscriptions", subreadhandler.New(logger, subscriptionService).ServeHTTP)

			// Админские маршруты
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnly(logger))
				r.Post("/recommendations", reccreatehandler.New(logger, recommendationService).ServeHTTP)
				r.Delete("/recommendations", recremovehandler.New(logger, recommendationService).ServeHTTP)
			})
		})

		// Webhook endpoint (без аутентификации, защищён подписью)
		r.Post("/webhook/new-subscription", webhookhandler.New(logger, subscriptionService, webhookSecret).ServeHTTP)
	})

	r.Get("/health", healthhandler.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
}
