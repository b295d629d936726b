// Package webhook реализует приём платёжных подтверждений от провайдера.
//
// Запрос проходит мимо обычной аутентификации: единственная гарантия
// подлинности — подпись HMAC-SHA512 от точного сырого тела запроса в
// заголовке X-Paystack-Signature. Подпись проверяется до любых побочных
// эффектов. Ответ 200 отдаётся сразу, запись подписки идёт в фоне:
// провайдера нельзя держать на открытом соединении ради записи в базу,
// поэтому новая подписка становится видимой с небольшой задержкой.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/novasports/nova-backend/internal/http/response"
	"github.com/novasports/nova-backend/internal/lib/signature"
	"github.com/novasports/nova-backend/internal/lib/sl"
	"github.com/novasports/nova-backend/internal/models"
	"github.com/novasports/nova-backend/internal/services/subscription"
)

// SignatureHeader — заголовок с подписью платёжного провайдера.
const SignatureHeader = "X-Paystack-Signature"

// recordTimeout ограничивает фоновую запись подписки.
const recordTimeout = 30 * time.Second

// Service описывает интерфейс записи подтверждённого платежа.
type Service interface {
	RecordPayment(ctx context.Context, rawNickname string, amountPaid int, now time.Time) (*models.Subscription, error)
}

// Handler обрабатывает платёжные вебхуки.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string
	validate      *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, webhookSecret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: webhookSecret,
		validate:      validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("cannot read request body"))
		return
	}
	defer func() {
		_ = r.Body.Close()
	}()

	// Подпись считается от сырых байт тела, не от пересериализованного JSON.
	if !signature.Verify(body, r.Header.Get(SignatureHeader), h.webhookSecret) {
		log.Error("invalid or missing webhook signature")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid signature"))
		return
	}

	var event models.PaymentEvent
	if err = json.Unmarshal(body, &event); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid payload"))
		return
	}
	if err = h.validate.Struct(event); err != nil {
		log.Error("webhook payload validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid payload"))
		return
	}

	go h.recordPayment(event)

	log.Info("webhook acknowledged", slog.String("nickname", event.Nickname))
	render.JSON(w, r, response.OKWithData(map[string]any{"accepted": true}))
}

// recordPayment записывает подписку в фоне, отдельно от HTTP-ответа.
// Нераспознанная сумма не записывается и не повторяется: провайдер уже
// получил 200, а повтор того же платежа дал бы тот же результат.
func (h *Handler) recordPayment(event models.PaymentEvent) {
	const op = "handlers.payment.webhook.record"
	log := h.log.With(slog.String("op", op))

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	_, err := h.service.RecordPayment(ctx, event.Nickname, event.AmountPaid, time.Now().UTC())
	if err != nil {
		if errors.Is(err, subscription.ErrUnrecognizedTier) {
			log.Error("payment amount matches no price point",
				slog.String("nickname", event.Nickname),
				slog.Int("amount_paid", event.AmountPaid))
			return
		}
		log.Error("failed to record subscription", sl.Err(err))
	}
}
