// Package subscription содержит бизнес-логику жизненного цикла подписок:
// запись подтверждённого платежа, чтение состояния и ежедневную зачистку
// истёкших записей.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/novasports/nova-backend/internal/lib/nickname"
	"github.com/novasports/nova-backend/internal/lib/sl"
	"github.com/novasports/nova-backend/internal/lib/tier"
	"github.com/novasports/nova-backend/internal/models"
	"github.com/novasports/nova-backend/internal/storage/repository"
)

// Срок действия подписки с момента подтверждения платежа.
const subscriptionPeriod = 28 * 24 * time.Hour

// expiringSoonWindow — за сколько до истечения подписка считается
// заканчивающейся, чтобы предупредить пользователя.
const expiringSoonWindow = 7 * 24 * time.Hour

var (
	// ErrNotSubscribed — у пользователя нет записи о подписке.
	// Отличается от пустого списка контента.
	ErrNotSubscribed = errors.New("no active subscription")
	// ErrSubscriptionExpired — запись есть, но срок вышел, а зачистка
	// до неё ещё не дошла.
	ErrSubscriptionExpired = errors.New("subscription is expired")
	// ErrUnrecognizedTier — сумма платежа не совпала ни с одной ценой.
	// Такой платёж не записывается вовсе.
	ErrUnrecognizedTier = errors.New("unrecognized payment amount")
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	UpsertSubscription(ctx context.Context, sub models.Subscription) error
	GetSubscription(ctx context.Context, nick string) (*models.Subscription, error)
	DeleteExpiredSubscriptions(ctx context.Context, now time.Time) (int64, error)
}

// Status — состояние подписки пользователя для отдачи наружу.
type Status struct {
	Tier         string
	ExpiresAt    time.Time
	ExpiringSoon bool
}

// SubscriptionService реализует жизненный цикл подписок.
type SubscriptionService struct {
	repo   SubscriptionRepository
	log    *slog.Logger
	priceA int
	priceB int
}

// NewSubscriptionService создает новый экземпляр SubscriptionService
// с двумя настроенными ценами тарифов.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger, priceA, priceB int) *SubscriptionService {
	return &SubscriptionService{
		repo:   repo,
		log:    log,
		priceA: priceA,
		priceB: priceB,
	}
}

// RecordPayment записывает подтверждённый платёж как подписку на 28 дней.
// Сумма сопоставляется с тарифом строго точным сравнением; нераспознанная
// сумма отклоняется и ничего не записывает. Новый платёж перезаписывает
// прежнюю подписку пользователя, а не накапливается.
func (s *SubscriptionService) RecordPayment(ctx context.Context, rawNickname string, amountPaid int, now time.Time) (*models.Subscription, error) {
	const op = "subscription.RecordPayment"

	subscriptionTier, err := tier.FromAmount(amountPaid, s.priceA, s.priceB)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnrecognizedTier)
	}

	sub := models.Subscription{
		Nickname:     nickname.Normalize(rawNickname),
		Tier:         subscriptionTier,
		SubscribedAt: now,
		ExpiresAt:    now.Add(subscriptionPeriod),
	}
	if err = s.repo.UpsertSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("recorded subscription",
		slog.String("nickname", sub.Nickname),
		slog.String("tier", sub.Tier),
		slog.Time("expires_at", sub.ExpiresAt))
	return &sub, nil
}

// Get возвращает состояние подписки пользователя на момент now.
// Истёкшая, но ещё не зачищенная запись даёт ErrSubscriptionExpired.
func (s *SubscriptionService) Get(ctx context.Context, rawNickname string, now time.Time) (*Status, error) {
	const op = "subscription.Get"

	sub, err := s.repo.GetSubscription(ctx, nickname.Normalize(rawNickname))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotSubscribed)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if now.After(sub.ExpiresAt) {
		return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionExpired)
	}
	return &Status{
		Tier:         sub.Tier,
		ExpiresAt:    sub.ExpiresAt,
		ExpiringSoon: now.Add(expiringSoonWindow).After(sub.ExpiresAt),
	}, nil
}

// ActiveTier возвращает уровень действующей подписки пользователя
// или ErrNotSubscribed, если подписки нет либо она истекла.
func (s *SubscriptionService) ActiveTier(ctx context.Context, rawNickname string, now time.Time) (string, error) {
	status, err := s.Get(ctx, rawNickname, now)
	if err != nil {
		if errors.Is(err, ErrSubscriptionExpired) {
			return "", ErrNotSubscribed
		}
		return "", err
	}
	return status.Tier, nil
}

// SweepExpired удаляет все подписки, истёкшие к моменту now. Операция
// идемпотентна: повторный запуск в тот же день ничего не удаляет.
// Ошибки логируются и не роняют процесс — следующий запуск повторит работу.
func (s *SubscriptionService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "subscription.SweepExpired"

	deleted, err := s.repo.DeleteExpiredSubscriptions(ctx, now)
	if err != nil {
		s.log.Error("failed to sweep expired subscriptions", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if deleted > 0 {
		s.log.Info("swept expired subscriptions", slog.Int64("deleted", deleted))
	}
	return deleted, nil
}
