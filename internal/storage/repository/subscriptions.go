package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/novasports/nova-backend/internal/models"
)

// UpsertSubscription сохраняет подписку, перезаписывая прежнюю запись
// того же пользователя. Перезапись атомарна на уровне базы: гонка
// с ежедневной зачисткой не может оставить частично удалённую запись.
func (s *Storage) UpsertSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.UpsertSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (nickname, tier, subscribed_at, expires_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (nickname) DO UPDATE
			  SET tier = EXCLUDED.tier,
			      subscribed_at = EXCLUDED.subscribed_at,
			      expires_at = EXCLUDED.expires_at`
	if _, err := s.DB.ExecContext(ctx, query,
		sub.Nickname, sub.Tier, sub.SubscribedAt, sub.ExpiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSubscription возвращает подписку пользователя по нормализованному
// никнейму или ErrNotFound, если записи нет.
func (s *Storage) GetSubscription(ctx context.Context, nick string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT nickname, tier, subscribed_at, expires_at
			  FROM subscriptions
			  WHERE nickname = $1`
	var sub models.Subscription
	row := s.DB.QueryRowContext(ctx, query, nick)
	if err := row.Scan(&sub.Nickname, &sub.Tier, &sub.SubscribedAt, &sub.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// DeleteExpiredSubscriptions удаляет все подписки, истёкшие к моменту now,
// и возвращает количество удалённых строк. Повторный вызов ничего не удаляет.
func (s *Storage) DeleteExpiredSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage.DeleteExpiredSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE expires_at < $1`
	result, err := s.DB.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
