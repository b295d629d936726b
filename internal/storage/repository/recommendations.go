package repository

import (
	"context"
	"fmt"

	"github.com/novasports/nova-backend/internal/models"
)

// ListRecommendations возвращает весь список рекомендаций в стабильном
// и полном порядке: по тексту рекомендации по возрастанию, при равенстве —
// по id. Видимый префикс отрезает уже вызывающая сторона.
func (s *Storage) ListRecommendations(ctx context.Context) ([]*models.Recommendation, error) {
	const op = "storage.ListRecommendations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, league, home, away, recommendation
			  FROM recommendations
			  ORDER BY recommendation ASC, id ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Recommendation
	for rows.Next() {
		var rec models.Recommendation
		if err = rows.Scan(&rec.ID, &rec.League, &rec.Home, &rec.Away, &rec.Recommendation); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateRecommendation вставляет новую рекомендацию и возвращает её ID.
func (s *Storage) CreateRecommendation(ctx context.Context, rec models.Recommendation) (int, error) {
	const op = "storage.CreateRecommendation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO recommendations (league, home, away, recommendation)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		rec.League, rec.Home, rec.Away, rec.Recommendation).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// DeleteAllRecommendations очищает список рекомендаций и возвращает
// количество удалённых строк.
func (s *Storage) DeleteAllRecommendations(ctx context.Context) (int64, error) {
	const op = "storage.DeleteAllRecommendations"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM recommendations`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
