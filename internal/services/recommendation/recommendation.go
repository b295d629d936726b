// Package recommendation содержит бизнес-логику выдачи рекомендаций
// с учётом уровня подписки и кеширования общего списка.
package recommendation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/novasports/nova-backend/internal/lib/sl"
	"github.com/novasports/nova-backend/internal/lib/tier"
	"github.com/novasports/nova-backend/internal/models"
)

// cacheKey — ключ общего списка рекомендаций в кеше.
const cacheKey = "recommendations:all"

// cacheTTL намеренно короткий: админ может дозагружать рекомендации
// в течение игрового дня.
const cacheTTL = 5 * time.Minute

// RecommendationRepository определяет методы хранилища рекомендаций.
type RecommendationRepository interface {
	ListRecommendations(ctx context.Context) ([]*models.Recommendation, error)
	CreateRecommendation(ctx context.Context, rec models.Recommendation) (int, error)
	DeleteAllRecommendations(ctx context.Context) (int64, error)
}

// TierResolver сообщает уровень действующей подписки пользователя.
type TierResolver interface {
	ActiveTier(ctx context.Context, rawNickname string, now time.Time) (string, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// RecommendationService реализует выдачу и администрирование рекомендаций.
type RecommendationService struct {
	repo  RecommendationRepository
	subs  TierResolver
	cache Cache
	log   *slog.Logger
}

// NewRecommendationService создает новый экземпляр RecommendationService.
func NewRecommendationService(repo RecommendationRepository, subs TierResolver, cache Cache, log *slog.Logger) *RecommendationService {
	return &RecommendationService{
		repo:  repo,
		subs:  subs,
		cache: cache,
		log:   log,
	}
}

// ListVisible возвращает префикс общего списка рекомендаций, доступный
// пользователю по его подписке. Список отсортирован стабильно и полно:
// по тексту рекомендации, при равенстве — по id. Отсутствие подписки
// возвращается ошибкой и отличается от пустого списка.
func (s *RecommendationService) ListVisible(ctx context.Context, rawNickname string, now time.Time) ([]*models.Recommendation, error) {
	const op = "recommendation.ListVisible"

	activeTier, err := s.subs.ActiveTier(ctx, rawNickname, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	all, err := s.listAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	visible := tier.VisibleCount(activeTier, len(all))
	return all[:visible], nil
}

// listAll возвращает полный список, используя кеш или репозиторий.
func (s *RecommendationService) listAll(ctx context.Context) ([]*models.Recommendation, error) {
	var result []*models.Recommendation
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read recommendations cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListRecommendations(ctx)
	if err != nil {
		return nil, err
	}
	if err = s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache recommendations", sl.Err(err))
	}
	return result, nil
}

// Add вставляет новую рекомендацию и инвалидирует кеш списка.
func (s *RecommendationService) Add(ctx context.Context, req models.DummyRecommendation) (int, error) {
	const op = "recommendation.Add"

	rec := models.Recommendation{
		League:         req.League,
		Home:           req.Home,
		Away:           req.Away,
		Recommendation: req.Recommendation,
	}
	id, err := s.repo.CreateRecommendation(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to invalidate recommendations cache", sl.Err(err))
	}
	s.log.Info("added recommendation", slog.Int("id", id))
	return id, nil
}

// RemoveAll очищает список рекомендаций и кеш.
func (s *RecommendationService) RemoveAll(ctx context.Context) (int64, error) {
	const op = "recommendation.RemoveAll"

	deleted, err := s.repo.DeleteAllRecommendations(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to invalidate recommendations cache", sl.Err(err))
	}
	return deleted, nil
}
