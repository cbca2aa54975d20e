// Package services содержит бизнес-логику платного доступа профиля:
// однократную активацию пробного периода и переходы жизненного цикла подписки.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fanbase-dev/fanbase/internal/models"
	"github.com/fanbase-dev/fanbase/internal/storage/repository"
)

// TrialDuration — фиксированная длительность пробного периода.
const TrialDuration = 30 * 24 * time.Hour

// ErrTrialUnavailable — бизнес-ошибка активации пробного периода: он уже был
// использован или подписка действует. Текст возвращается клиенту как есть.
var ErrTrialUnavailable = errors.New("trial already used or subscription is active")

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// ActivateTrial атомарно включает пробный период, если он доступен.
	ActivateTrial(ctx context.Context, profileID string, periodStart, periodEnd time.Time) (*models.Subscription, error)
	// GetSubscription возвращает запись подписки профиля.
	GetSubscription(ctx context.Context, profileID string) (*models.Subscription, error)
	// ExpireDueTrials завершает истёкшие пробные периоды.
	ExpireDueTrials(ctx context.Context, now time.Time) ([]*models.TrialNotice, error)
	// CancelSubscription отменяет действующую подписку.
	CancelSubscription(ctx context.Context, profileID string) (*models.Subscription, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Lifecycle — точка расширения жизненного цикла подписки для внешнего
// планировщика. Переход в оплаченный статус active здесь отсутствует:
// его выполнит платёжный сервис, когда появится.
type Lifecycle interface {
	ExpireDueTrials(ctx context.Context) ([]*models.TrialNotice, error)
	Cancel(ctx context.Context, profileID string) (*models.Subscription, error)
}

// SubscriptionService реализует бизнес-логику платного доступа, включая кеширование статусов.
type SubscriptionService struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ActivateTrial включает тридцатидневный пробный период для профиля.
//
// Проверка и запись выполняются хранилищем атомарно: при любом исходе,
// кроме успеха, состояние подписки не меняется, а повторная или
// конкурентная активация получает ErrTrialUnavailable.
func (s *SubscriptionService) ActivateTrial(ctx context.Context, profileID string) (*models.Subscription, error) {
	now := time.Now().UTC()
	sub, err := s.repo.ActivateTrial(ctx, profileID, now, now.Add(TrialDuration))
	if err != nil {
		if errors.Is(err, repository.ErrTrialUnavailable) {
			return nil, ErrTrialUnavailable
		}
		return nil, err
	}

	s.log.Info("trial activated", slog.String("profile_id", profileID),
		slog.Time("period_end", *sub.PeriodEnd))

	cacheKey := subscriptionCacheKey(profileID)
	if err := s.cache.Set(cacheKey, sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return sub, nil
}

// Status возвращает текущее состояние подписки профиля, используя кеш
// или хранилище. Отсутствие записи означает статус none.
func (s *SubscriptionService) Status(ctx context.Context, profileID string) (*models.Subscription, error) {
	var result *models.Subscription
	cacheKey := subscriptionCacheKey(profileID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetSubscription(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return &models.Subscription{
				ProfileID: profileID,
				Status:    models.SubscriptionStatusNone,
			}, nil
		}
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey),
			slog.Any("err", err))
	}
	return result, nil
}

// ExpireDueTrials завершает все пробные периоды, срок которых прошёл,
// и возвращает данные для уведомления владельцев профилей.
func (s *SubscriptionService) ExpireDueTrials(ctx context.Context) ([]*models.TrialNotice, error) {
	notices, err := s.repo.ExpireDueTrials(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	for _, notice := range notices {
		cacheKey := subscriptionCacheKey(notice.ProfileID)
		if err := s.cache.Invalidate(cacheKey); err != nil {
			s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return notices, nil
}

// Cancel отменяет действующую подписку профиля.
func (s *SubscriptionService) Cancel(ctx context.Context, profileID string) (*models.Subscription, error) {
	sub, err := s.repo.CancelSubscription(ctx, profileID)
	if err != nil {
		return nil, err
	}

	cacheKey := subscriptionCacheKey(profileID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return sub, nil
}

func subscriptionCacheKey(profileID string) string {
	return fmt.Sprintf("subscription:%s", profileID)
}
