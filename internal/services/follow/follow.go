// Package services содержит бизнес-логику связей подписчик-автор,
// включая кеширование списка подписок пользователя.
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

// Бизнес-ошибки операций подписки на автора. Тексты возвращаются клиенту как есть.
var (
	// ErrSelfFollow — попытка подписаться на собственный профиль.
	ErrSelfFollow = errors.New("cannot follow your own profile")
	// ErrAlreadyFollowing — подписка на этого автора уже оформлена.
	ErrAlreadyFollowing = errors.New("already following this creator")
	// ErrCreatorNotFound — автор с указанным handle не найден.
	ErrCreatorNotFound = errors.New("creator not found")
)

// FollowRepository определяет методы для работы со связями в хранилище.
type FollowRepository interface {
	// CreateFollow добавляет связь подписчик-автор.
	CreateFollow(ctx context.Context, followerProfileID, creatorProfileID string) error
	// RemoveFollow удаляет связь и возвращает количество удалённых строк.
	RemoveFollow(ctx context.Context, followerProfileID, creatorProfileID string) (int, error)
	// ListFollowing возвращает авторов, на которых подписан профиль.
	ListFollowing(ctx context.Context, followerProfileID string) ([]*models.FollowedCreator, error)
	// GetProfileByHandle разрешает handle автора в профиль.
	GetProfileByHandle(ctx context.Context, handle string) (*models.Profile, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// FollowService реализует бизнес-логику подписок на авторов.
type FollowService struct {
	repo  FollowRepository
	cache Cache
	log   *slog.Logger
}

// NewFollowService создает новый экземпляр FollowService.
func NewFollowService(repo FollowRepository, cache Cache, log *slog.Logger) *FollowService {
	return &FollowService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListFollowing возвращает авторов профиля от свежих подписок к старым,
// используя кеш или хранилище. Отсутствие подписок — пустой список, не ошибка.
func (s *FollowService) ListFollowing(ctx context.Context, followerProfileID string) ([]*models.FollowedCreator, error) {
	var result []*models.FollowedCreator
	cacheKey := followingCacheKey(followerProfileID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListFollowing(ctx, followerProfileID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache following list", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Follow оформляет подписку профиля на автора по его handle.
func (s *FollowService) Follow(ctx context.Context, followerProfileID, creatorHandle string) (*models.Profile, error) {
	creator, err := s.repo.GetProfileByHandle(ctx, creatorHandle)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}
	if creator.ID == followerProfileID {
		return nil, ErrSelfFollow
	}

	if err := s.repo.CreateFollow(ctx, followerProfileID, creator.ID); err != nil {
		if errors.Is(err, repository.ErrAlreadyFollowing) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}

	s.log.Info("follow created", slog.String("follower", followerProfileID),
		slog.String("creator", creator.ID))

	cacheKey := followingCacheKey(followerProfileID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return creator, nil
}

// Unfollow удаляет подписку профиля на автора по его handle и возвращает,
// существовала ли связь. Отсутствие связи не является ошибкой.
func (s *FollowService) Unfollow(ctx context.Context, followerProfileID, creatorHandle string) (bool, error) {
	creator, err := s.repo.GetProfileByHandle(ctx, creatorHandle)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return false, ErrCreatorNotFound
		}
		return false, err
	}

	count, err := s.repo.RemoveFollow(ctx, followerProfileID, creator.ID)
	if err != nil {
		return false, err
	}

	cacheKey := followingCacheKey(followerProfileID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count > 0, nil
}

func followingCacheKey(followerProfileID string) string {
	return fmt.Sprintf("following:%s", followerProfileID)
}
