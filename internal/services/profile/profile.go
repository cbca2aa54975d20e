// Package services содержит бизнес-логику профилей: разрешение учётной
// записи в профиль и выпуск подписанной ссылки на аватар.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fanbase-dev/fanbase/internal/models"
	"github.com/fanbase-dev/fanbase/internal/storage/repository"
)

// AvatarURLTTL — срок действия подписанной ссылки на аватар.
const AvatarURLTTL = 7 * 24 * time.Hour

// ErrProfileNotFound — у учётной записи нет профиля (онбординг не завершён).
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository определяет методы для работы с профилями в хранилище.
type ProfileRepository interface {
	// GetProfileByUserUID возвращает профиль учётной записи.
	GetProfileByUserUID(ctx context.Context, userUID string) (*models.Profile, error)
}

// URLSigner выпускает подписанные ссылки на чтение объектов хранилища.
type URLSigner interface {
	IssueReadURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ProfileView — профиль для выдачи клиенту вместе с подписанной ссылкой на аватар.
type ProfileView struct {
	models.Profile
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ProfileService реализует бизнес-логику профилей.
type ProfileService struct {
	repo   ProfileRepository
	signer URLSigner
	log    *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo ProfileRepository, signer URLSigner, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		signer: signer,
		log:    log,
	}
}

// Resolve разрешает идентификатор учётной записи в профиль.
func (s *ProfileService) Resolve(ctx context.Context, userUID string) (*models.Profile, error) {
	profile, err := s.repo.GetProfileByUserUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// View возвращает представление профиля для клиента. Если у профиля есть
// аватар, к нему выпускается подписанная ссылка; ошибка выпуска не скрывает
// сам профиль, ссылка в этом случае остаётся пустой.
func (s *ProfileService) View(ctx context.Context, profile *models.Profile) *ProfileView {
	view := &ProfileView{Profile: *profile}
	if profile.AvatarKey == nil {
		return view
	}

	url, err := s.signer.IssueReadURL(ctx, *profile.AvatarKey, AvatarURLTTL)
	if err != nil {
		s.log.Warn("failed to sign avatar url", slog.String("profile_id", profile.ID),
			slog.Any("err", err))
		return view
	}
	view.AvatarURL = url
	return view
}
