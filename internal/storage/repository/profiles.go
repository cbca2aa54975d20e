package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fanbase-dev/fanbase/internal/models"
)

// GetProfileByUserUID возвращает профиль по идентификатору учётной записи.
func (s *Storage) GetProfileByUserUID(ctx context.Context, userUID string) (*models.Profile, error) {
	const op = "storage.GetProfileByUserUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, handle, display_name, email, avatar_key, created_at
			  FROM profiles
			  WHERE user_uid = $1`
	return s.scanProfile(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// GetProfileByHandle возвращает профиль по его уникальному handle.
func (s *Storage) GetProfileByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	const op = "storage.GetProfileByHandle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, handle, display_name, email, avatar_key, created_at
			  FROM profiles
			  WHERE handle = $1`
	return s.scanProfile(s.DB.QueryRowContext(ctx, query, handle), op)
}

// CreateProfile сохраняет новый профиль и возвращает его идентификатор.
// Вызывается при онбординге пользователя внешним сервисом аутентификации.
func (s *Storage) CreateProfile(ctx context.Context, profile models.Profile) (string, error) {
	const op = "storage.CreateProfile"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO profiles (user_uid, handle, display_name, email, avatar_key)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		profile.UserUID, profile.Handle, profile.DisplayName, profile.Email, profile.AvatarKey).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

func (s *Storage) scanProfile(row *sql.Row, op string) (*models.Profile, error) {
	p := &models.Profile{}
	var avatarKey sql.NullString
	if err := row.Scan(&p.ID, &p.UserUID, &p.Handle, &p.DisplayName, &p.Email,
		&avatarKey, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if avatarKey.Valid {
		p.AvatarKey = &avatarKey.String
	}
	return p, nil
}
