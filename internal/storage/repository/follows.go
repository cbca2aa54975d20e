package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fanbase-dev/fanbase/internal/models"
)

// CreateFollow вставляет связь подписчик-автор. Повторная подписка
// распознаётся по ограничению уникальности пары и возвращает ErrAlreadyFollowing.
func (s *Storage) CreateFollow(ctx context.Context, followerProfileID, creatorProfileID string) error {
	const op = "storage.CreateFollow"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO follows (follower_profile_id, creator_profile_id)
			  VALUES ($1, $2)
			  ON CONFLICT (follower_profile_id, creator_profile_id) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, followerProfileID, creatorProfileID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrAlreadyFollowing)
	}
	return nil
}

// RemoveFollow удаляет связь подписчик-автор и возвращает количество удалённых строк.
// Удаление несуществующей связи не является ошибкой.
func (s *Storage) RemoveFollow(ctx context.Context, followerProfileID, creatorProfileID string) (int, error) {
	const op = "storage.RemoveFollow"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM follows
			  WHERE follower_profile_id = $1 AND creator_profile_id = $2`
	result, err := s.DB.ExecContext(ctx, query, followerProfileID, creatorProfileID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListFollowing возвращает авторов, на которых подписан профиль,
// вместе с данными профиля автора, от самых свежих подписок к старым.
func (s *Storage) ListFollowing(ctx context.Context, followerProfileID string) ([]*models.FollowedCreator, error) {
	const op = "storage.ListFollowing"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.handle, p.display_name, p.avatar_key, f.created_at
			  FROM follows f
			  JOIN profiles p ON p.id = f.creator_profile_id
			  WHERE f.follower_profile_id = $1
			  ORDER BY f.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, followerProfileID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.FollowedCreator, 0)
	for rows.Next() {
		var item models.FollowedCreator
		var avatarKey sql.NullString
		if err := rows.Scan(&item.CreatorID, &item.Handle, &item.DisplayName,
			&avatarKey, &item.FollowedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if avatarKey.Valid {
			item.AvatarKey = &avatarKey.String
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
