package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fanbase-dev/fanbase/internal/models"
)

// ActivateTrial включает пробный период одним условным запросом.
//
// Проверка предусловий (пробный период не использован, нет действующей
// подписки) и запись выполняются атомарно на стороне базы: при конкурентных
// вызовах для одного профиля строку получит ровно один из них, остальным
// вернётся ErrTrialUnavailable. Ограничение UNIQUE по profile_id гарантирует,
// что конфликтующие INSERT сериализуются на одной строке.
func (s *Storage) ActivateTrial(ctx context.Context, profileID string, periodStart, periodEnd time.Time) (*models.Subscription, error) {
	const op = "storage.ActivateTrial"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (profile_id, status, trial_used, period_start, period_end)
			  VALUES ($1, 'trialing', TRUE, $2, $3)
			  ON CONFLICT (profile_id) DO UPDATE
			  SET status = 'trialing', trial_used = TRUE,
			      period_start = $2, period_end = $3, updated_at = now()
			  WHERE subscriptions.trial_used = FALSE
			    AND subscriptions.status NOT IN ('trialing', 'active')
			  RETURNING profile_id, status, trial_used, period_start, period_end`
	row := s.DB.QueryRowContext(ctx, query, profileID, periodStart, periodEnd)

	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrTrialUnavailable)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// GetSubscription возвращает запись подписки профиля.
// Отсутствие записи сигнализируется через ErrSubscriptionNotFound.
func (s *Storage) GetSubscription(ctx context.Context, profileID string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT profile_id, status, trial_used, period_start, period_end
			  FROM subscriptions
			  WHERE profile_id = $1`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, profileID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ExpireDueTrials переводит истёкшие пробные периоды в статус expired
// и возвращает данные затронутых профилей для отправки уведомлений.
func (s *Storage) ExpireDueTrials(ctx context.Context, now time.Time) ([]*models.TrialNotice, error) {
	const op = "storage.ExpireDueTrials"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions sub
			  SET status = 'expired', updated_at = now()
			  FROM profiles p
			  WHERE p.id = sub.profile_id
			    AND sub.status = 'trialing'
			    AND sub.period_end <= $1
			  RETURNING sub.profile_id, p.email, p.handle, p.display_name, sub.period_end`
	rows, err := s.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TrialNotice
	for rows.Next() {
		var notice models.TrialNotice
		if err := rows.Scan(&notice.ProfileID, &notice.Email, &notice.Handle,
			&notice.DisplayName, &notice.PeriodEnd); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &notice)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CancelSubscription переводит действующую подписку в статус canceled.
// Запись не удаляется, история сохраняется.
func (s *Storage) CancelSubscription(ctx context.Context, profileID string) (*models.Subscription, error) {
	const op = "storage.CancelSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = 'canceled', updated_at = now()
			  WHERE profile_id = $1 AND status IN ('trialing', 'active')
			  RETURNING profile_id, status, trial_used, period_start, period_end`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, profileID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	var sub models.Subscription
	var periodStart, periodEnd sql.NullTime
	if err := row.Scan(&sub.ProfileID, &sub.Status, &sub.TrialUsed,
		&periodStart, &periodEnd); err != nil {
		return nil, err
	}
	if periodStart.Valid {
		sub.PeriodStart = &periodStart.Time
	}
	if periodEnd.Valid {
		sub.PeriodEnd = &periodEnd.Time
	}
	return &sub, nil
}
