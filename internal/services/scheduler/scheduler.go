// Package services реализует планировщик жизненного цикла пробных периодов:
// периодически завершает истёкшие пробные периоды и публикует уведомления
// для отправки владельцам профилей.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/fanbase-dev/fanbase/internal/lib/rabbitmq"
	"github.com/fanbase-dev/fanbase/internal/lib/sl"
	"github.com/fanbase-dev/fanbase/internal/models"
)

// Lifecycle — операции жизненного цикла подписки, которыми управляет планировщик.
type Lifecycle interface {
	ExpireDueTrials(ctx context.Context) ([]*models.TrialNotice, error)
}

type SchedulerService struct {
	lifecycle Lifecycle
	log       *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(lifecycle Lifecycle, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		lifecycle: lifecycle,
		log:       log,
	}
}

// ExpireTrials однократно и затем с заданным интервалом завершает истёкшие
// пробные периоды, публикуя уведомление по каждому затронутому профилю.
func (s *SchedulerService) ExpireTrials(ctx context.Context, channel *amqp.Channel, interval time.Duration) {
	s.runExpireTrials(ctx, channel)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runExpireTrials(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runExpireTrials(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting pass to expire due trial periods")
	notices, err := s.lifecycle.ExpireDueTrials(ctx)
	if err != nil {
		s.log.Error("failed to expire due trials", sl.Err(err))
		return
	}
	if len(notices) == 0 {
		s.log.Info("no expired trial periods found")
		return
	}
	s.log.Info("expired trial periods", "count", len(notices))
	for _, notice := range notices {
		err = rabbitmq.PublishMessage(channel, "notifications", rabbitmq.TrialExpiredRoutingKey, notice)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
