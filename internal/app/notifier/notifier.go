// Package notifier собирает зависимости сервиса уведомлений: очередь
// сообщений и SMTP-транспорт; управляет запуском и остановкой потребителя.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/fanbase-dev/fanbase/internal/config"
	"github.com/fanbase-dev/fanbase/internal/lib/rabbitmq"
	"github.com/fanbase-dev/fanbase/internal/lib/smtp"
	senderservice "github.com/fanbase-dev/fanbase/internal/services/notifier"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(newTransport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.TrialExpiredQueue, a.senderService.SendTrialExpiredNotice)
	if err != nil {
		a.logger.Error("failed to start trial expired consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notifier service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
