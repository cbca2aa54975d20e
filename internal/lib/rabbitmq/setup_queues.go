package rabbitmq

// QueueConfig связывает очередь с ключом маршрутизации в exchange "notifications".
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// TrialExpiredQueue — очередь писем об окончании пробного периода.
const TrialExpiredQueue = "notification.trial_expired"

// TrialExpiredRoutingKey — ключ маршрутизации сообщений об истёкших пробных периодах.
const TrialExpiredRoutingKey = "trial.expired"

func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: TrialExpiredQueue, RoutingKey: TrialExpiredRoutingKey},
	}
}
