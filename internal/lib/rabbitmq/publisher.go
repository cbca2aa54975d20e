package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// PublishMessage сериализует payload в JSON и публикует его в exchange
// с заданным ключом маршрутизации. Сообщения помечаются как persistent,
// чтобы пережить перезапуск брокера.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: marshal message: %w", op, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}
	if err := ch.Publish(exchange, routingkey, false, false, pub); err != nil {
		return fmt.Errorf("%s: publish to %q: %w", op, exchange, err)
	}
	return nil
}
