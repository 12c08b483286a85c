// Package rabbitmq реализует подключение к RabbitMQ и публикацию
// аудит-событий шлюза в очередь audit.events.
package rabbitmq

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

const (
	// Exchange — exchange для аудит-событий.
	Exchange = "audit"
	// QueueName — очередь аудит-событий.
	QueueName = "audit.events"
	// RoutingKey — ключ маршрутизации аудит-событий.
	RoutingKey = "audit.event"
)

// Connect устанавливает соединение с RabbitMQ с повторными попытками.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// SetupChannel открывает канал и декларирует exchange, очередь и binding
// для аудит-событий.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := ch.ExchangeDeclare(
		Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := ch.QueueDeclare(
		QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, QueueName, err)
	}

	if err := ch.QueueBind(
		QueueName,
		RoutingKey,
		Exchange,
		false,
		nil,
	); err != nil {
		return nil, fmt.Errorf("%s: failed to bind queue %s: %w", op, QueueName, err)
	}

	return ch, nil
}
