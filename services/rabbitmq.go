package services

import (
	"context"
	"encoding/json"
	"fmt"

	"yatube/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const feedExchange = "feed_events"

// RabbitPublisher публикует события ленты в topic exchange с ключом user.<id>
type RabbitPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewRabbitPublisher подключается к брокеру и объявляет exchange
func NewRabbitPublisher(url string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		feedExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	logger.L().Info().Str("exchange", feedExchange).Msg("RabbitMQ initialized")
	return &RabbitPublisher{conn: conn, channel: ch}, nil
}

func routingKey(userID int64) string {
	return fmt.Sprintf("user.%d", userID)
}

func (p *RabbitPublisher) Publish(ctx context.Context, event FeedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.channel.PublishWithContext(ctx,
		feedExchange,
		routingKey(event.UserID),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// StartConsumer читает события из очереди queueName и пушит их в websocket.
// Возвращается сразу, чтение идет до отмены ctx или закрытия канала.
func (p *RabbitPublisher) StartConsumer(ctx context.Context, queueName string, ws *WSConnManager) error {
	q, err := p.channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := p.channel.QueueBind(q.Name, "user.*", feedExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	msgs, err := p.channel.Consume(
		q.Name,
		"",
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	direct := NewDirectNotifier(ws)
	go func() {
		l := logger.L().With().Str("queue", q.Name).Logger()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					l.Warn().Msg("feed event channel closed")
					return
				}
				var event FeedEvent
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					l.Error().Err(err).Msg("failed to unmarshal feed event")
					continue
				}
				if err := direct.Publish(ctx, event); err != nil {
					l.Error().Err(err).Msg("failed to push feed event")
				}
			}
		}
	}()
	return nil
}

func (p *RabbitPublisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
