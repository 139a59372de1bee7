package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/metinatakli/cinema-booking/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ReceiptMessage is the payload published for an out-of-process receipt worker.
type ReceiptMessage struct {
	BookingID string                `json:"bookingId"`
	Request   domain.BookingRequest `json:"request"`
}

// AMQPGateway hands receipt requests to a durable RabbitMQ queue. It opens a
// connection per publish.
type AMQPGateway struct {
	url   string
	queue string
}

func NewAMQPGateway(url, queue string) *AMQPGateway {
	return &AMQPGateway{
		url:   url,
		queue: queue,
	}
}

func (g *AMQPGateway) SendReceipt(ctx context.Context, bookingID string, req domain.BookingRequest) error {
	body, err := json.Marshal(ReceiptMessage{BookingID: bookingID, Request: req})
	if err != nil {
		return fmt.Errorf("encode receipt message: %w", err)
	}

	conn, err := amqp.Dial(g.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	_, err = ch.QueueDeclare(
		g.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    bookingID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	err = ch.PublishWithContext(ctx, "", g.queue, false, false, pub)
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	return nil
}
