// Package events publishes reservation lifecycle events to RabbitMQ.
// Publishing is best-effort: callers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"hotel-reservations/models"
)

const (
	TypeReservationCreated       = "reservation.created"
	TypeReservationStatusChanged = "reservation.status_changed"
)

// ReservationEvent is the message body sent for every lifecycle change.
type ReservationEvent struct {
	Type           string                   `json:"type"`
	ReservationID  uint                     `json:"reservation_id"`
	Email          string                   `json:"email"`
	RoomType       string                   `json:"room_type"`
	CheckInDate    string                   `json:"check_in_date"`
	CheckOutDate   string                   `json:"check_out_date"`
	Status         models.ReservationStatus `json:"status"`
	PreviousStatus models.ReservationStatus `json:"previous_status,omitempty"`
	OccurredAt     string                   `json:"occurred_at"`
}

// NewReservationEvent builds an event snapshot from a stored reservation.
func NewReservationEvent(eventType string, r models.Reservation, previous models.ReservationStatus, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:           eventType,
		ReservationID:  r.ID,
		Email:          r.Email,
		RoomType:       r.RoomType,
		CheckInDate:    time.Time(r.CheckInDate).Format("2006-01-02"),
		CheckOutDate:   time.Time(r.CheckOutDate).Format("2006-01-02"),
		Status:         r.Status,
		PreviousStatus: previous,
		OccurredAt:     at.UTC().Format(time.RFC3339),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ReservationEvent) error { return nil }

// DefaultDialTimeout caps the broker connect when the caller's context has
// no earlier deadline.
const DefaultDialTimeout = 3 * time.Second

// AMQPPublisher dials the broker per publish and sends a persistent
// message to a durable queue.
type AMQPPublisher struct {
	URL         string
	Queue       string
	DialTimeout time.Duration
}

func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Queue: queue, DialTimeout: DefaultDialTimeout}
}

// dialTimeout is the smaller of DialTimeout and the time left on ctx.
func (p *AMQPPublisher) dialTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return 0, context.DeadlineExceeded
		}
		if left < timeout {
			timeout = left
		}
	}
	return timeout, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	timeout, err := p.dialTimeout(ctx)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}

	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}
