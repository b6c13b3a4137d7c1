package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"rental/config"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/internal/domains/booking/model"
	"rental/shared/constant"
	"rental/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type Type string

const (
	TypeRequested Type = "booking.requested"
	TypeApproved  Type = "booking.approved"
	TypeRejected  Type = "booking.rejected"
	TypeCompleted Type = "booking.completed"
)

// ForStatus maps the status a booking moved into to its event type.
func ForStatus(status model.Status) Type {
	switch status {
	case model.StatusApproved:
		return TypeApproved
	case model.StatusRejected:
		return TypeRejected
	case model.StatusCompleted:
		return TypeCompleted
	default:
		return TypeRequested
	}
}

type Event struct {
	Type       Type      `json:"type"`
	BookingID  string    `json:"bookingId"`
	PropertyID string    `json:"propertyId"`
	CustomerID string    `json:"customerId"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"totalPrice"`
	ActorID    string    `json:"actorId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func New(eventType Type, booking model.Booking, actorID string) Event {
	return Event{
		Type:       eventType,
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		CustomerID: booking.CustomerID,
		Status:     string(booking.Status),
		TotalPrice: booking.TotalPrice,
		ActorID:    actorID,
		OccurredAt: timezone.Now(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type publisherImpl struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		topic:  cfg.Kafka.Topic,
		otel:   otel,
	}
}

// Publish sends the event keyed by booking so one booking's events stay ordered on a partition.
func (p *publisherImpl) Publish(ctx context.Context, event Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"event.type": string(event.Type),
		"booking.id": event.BookingID,
	})

	err = p.client.SendMessages(ctx, p.topic, kafka.Message{Key: event.BookingID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Str("booking_id", event.BookingID).Msg("failed to publish booking event")

		return err //nolint:wrapcheck
	}

	return nil
}
