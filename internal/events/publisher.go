package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/LiamF-2261667/fruckr-sub001/internal/invitation"
	"github.com/LiamF-2261667/fruckr-sub001/internal/order"
)

// Publisher emits order and invitation lifecycle events on a topic
// exchange. Callers treat publish failures as non-fatal.
type Publisher struct {
	ch       *amqp.Channel
	producer string
}

func NewPublisher(conn *amqp.Connection, producer string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}
	if producer == "" {
		producer = defaultProducer
	}
	return &Publisher{ch: ch, producer: producer}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	payload := OrderPlacedPayload{
		OrderID:     o.ID,
		FoodtruckID: o.FoodtruckID,
		ClientUID:   o.ClientUID,
		TotalAmount: o.TotalAmount(),
		Timestamp:   o.CreatedAt,
	}
	for _, it := range o.Items {
		payload.Items = append(payload.Items, OrderLine{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	env := newEnvelope(EventTypeOrderPlaced, orderPlacedSchema, o.FoodtruckID, p.producer, payload)
	return p.publishJSON(ctx, OrderPlacedRoutingKey, env)
}

func (p *Publisher) PublishOrderReady(ctx context.Context, o *order.Order) error {
	payload := OrderReadyPayload{
		OrderID:     o.ID,
		FoodtruckID: o.FoodtruckID,
		ReadyByUID:  o.ReadyByUID,
		Timestamp:   time.Now().UTC(),
	}
	env := newEnvelope(EventTypeOrderReady, orderReadySchema, o.FoodtruckID, p.producer, payload)
	return p.publishJSON(ctx, OrderReadyRoutingKey, env)
}

func (p *Publisher) PublishOrderCollected(ctx context.Context, o *order.Order) error {
	payload := OrderCollectedPayload{
		OrderID:        o.ID,
		FoodtruckID:    o.FoodtruckID,
		CollectedByUID: o.CollectedByUID,
		Timestamp:      time.Now().UTC(),
	}
	env := newEnvelope(EventTypeOrderCollected, orderCollectedSchema, o.FoodtruckID, p.producer, payload)
	return p.publishJSON(ctx, OrderCollectedRoutingKey, env)
}

func (p *Publisher) PublishInvitationCreated(ctx context.Context, inv *invitation.Invitation) error {
	payload := InvitationCreatedPayload{
		InvitationID: inv.ID,
		FoodtruckID:  inv.FoodtruckID,
		InvitedEmail: inv.InvitedEmail,
		Timestamp:    inv.CreatedAt,
	}
	env := newEnvelope(EventTypeInvitationCreated, invitationCreatedSchema, inv.FoodtruckID, p.producer, payload)
	return p.publishJSON(ctx, InvitationCreatedRoutingKey, env)
}

func newEnvelope[T any](name, schema, partitionKey, producer string, payload T) Envelope[T] {
	return Envelope[T]{
		EventName:    name,
		EventVersion: 1,
		EventID:      uuid.NewString(),
		Producer:     producer,
		PartitionKey: partitionKey,
		OccurredAt:   time.Now().UTC(),
		Schema:       schema,
		Payload:      payload,
	}
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", routingKey, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// NopPublisher is wired when no broker is configured. Events are dropped.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error         { return nil }
func (NopPublisher) PublishOrderReady(ctx context.Context, o *order.Order) error          { return nil }
func (NopPublisher) PublishOrderCollected(ctx context.Context, o *order.Order) error      { return nil }
func (NopPublisher) PublishInvitationCreated(ctx context.Context, inv *invitation.Invitation) error {
	return nil
}
