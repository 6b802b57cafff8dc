package events

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange              = "fruckr.events"
	OrderPlacedRoutingKey       = "order.placed.v1"
	OrderReadyRoutingKey        = "order.ready.v1"
	OrderCollectedRoutingKey    = "order.collected.v1"
	InvitationCreatedRoutingKey = "invitation.created.v1"
	defaultProducer             = "fruckr-api"
)

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
