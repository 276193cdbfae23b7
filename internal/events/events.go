// Package events publishes a record of every successful mutation.
package events

import (
	"context"
	"time"

	"mini-admin/internal/config"

	"github.com/rs/zerolog"
)

// Event types.
const (
	UserCreated    = "user_created"
	UserUpdated    = "user_updated"
	UserDeleted    = "user_deleted"
	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"
)

// Entity names.
const (
	EntityUser    = "user"
	EntityProduct = "product"
)

// Event describes one completed mutation.
type Event struct {
	Type       string    `json:"type"`
	Entity     string    `json:"entity"`
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurredAt"`
}

// New returns an event stamped with the current time.
func New(eventType, entity, id, name string) Event {
	return Event{
		Type:       eventType,
		Entity:     entity,
		ID:         id,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }

// Open returns a Kafka publisher when cfg lists brokers, Nop otherwise.
func Open(cfg config.EventsConfig, logger zerolog.Logger) Publisher {
	if len(cfg.Brokers) == 0 {
		logger.Info().Msg("event publishing disabled")
		return Nop{}
	}
	return NewKafkaPublisher(cfg.Brokers, cfg.Topic, logger)
}
