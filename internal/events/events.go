package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"equiprent-core/internal/domain"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher delivers domain events to whatever bus the deployment wires in.
type Publisher interface {
	Publish(ctx context.Context, evts ...domain.Event) error
}

// Envelope is the wire shape of a domain event: the shared header fields
// plus the event-specific payload as JSON.
type Envelope struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	OccurredAt  time.Time       `json:"occurred_at"`
	AggregateID string          `json:"aggregate_id"`
	Payload     json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a domain event, marshalling its payload fields.
func NewEnvelope(event domain.Event) (Envelope, error) {
	payload, err := jsonAPI.Marshal(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshalling %s payload: %w", event.EventType(), err)
	}
	return Envelope{
		EventID:     event.EventID().String(),
		EventType:   event.EventType(),
		OccurredAt:  event.OccurredAt(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
	}, nil
}

// DecodePayload unmarshals the envelope payload into v.
func (e Envelope) DecodePayload(v any) error {
	return jsonAPI.Unmarshal(e.Payload, v)
}
