package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	EventDepositRequested    = "deposit.requested"
	EventWithdrawalRequested = "withdrawal.requested"
	EventMessageSent         = "message.sent"
)

// Message is a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Returning an error requeues it.
type Handler func(ctx context.Context, msg Message) error

// Backend is what a broker has to offer the cashier.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// Event is the envelope the back office reads.
type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// Publisher sends cashier events to one queue.
type Publisher struct {
	backend Backend
	queue   string
}

func NewPublisher(backend Backend, queue string) *Publisher {
	return &Publisher{backend: backend, queue: queue}
}

func (p *Publisher) Queue() string {
	return p.queue
}

func (p *Publisher) PublishEvent(ctx context.Context, eventType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", eventType, err)
	}

	data, err := json.Marshal(Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: raw})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", eventType, err)
	}

	if _, err := p.backend.Publish(ctx, p.queue, data, map[string]string{"event": eventType}); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

// Consume decodes events from the queue until ctx is cancelled.
func (p *Publisher) Consume(ctx context.Context, fn func(ctx context.Context, evt Event) error) error {
	return p.backend.Subscribe(ctx, p.queue, func(ctx context.Context, msg Message) error {
		var evt Event
		if err := json.Unmarshal(msg.Data, &evt); err != nil {
			// A malformed body will never decode; drop it instead of requeueing forever.
			return nil
		}
		return fn(ctx, evt)
	})
}

func (p *Publisher) Close() error {
	return p.backend.Close()
}

// Nop discards everything. It stands in when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, []byte, map[string]string) (string, error) {
	return "", nil
}

func (Nop) Subscribe(ctx context.Context, _ string, _ Handler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (Nop) Close() error { return nil }
