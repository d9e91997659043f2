package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/event"
)

const DefaultPrefix = "adventure"

// Broker is the part of NatsServer the bridge needs.
type Broker interface {
	Ready() <-chan struct{}
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// SubmitFunc queues an intent for the game.
type SubmitFunc func(context.Context, commands.Intent) error

// Bridge mirrors every bus event onto <prefix>.<topic> as JSON and feeds
// intents published on <prefix>.intent back into the game.
type Bridge struct {
	broker Broker
	bus    *event.Bus
	submit SubmitFunc
	prefix string
}

func NewBridge(broker Broker, bus *event.Bus, submit SubmitFunc, prefix string) *Bridge {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Bridge{broker: broker, bus: bus, submit: submit, prefix: prefix}
}

// Subject returns the subject a topic is published on.
func (b *Bridge) Subject(topic string) string {
	return fmt.Sprintf("%s.%s", b.prefix, topic)
}

// Start waits for the broker, then relays until ctx is cancelled.
func (b *Bridge) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-b.broker.Ready():
	}

	sub := b.bus.SubscribeAll(b.forward)
	defer b.bus.Unsubscribe(sub)

	if b.submit != nil {
		unsubscribe, err := b.broker.Subscribe(b.Subject("intent"), func(data []byte) {
			b.receive(ctx, data)
		})
		if err != nil {
			return fmt.Errorf("subscribing to intents: %w", err)
		}
		defer unsubscribe()
	}

	<-ctx.Done()
	return nil
}

func (b *Bridge) forward(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", topic, err)
	}
	return b.broker.Publish(b.Subject(topic), data)
}

func (b *Bridge) receive(ctx context.Context, data []byte) {
	var in commands.Intent
	if err := json.Unmarshal(data, &in); err != nil {
		slog.Warn("discarding malformed intent", "error", err)
		return
	}
	if err := b.submit(ctx, in); err != nil {
		slog.Warn("submitting intent", "intent", in.String(), "error", err)
	}
}
