package event

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// AnyTopic is the name under which catch-all subscribers are registered.
const AnyTopic = "*"

// Topic names an event stream and fixes the payload type carried on it.
type Topic[P any] struct {
	name string
}

func NewTopic[P any](name string) Topic[P] {
	return Topic[P]{name: name}
}

func (t Topic[P]) Name() string {
	return t.name
}

// Handler receives a payload. A returned error is logged by the bus and does
// not stop delivery to the remaining subscribers.
type Handler[P any] func(P) error

// AnyHandler receives every event published on the bus.
type AnyHandler func(topic string, payload any) error

// Subscription identifies one registered handler.
type Subscription struct {
	Id    string
	Topic string
}

type listener struct {
	id   string
	once bool
	fn   func(any) error
}

// Bus is an in-process publish/subscribe hub. Delivery is synchronous and in
// subscription order. It is safe for concurrent use, and handlers may
// publish or subscribe while being delivered to.
type Bus struct {
	mu        sync.Mutex
	listeners map[string][]*listener
}

func NewBus() *Bus {
	return &Bus{listeners: map[string][]*listener{}}
}

func Subscribe[P any](b *Bus, t Topic[P], h Handler[P]) Subscription {
	return b.add(t.name, false, wrap(t, h))
}

// SubscribeOnce registers a handler that is removed before its first call.
func SubscribeOnce[P any](b *Bus, t Topic[P], h Handler[P]) Subscription {
	return b.add(t.name, true, wrap(t, h))
}

// SubscribeAll registers a handler for every topic. Catch-all handlers run
// after the topic's own subscribers.
func (b *Bus) SubscribeAll(h AnyHandler) Subscription {
	return b.add(AnyTopic, false, func(p any) error {
		e := p.(envelope)
		return h(e.topic, e.payload)
	})
}

type envelope struct {
	topic   string
	payload any
}

func wrap[P any](t Topic[P], h Handler[P]) func(any) error {
	return func(p any) error {
		v, ok := p.(P)
		if !ok {
			return fmt.Errorf("topic %s: unexpected payload %T", t.name, p)
		}
		return h(v)
	}
}

func (b *Bus) add(topic string, once bool, fn func(any) error) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	l := &listener{id: uuid.NewString(), once: once, fn: fn}
	b.listeners[topic] = append(b.listeners[topic], l)

	return Subscription{Id: l.id, Topic: topic}
}

// Unsubscribe removes the handler. It reports whether the handler was
// still registered.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remove(sub.Topic, sub.Id)
}

func (b *Bus) remove(topic, id string) bool {
	ls := b.listeners[topic]
	i := slices.IndexFunc(ls, func(l *listener) bool { return l.id == id })
	if i < 0 {
		return false
	}

	ls = slices.Delete(slices.Clone(ls), i, i+1)
	if len(ls) == 0 {
		delete(b.listeners, topic)
	} else {
		b.listeners[topic] = ls
	}
	return true
}

// Publish delivers payload to every handler subscribed to t at the time of
// the call.
func Publish[P any](b *Bus, t Topic[P], payload P) {
	b.publish(t.name, payload)
}

func (b *Bus) publish(topic string, payload any) {
	b.deliver(topic, b.take(topic), payload)
	b.deliver(topic, b.take(AnyTopic), envelope{topic: topic, payload: payload})
}

// take returns the current handlers for topic and drops the one-shot ones.
func (b *Bus) take(topic string) []*listener {
	b.mu.Lock()
	defer b.mu.Unlock()

	ls := b.listeners[topic]
	for _, l := range ls {
		if l.once {
			b.remove(topic, l.id)
		}
	}
	return ls
}

func (b *Bus) deliver(topic string, ls []*listener, payload any) {
	for _, l := range ls {
		err := call(l, payload)
		if err != nil {
			slog.Error("event handler failed", "topic", topic, "subscription", l.id, "error", err)
		}
	}
}

func call(l *listener, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return l.fn(payload)
}

// Clear removes every handler for the named topic.
func (b *Bus) Clear(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, topic)
}

func (b *Bus) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = map[string][]*listener{}
}

func (b *Bus) ListenerCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[topic])
}

// Topics returns the names of topics with at least one handler, sorted.
func (b *Bus) Topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Sorted(maps.Keys(b.listeners))
}
