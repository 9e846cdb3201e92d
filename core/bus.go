package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/agentville/logging"
)

// Handler consumes a published event. Handlers must not retain or mutate the
// event payload. A panicking handler is recovered, logged and skipped; it
// never blocks delivery to the remaining subscribers.
type Handler func(Event)

// defaultLogCapacity is the number of recent events retained by the bus ring
// log when no explicit capacity is configured.
const defaultLogCapacity = 1000

type subscription struct {
	token   int
	handler Handler
}

// EventBus is a typed publish/subscribe hub. One bus instance is constructed
// per world and passed by reference to every subsystem that needs it; there
// is deliberately no package-level singleton so two worlds (or two tests)
// never share subscriber state.
//
// Delivery is synchronous and reentrant: handlers run on the publisher's
// goroutine, type-specific subscribers before wildcard subscribers, each
// group in registration order, and a handler may itself publish further
// events. PublishAsync runs all handlers concurrently and joins before
// returning, for callers that need completion guarantees around suspension
// points.
//
// The bus is not safe for concurrent use; the simulation advances strictly
// call-by-call (see the world package for the caller discipline).
type EventBus struct {
	logger logging.Logger

	nextToken int
	byType    map[EventType][]subscription
	wildcard  []subscription

	log      []Event
	logCap   int
	logStart int
}

// BusOptions configures an EventBus.
type BusOptions struct {
	// Logger receives per-handler failure reports. Defaults to a no-op logger.
	Logger logging.Logger
	// LogCapacity bounds the ring log of recent events. Defaults to 1000.
	LogCapacity int
}

// NewEventBus creates an empty bus.
func NewEventBus(optFns ...func(o *BusOptions)) *EventBus {
	opts := BusOptions{LogCapacity: defaultLogCapacity}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.LogCapacity <= 0 {
		opts.LogCapacity = defaultLogCapacity
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &EventBus{
		logger: opts.Logger,
		byType: make(map[EventType][]subscription),
		logCap: opts.LogCapacity,
	}
}

// Subscribe registers handler for the given event type and returns an
// unsubscribe token.
func (b *EventBus) Subscribe(eventType EventType, handler Handler) int {
	b.nextToken++
	b.byType[eventType] = append(b.byType[eventType], subscription{token: b.nextToken, handler: handler})
	return b.nextToken
}

// SubscribeAll registers a wildcard handler invoked for every event after the
// type-specific handlers. Returns an unsubscribe token.
func (b *EventBus) SubscribeAll(handler Handler) int {
	b.nextToken++
	b.wildcard = append(b.wildcard, subscription{token: b.nextToken, handler: handler})
	return b.nextToken
}

// Unsubscribe removes the subscription identified by token. Unknown tokens
// are ignored.
func (b *EventBus) Unsubscribe(token int) {
	for eventType, subs := range b.byType {
		b.byType[eventType] = removeToken(subs, token)
	}
	b.wildcard = removeToken(b.wildcard, token)
}

func removeToken(subs []subscription, token int) []subscription {
	for i, s := range subs {
		if s.token == token {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}

// Publish delivers an event of the given type synchronously to all matching
// subscribers and records it in the ring log. It returns the published event.
func (b *EventBus) Publish(eventType EventType, payload any) Event {
	ev := NewEvent(eventType, payload)
	b.record(ev)
	for _, s := range b.snapshot(eventType) {
		b.deliver(s, ev)
	}
	return ev
}

// PublishAsync delivers the event to all matching subscribers concurrently
// and waits for every handler to finish. Panic isolation matches Publish.
func (b *EventBus) PublishAsync(ctx context.Context, eventType EventType, payload any) Event {
	ev := NewEvent(eventType, payload)
	b.record(ev)
	g, _ := errgroup.WithContext(ctx)
	for _, s := range b.snapshot(eventType) {
		g.Go(func() error {
			b.deliver(s, ev)
			return nil
		})
	}
	_ = g.Wait() // handlers surface failures via panic recovery, never error
	return ev
}

// snapshot copies the matching subscriptions so handlers that subscribe or
// unsubscribe during delivery do not perturb the in-flight dispatch.
func (b *EventBus) snapshot(eventType EventType) []subscription {
	typed := b.byType[eventType]
	subs := make([]subscription, 0, len(typed)+len(b.wildcard))
	subs = append(subs, typed...)
	subs = append(subs, b.wildcard...)
	return subs
}

func (b *EventBus) deliver(s subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked", "event_type", string(ev.Type), "event_id", ev.ID, "panic", fmt.Sprintf("%v", r))
		}
	}()
	s.handler(ev)
}

func (b *EventBus) record(ev Event) {
	if len(b.log) < b.logCap {
		b.log = append(b.log, ev)
		return
	}
	b.log[b.logStart] = ev
	b.logStart = (b.logStart + 1) % b.logCap
}

// Recent returns up to n of the most recently published events, oldest
// first. n <= 0 returns the full retained log.
func (b *EventBus) Recent(n int) []Event {
	total := len(b.log)
	ordered := make([]Event, 0, total)
	for i := 0; i < total; i++ {
		ordered = append(ordered, b.log[(b.logStart+i)%total])
	}
	if n <= 0 || n >= total {
		return ordered
	}
	return ordered[total-n:]
}
