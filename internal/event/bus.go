package event

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Sentinel errors for the event bus.
var (
	// ErrInvalidTopic is returned when a topic is empty.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrHandlerPanic wraps a recovered handler panic.
	ErrHandlerPanic = errors.New("handler panicked")
)

// Priority determines handler execution order.
// Lower values execute first.
type Priority int

const (
	// PriorityHigh is for views that must reflect the change first.
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 200

	// PriorityLow is for autosave and logging handlers that run last.
	PriorityLow Priority = 300
)

// HandlerFunc handles one published event.
type HandlerFunc func(ctx context.Context, topic Topic, payload any) error

// Subscription identifies a registered handler.
type Subscription struct {
	id       uint64
	pattern  Topic
	priority Priority
	handler  HandlerFunc
}

// ID returns the subscription identifier.
func (s *Subscription) ID() uint64 { return s.id }

// Pattern returns the topic pattern the subscription matches.
func (s *Subscription) Pattern() Topic { return s.pattern }

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*Subscription)

// WithPriority sets the handler priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *Subscription) { s.priority = p }
}

// Bus delivers events synchronously to subscribed handlers.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	nextID atomic.Uint64

	published atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for topics matching pattern.
func (b *Bus) Subscribe(pattern Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	if pattern == "" {
		return nil, ErrInvalidTopic
	}
	if fn == nil {
		return nil, ErrNilHandler
	}

	sub := &Subscription{
		id:       b.nextID.Add(1),
		pattern:  pattern,
		priority: PriorityNormal,
		handler:  fn,
	}
	for _, opt := range opts {
		opt(sub)
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	sort.SliceStable(b.subs, func(i, j int) bool {
		return b.subs[i].priority < b.subs[j].priority
	})
	b.mu.Unlock()
	return sub, nil
}

// Unsubscribe removes a subscription. It reports whether it was registered.
func (b *Bus) Unsubscribe(sub *Subscription) bool {
	if sub == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish runs every handler whose pattern matches topic, in priority order.
// A failing or panicking handler does not stop delivery; all handler errors
// are joined into the returned error.
func (b *Bus) Publish(ctx context.Context, topic Topic, payload any) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	b.published.Add(1)

	b.mu.RLock()
	matching := make([]*Subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if topic.Matches(s.pattern) {
			matching = append(matching, s)
		}
	}
	b.mu.RUnlock()

	var errs []error
	for _, s := range matching {
		if err := deliver(ctx, s, topic, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Published returns the number of events published so far.
func (b *Bus) Published() uint64 {
	return b.published.Load()
}

func deliver(ctx context.Context, s *Subscription, topic Topic, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrHandlerPanic, topic, r)
		}
	}()
	return s.handler(ctx, topic, payload)
}
