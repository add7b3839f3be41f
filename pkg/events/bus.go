package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/Lesliedc339/linux-terminal/pkg/logging"
)

// Topics published by the dispatcher.
const (
	TopicCommandExecuted = "command.executed"
	TopicCommandFailed   = "command.failed"
	TopicCommandNotFound = "command.not_found"
)

// Handler receives an emitted event.
type Handler func(event interface{})

// Bus is a fire-and-forget event bus. Every subscription has its own worker,
// so a subscriber sees events in the order they were emitted and a slow
// subscriber never holds up another one or the emitter. A panicking handler
// is logged and never reaches the emitter.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]*Subscription
	nextID      int
	logger      logging.Logger
}

// NewBus creates a bus. A nil logger disables logging of handler panics.
func NewBus(logger logging.Logger) *Bus {
	if logger == nil {
		logger = logging.NewDisabledLogger()
	}
	return &Bus{
		subscribers: make(map[string][]*Subscription),
		nextID:      1,
		logger:      logger,
	}
}

// Subscribe registers handler for topic and starts its delivery worker.
func (b *Bus) Subscribe(topic string, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	idle := make(chan struct{})
	close(idle)
	sub := &Subscription{
		bus:     b,
		topic:   topic,
		id:      b.nextID,
		handler: handler,
		idle:    idle,
		wake:    make(chan struct{}, 1),
	}
	b.nextID++
	b.subscribers[topic] = append(b.subscribers[topic], sub)
	go sub.run()
	return sub
}

// Emit queues event for every subscriber of topic without waiting for them.
func (b *Bus) Emit(topic string, event interface{}) {
	b.mu.RLock()
	subs := make([]*Subscription, len(b.subscribers[topic]))
	copy(subs, b.subscribers[topic])
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.enqueue(event)
	}
}

// Wait blocks until every subscriber has handled the events emitted so far,
// or ctx is done.
func (b *Bus) Wait(ctx context.Context) error {
	b.mu.RLock()
	var subs []*Subscription
	for _, topicSubs := range b.subscribers {
		subs = append(subs, topicSubs...)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) remove(topic string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[topic]
	for i, sub := range subs {
		if sub.id == id {
			b.subscribers[topic] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subscribers[topic]) == 0 {
		delete(b.subscribers, topic)
	}
}

// Subscription is one handler's queue of undelivered events.
type Subscription struct {
	bus     *Bus
	topic   string
	id      int
	handler Handler

	mu      sync.Mutex
	queue   []interface{}
	pending int
	idle    chan struct{}
	closed  bool
	wake    chan struct{}
}

// Wait blocks until this subscriber has handled the events queued so far,
// or ctx is done.
func (s *Subscription) Wait(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unsubscribe stops delivery. Events not yet handed to the handler are
// dropped; a delivery already running is left to finish.
func (s *Subscription) Unsubscribe() {
	s.bus.remove(s.topic, s.id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if dropped := len(s.queue); dropped > 0 {
		s.queue = nil
		s.pending -= dropped
		if s.pending == 0 {
			close(s.idle)
		}
	}
	s.signal()
}

func (s *Subscription) enqueue(event interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.pending == 0 {
		s.idle = make(chan struct{})
	}
	s.pending++
	s.queue = append(s.queue, event)
	s.signal()
}

// signal wakes the worker. Callers hold s.mu.
func (s *Subscription) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription) run() {
	for {
		event, ok := s.next()
		if !ok {
			return
		}
		s.deliver(event)
		s.finish()
	}
}

func (s *Subscription) next() (interface{}, bool) {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return nil, false
		}
		if len(s.queue) > 0 {
			event := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return event, true
		}
		s.mu.Unlock()
		<-s.wake
	}
}

func (s *Subscription) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if s.pending == 0 {
		close(s.idle)
	}
}

func (s *Subscription) deliver(event interface{}) {
	defer func() {
		if r := recover(); r != nil {
			s.bus.logger.Warn("event handler panicked", "topic", s.topic, "panic", fmt.Sprint(r))
		}
	}()
	s.handler(event)
}
