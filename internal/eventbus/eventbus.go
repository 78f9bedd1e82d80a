package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"

	"nexventory/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventDirectoryLoaded   = domain.EventDirectoryLoaded
	EventUserUpdated       = domain.EventUserUpdated
	EventAccessChanged     = domain.EventAccessChanged
	EventSelectorOpened    = domain.EventSelectorOpened
	EventSelectorCancelled = domain.EventSelectorCancelled
	EventCommandParsed     = domain.EventCommandParsed
	EventError             = domain.EventError
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigSaved       = domain.EventConfigSaved
)

// Re-export domain event types
type DirectoryLoadedEvent = domain.DirectoryLoadedEvent
type UserUpdatedEvent = domain.UserUpdatedEvent
type AccessChangedEvent = domain.AccessChangedEvent
type SelectorOpenedEvent = domain.SelectorOpenedEvent
type SelectorCancelledEvent = domain.SelectorCancelledEvent
type CommandParsedEvent = domain.CommandParsedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// DefaultBufferSize is the capacity of the dispatch queue
const DefaultBufferSize = 1000

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	inflight  sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	logger    *log.Logger
}

// Option configures the bus
type Option func(*bus)

// WithLogger sets the logger used for publish tracing and handler panics
func WithLogger(logger *log.Logger) Option {
	return func(b *bus) {
		b.logger = logger
	}
}

// WithBufferSize sets the dispatch queue capacity
func WithBufferSize(n int) Option {
	return func(b *bus) {
		if n > 0 {
			b.eventChan = make(chan DomainEvent, n)
		}
	}
}

// New creates a new event bus and starts its dispatcher
func New(opts ...Option) EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, DefaultBufferSize),
		quit:      make(chan struct{}),
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers of its type
func (b *bus) Publish(event DomainEvent) {
	select {
	case <-b.quit:
		b.logger.Warn("event bus closed, dropping event", "type", event.Type())
		return
	default:
	}

	b.logger.Debug("publishing event", "type", event.Type())

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn("event bus channel full, dropping event", "type", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher after delivering queued events and waits for
// running handlers to return
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
		b.inflight.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)
		case <-b.quit:
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event DomainEvent) {
	// Copy so handlers run without holding the lock
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.inflight.Add(1)
		go func(h EventHandler) {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
				}
			}()
			h(event)
		}(s.handler)
	}
}
