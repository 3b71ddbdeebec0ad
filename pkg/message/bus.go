package message

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/randalmurphal/message/pkg/message/observability"
)

// Bus holds listeners and defers dispatch until Start is called.
//
// While inactive, Trigger queues events. Start switches to active, drains the
// backlog through the listeners, and from then on Trigger dispatches
// synchronously in the caller's goroutine. Stop returns to queuing.
//
// Bus is safe for concurrent use. Its lock is never held while a listener
// runs, so listeners may call back into the bus.
type Bus struct {
	cfg busConfig

	mu            sync.Mutex
	listeners     *registry
	backlog       backlog
	active        bool
	everActivated bool
	warning       *clock.Timer
	warningGen    uint64

	// warnMu is held while a fired warning is delivered. Start takes it
	// after cancelling the timer so no warning is emitted once Start
	// returns.
	warnMu sync.Mutex
}

// New creates an inactive Bus.
func New(opts ...Option) *Bus {
	cfg := defaultBusConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.warner == nil {
		cfg.warner = LogWarner{Logger: cfg.logger}
	}

	return &Bus{
		cfg:       cfg,
		listeners: newRegistry(),
	}
}

// Register adds fn under (eventType, id), replacing any listener already
// registered there. A nil fn is ignored.
func (b *Bus) Register(eventType, id string, fn Listener) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners.set(eventType, id, fn)
}

// Listen registers fn under a generated id and returns the id.
func (b *Bus) Listen(eventType string, fn Listener) string {
	id := uuid.NewString()
	b.Register(eventType, id, fn)
	return id
}

// Unregister removes the listener at (eventType, id). Unknown types and ids
// are ignored.
func (b *Bus) Unregister(eventType, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners.remove(eventType, id)
}

// Listeners returns the ids registered for eventType in dispatch order.
func (b *Bus) Listeners(eventType string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listeners.ids(eventType)
}

// Start activates processing and drains the backlog.
//
// Any pending not-started warning is cancelled, and no warning is emitted
// after Start returns. Under FailFast the first listener error ends the
// drain and is returned; messages not yet drained stay queued for the next
// Start. The drain also ends if a listener calls Stop.
func (b *Bus) Start() error {
	b.mu.Lock()
	b.cancelWarningLocked()
	b.active = true
	b.everActivated = true
	pending := b.backlog.len()
	b.mu.Unlock()

	// Wait out a warning that fired before the timer was cancelled.
	b.warnMu.Lock()
	b.warnMu.Unlock()

	observability.LogProcessingStarted(b.cfg.logger, pending)
	if pending == 0 {
		return nil
	}
	return b.drain(pending)
}

// Stop deactivates processing. Later events queue until the next Start.
func (b *Bus) Stop() {
	b.mu.Lock()
	b.active = false
	b.mu.Unlock()

	observability.LogProcessingStopped(b.cfg.logger)
}

// Active reports whether events are currently dispatched immediately.
func (b *Bus) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// Trigger raises an event.
//
// When active, every listener for eventType is called before Trigger
// returns and the dispatch error, if any, is returned. When inactive, the
// event is queued and nil is returned; the first event queued on a bus that
// was never started arms the not-started warning.
func (b *Bus) Trigger(eventType string, params any) error {
	ctx := context.Background()

	b.mu.Lock()
	if b.active {
		b.mu.Unlock()
		b.cfg.metrics.RecordTrigger(ctx, eventType, false)
		return b.dispatch(ctx, eventType, params)
	}

	msg := QueuedMessage{
		ID:       uuid.NewString(),
		Type:     eventType,
		Params:   params,
		QueuedAt: b.cfg.clock.Now(),
	}
	b.backlog.push(msg)
	depth := b.backlog.len()
	scheduled := b.scheduleWarningLocked()
	b.mu.Unlock()

	b.cfg.metrics.RecordTrigger(ctx, eventType, true)
	observability.LogQueued(b.cfg.logger, msg.ID, eventType, depth)
	if scheduled {
		observability.LogWarningScheduled(b.cfg.logger, eventType, b.cfg.warningDelay)
	}
	return nil
}

// Clear drops every queued message.
func (b *Bus) Clear() {
	b.mu.Lock()
	dropped := b.backlog.clear()
	b.mu.Unlock()

	observability.LogQueueCleared(b.cfg.logger, dropped)
}

// Queued returns a copy of the backlog, oldest first.
func (b *Bus) Queued() []QueuedMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.backlog.snapshot()
}

// Len returns the number of queued messages.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.backlog.len()
}

// Reset returns the bus to its freshly created state: no listeners, empty
// backlog, inactive, never started, no pending warning. Meant for tests that
// share a bus.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cancelWarningLocked()
	b.listeners = newRegistry()
	b.backlog.clear()
	b.active = false
	b.everActivated = false
}

func (b *Bus) drain(pending int) (err error) {
	done := observability.TimedOperation()
	ctx, span := b.cfg.spans.StartDrainSpan(context.Background(), pending)

	drained := 0
	defer func() {
		r := recover()
		if r != nil {
			err = recoveredError(r)
		}

		remaining := b.Len()
		if remaining > 0 {
			b.cfg.spans.AddSpanEvent(ctx, "drain.interrupted", attribute.Int("remaining", remaining))
		}

		elapsed := done()
		b.cfg.spans.EndSpanWithError(span, err)
		b.cfg.metrics.RecordDrain(ctx, drained, elapsed, err)
		observability.LogDrainComplete(b.cfg.logger, drained, remaining, elapsed)
		if r != nil {
			panic(r)
		}
	}()

	for {
		b.mu.Lock()
		if !b.active {
			b.mu.Unlock()
			return err
		}
		msg, ok := b.backlog.take(b.cfg.order)
		b.mu.Unlock()
		if !ok {
			return err
		}

		drained++
		if derr := b.dispatch(ctx, msg.Type, msg.Params); derr != nil {
			if b.cfg.policy == FailFast {
				return derr
			}
			err = multierr.Append(err, derr)
		}
	}
}
