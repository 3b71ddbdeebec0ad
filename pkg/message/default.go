package message

import "sync"

var (
	defaultMu  sync.Mutex
	defaultBus *Bus
)

// Default returns the process-wide Bus, creating it with default options on
// first use.
func Default() *Bus {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultBus == nil {
		defaultBus = New()
	}
	return defaultBus
}

// SetDefault replaces the process-wide Bus. Passing nil makes the next
// Default call create a fresh one.
func SetDefault(b *Bus) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultBus = b
}

// Register calls Default().Register.
func Register(eventType, id string, fn Listener) { Default().Register(eventType, id, fn) }

// Listen calls Default().Listen.
func Listen(eventType string, fn Listener) string { return Default().Listen(eventType, fn) }

// Unregister calls Default().Unregister.
func Unregister(eventType, id string) { Default().Unregister(eventType, id) }

// Start calls Default().Start.
func Start() error { return Default().Start() }

// Stop calls Default().Stop.
func Stop() { Default().Stop() }

// Active calls Default().Active.
func Active() bool { return Default().Active() }

// Trigger calls Default().Trigger.
func Trigger(eventType string, params any) error { return Default().Trigger(eventType, params) }

// Clear calls Default().Clear.
func Clear() { Default().Clear() }

// Queued calls Default().Queued.
func Queued() []QueuedMessage { return Default().Queued() }

// Len calls Default().Len.
func Len() int { return Default().Len() }

// Reset calls Default().Reset.
func Reset() { Default().Reset() }
