package message

import (
	"context"
	"log/slog"
	"time"
)

// NotStartedWarningDelay is how long events may sit in the backlog of a bus
// that has never been started before a warning is emitted.
const NotStartedWarningDelay = 5 * time.Second

// NotStartedWarning is the text sent to the Warner.
const NotStartedWarning = "an event was triggered but event processing was never started; call Start to dispatch queued events"

// Warner receives the not-started warning.
// Warn runs on the timer goroutine and must not call Start on the bus that
// raised the warning.
type Warner interface {
	Warn(msg string)
}

// WarnerFunc adapts a function to Warner.
type WarnerFunc func(msg string)

// Warn calls f(msg).
func (f WarnerFunc) Warn(msg string) {
	f(msg)
}

// LogWarner writes warnings to a slog.Logger at WARN level.
// A nil Logger writes to slog.Default().
type LogWarner struct {
	Logger *slog.Logger
}

// Warn logs msg.
func (w LogWarner) Warn(msg string) {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn(msg, slog.String("component", "message"))
}

// scheduleWarningLocked arms the warning timer unless the bus has been
// started before or a timer is already pending. b.mu must be held.
func (b *Bus) scheduleWarningLocked() bool {
	if !b.cfg.warnings || b.everActivated || b.warning != nil {
		return false
	}

	b.warningGen++
	gen := b.warningGen
	b.warning = b.cfg.clock.AfterFunc(b.cfg.warningDelay, func() {
		b.fireWarning(gen)
	})
	return true
}

// cancelWarningLocked stops a pending timer. Safe to call with none pending.
// b.mu must be held.
func (b *Bus) cancelWarningLocked() {
	if b.warning == nil {
		return
	}
	b.warning.Stop()
	b.warning = nil
	b.warningGen++
}

// fireWarning runs on the timer goroutine. A timer that was cancelled after
// it started firing sees a different generation and stays quiet.
func (b *Bus) fireWarning(gen uint64) {
	b.warnMu.Lock()
	defer b.warnMu.Unlock()

	b.mu.Lock()
	if b.warning == nil || b.warningGen != gen {
		b.mu.Unlock()
		return
	}
	b.warning = nil
	b.mu.Unlock()

	b.cfg.metrics.RecordWarning(context.Background())
	b.cfg.warner.Warn(NotStartedWarning)
}
