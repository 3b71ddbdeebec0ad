package message

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/randalmurphal/message/pkg/message/observability"
)

// dispatch calls every listener registered for eventType with params.
// Unknown event types are not an error. A panicking listener still ends the
// dispatch span and is recorded as a failed dispatch before the panic
// continues up the stack.
func (b *Bus) dispatch(ctx context.Context, eventType string, params any) (err error) {
	b.mu.Lock()
	targets := b.listeners.snapshot(eventType)
	b.mu.Unlock()

	if len(targets) == 0 {
		return nil
	}

	ctx, span := b.cfg.spans.StartDispatchSpan(ctx, eventType)
	start := time.Now()
	defer func() {
		r := recover()
		if r != nil {
			err = recoveredError(r)
		}
		b.cfg.spans.EndSpanWithError(span, err)
		b.cfg.metrics.RecordDispatch(ctx, eventType, len(targets), time.Since(start), err)
		if r != nil {
			panic(r)
		}
	}()

	for _, l := range targets {
		lerr := l.fn(params)
		if lerr == nil {
			continue
		}

		wrapped := &ListenerError{EventType: eventType, ListenerID: l.id, Err: lerr}
		observability.LogListenerError(b.cfg.logger, eventType, l.id, lerr)
		if b.cfg.policy == FailFast {
			return wrapped
		}
		err = multierr.Append(err, wrapped)
	}
	return err
}

// recoveredError describes a recovered listener panic for spans and metrics.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("listener panic: %w", err)
	}
	return fmt.Errorf("listener panic: %v", r)
}
