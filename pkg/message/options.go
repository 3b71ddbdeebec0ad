package message

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/randalmurphal/message/pkg/message/config"
	"github.com/randalmurphal/message/pkg/message/observability"
)

// DrainOrder selects the order in which Start flushes the backlog.
type DrainOrder int

const (
	// LIFO drains the most recently queued message first.
	LIFO DrainOrder = iota

	// FIFO drains messages in the order they were queued.
	FIFO
)

// String returns "lifo" or "fifo".
func (o DrainOrder) String() string {
	if o == FIFO {
		return "fifo"
	}
	return "lifo"
}

// ParseDrainOrder parses "lifo" or "fifo", case-insensitively.
func ParseDrainOrder(s string) (DrainOrder, error) {
	switch strings.ToLower(s) {
	case "lifo":
		return LIFO, nil
	case "fifo":
		return FIFO, nil
	}
	return LIFO, fmt.Errorf("%w: drain_order %q", ErrInvalidSetting, s)
}

// FailurePolicy decides what a listener error does to the rest of a dispatch.
type FailurePolicy int

const (
	// FailFast stops at the first listener error. Remaining listeners for the
	// event are skipped and a drain in progress is abandoned.
	FailFast FailurePolicy = iota

	// Isolate runs every listener and every queued message, then returns all
	// listener errors combined.
	Isolate
)

// String returns "fail_fast" or "isolate".
func (p FailurePolicy) String() string {
	if p == Isolate {
		return "isolate"
	}
	return "fail_fast"
}

// ParseFailurePolicy parses "fail_fast" or "isolate", case-insensitively.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(s) {
	case "fail_fast", "failfast":
		return FailFast, nil
	case "isolate":
		return Isolate, nil
	}
	return FailFast, fmt.Errorf("%w: failure_policy %q", ErrInvalidSetting, s)
}

// busConfig holds a Bus's fixed settings.
type busConfig struct {
	clock        clock.Clock
	warner       Warner
	warningDelay time.Duration
	warnings     bool
	logger       *slog.Logger
	metrics      observability.MetricsRecorder
	spans        observability.SpanManager
	order        DrainOrder
	policy       FailurePolicy
}

func defaultBusConfig() busConfig {
	return busConfig{
		clock:        clock.New(),
		warningDelay: NotStartedWarningDelay,
		warnings:     true,
		metrics:      observability.NoopMetrics{},
		spans:        observability.NoopSpanManager{},
		order:        LIFO,
		policy:       FailFast,
	}
}

// Option configures a Bus.
type Option func(*busConfig)

// WithWarner sets where the not-started warning goes.
// Default: LogWarner writing to the bus logger, or slog.Default().
func WithWarner(w Warner) Option {
	return func(c *busConfig) {
		if w != nil {
			c.warner = w
		}
	}
}

// WithWarningDelay sets how long after the first queued event the
// not-started warning fires.
// Default: NotStartedWarningDelay (5s)
func WithWarningDelay(d time.Duration) Option {
	return func(c *busConfig) {
		if d > 0 {
			c.warningDelay = d
		}
	}
}

// WithoutWarning disables the not-started warning.
func WithoutWarning() Option {
	return func(c *busConfig) {
		c.warnings = false
	}
}

// WithClock sets the clock used for the warning timer and QueuedAt.
// Tests pass a *clock.Mock.
func WithClock(clk clock.Clock) Option {
	return func(c *busConfig) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithLogger enables structured logging of state changes and listener
// failures. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *busConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}
//
// Example:
//
//	bus := message.New(message.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *busConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets the tracing span manager.
// Default: observability.NoopSpanManager{}
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *busConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// WithDrainOrder sets the backlog drain order. Default: LIFO.
func WithDrainOrder(o DrainOrder) Option {
	return func(c *busConfig) {
		c.order = o
	}
}

// WithFailurePolicy sets how listener errors affect a dispatch.
// Default: FailFast.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(c *busConfig) {
		c.policy = p
	}
}

// OptionsFromConfig builds options from a settings section.
//
// Recognized keys:
//
//	warning_delay   duration or seconds
//	warnings        bool, false disables the not-started warning
//	drain_order     "lifo" | "fifo"
//	failure_policy  "fail_fast" | "isolate"
//	metrics         bool, true records OTel metrics
//	tracing         bool, true records OTel spans
//
// Unknown keys are ignored.
func OptionsFromConfig(cfg config.Config) ([]Option, error) {
	var opts []Option

	if cfg.Has("warning_delay") {
		d := cfg.Duration("warning_delay", 0)
		if d <= 0 {
			return nil, fmt.Errorf("%w: warning_delay %v", ErrInvalidSetting, cfg.Raw()["warning_delay"])
		}
		opts = append(opts, WithWarningDelay(d))
	}

	if !cfg.Bool("warnings", true) {
		opts = append(opts, WithoutWarning())
	}

	if cfg.Has("drain_order") {
		order, err := ParseDrainOrder(cfg.String("drain_order", ""))
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDrainOrder(order))
	}

	if cfg.Has("failure_policy") {
		policy, err := ParseFailurePolicy(cfg.String("failure_policy", ""))
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithFailurePolicy(policy))
	}

	if cfg.Bool("metrics", false) {
		opts = append(opts, WithMetrics(observability.NewMetricsRecorder()))
	}

	if cfg.Bool("tracing", false) {
		opts = append(opts, WithSpanManager(observability.NewSpanManager()))
	}

	return opts, nil
}
