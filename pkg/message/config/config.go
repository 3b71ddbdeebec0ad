package config

import (
	"time"
)

// Config is a read-only view of one decoded settings table, typically the
// "message" section of a host application's file. The bus reads
// warning_delay, warnings, drain_order, failure_policy, metrics and tracing
// from it; other keys are carried along untouched.
type Config struct {
	data map[string]any
}

// New wraps data. A nil map behaves like an empty section.
func New(data map[string]any) Config {
	if data == nil {
		data = map[string]any{}
	}
	return Config{data: data}
}

// lookup returns the value at key when it holds a T.
func lookup[T any](c Config, key string) (T, bool) {
	v, ok := c.data[key].(T)
	return v, ok
}

// String reads a string setting such as drain_order or failure_policy.
func (c Config) String(key, defaultVal string) string {
	if s, ok := lookup[string](c, key); ok {
		return s
	}
	return defaultVal
}

// Duration reads a delay such as warning_delay.
//
// Strings go through time.ParseDuration ("250ms", "5s"). Numbers count
// seconds, since YAML decodes 5 as int, JSON as float64 and TOML as int64.
// Anything else, including an unparseable string, yields defaultVal.
func (c Config) Duration(key string, defaultVal time.Duration) time.Duration {
	switch v := c.data[key].(type) {
	case time.Duration:
		return v
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return defaultVal
		}
		return d
	case int:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	default:
		return defaultVal
	}
}

// Bool reads a switch such as warnings, metrics or tracing.
func (c Config) Bool(key string, defaultVal bool) bool {
	if b, ok := lookup[bool](c, key); ok {
		return b
	}
	return defaultVal
}

// Section narrows to the table stored under key. All three decoders produce
// map[string]any for nested tables; any other value gives an empty section.
func (c Config) Section(key string) Config {
	m, _ := lookup[map[string]any](c, key)
	return New(m)
}

// Has reports whether key is present, whatever its type. OptionsFromConfig
// uses it to tell an omitted setting from an invalid one.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Raw exposes the wrapped map for error messages and pass-through.
// Callers must not modify it.
func (c Config) Raw() map[string]any {
	return c.data
}
