/*
Package config reads bus settings from a loosely typed map.

# Overview

Settings usually arrive from a host application's YAML, JSON or TOML file,
where a "message" section sits next to everything else the host configures.
Config wraps the decoded map[string]any and returns the caller's default
whenever a key is missing or holds a value of the wrong type, so a partial
or hand-edited file never fails to load on a type mismatch alone.

# Basic Usage

	cfg, err := config.FromFile("app.yaml")
	if err != nil {
	    return err
	}

	bus := cfg.Section("message")
	delay := bus.Duration("warning_delay", 5*time.Second)
	order := bus.String("drain_order", "lifo")

# Type Coercion

Duration accepts:
  - string: parsed with time.ParseDuration ("5s", "1m30s")
  - int, int64, float64: interpreted as seconds
  - time.Duration: used directly

# File Loading

FromFile picks a decoder by extension: .yaml and .yml use gopkg.in/yaml.v3,
.json uses encoding/json, .toml uses github.com/pelletier/go-toml/v2.

Config is safe for concurrent reads. The underlying map is never modified.
*/
package config
