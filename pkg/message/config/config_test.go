package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/randalmurphal/message/pkg/message/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"nil map", nil},
		{"empty map", map[string]any{}},
		{"with values", map[string]any{"drain_order": "fifo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.NotNil(t, cfg.Raw())
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal string
		want       string
	}{
		{"key exists", map[string]any{"drain_order": "fifo"}, "drain_order", "lifo", "fifo"},
		{"key missing", map[string]any{"other": "value"}, "drain_order", "lifo", "lifo"},
		{"empty string", map[string]any{"drain_order": ""}, "drain_order", "lifo", ""},
		{"wrong type int", map[string]any{"drain_order": 1}, "drain_order", "lifo", "lifo"},
		{"nil map", nil, "drain_order", "lifo", "lifo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.String(tt.key, tt.defaultVal))
		})
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want time.Duration
	}{
		{"string duration", map[string]any{"warning_delay": "2s"}, 2 * time.Second},
		{"string compound", map[string]any{"warning_delay": "1m30s"}, 90 * time.Second},
		{"int seconds", map[string]any{"warning_delay": 10}, 10 * time.Second},
		{"int64 seconds", map[string]any{"warning_delay": int64(3)}, 3 * time.Second},
		{"float64 seconds", map[string]any{"warning_delay": 0.5}, 500 * time.Millisecond},
		{"time.Duration", map[string]any{"warning_delay": time.Minute}, time.Minute},
		{"key missing", map[string]any{}, 5 * time.Second},
		{"invalid string", map[string]any{"warning_delay": "soon"}, 5 * time.Second},
		{"wrong type bool", map[string]any{"warning_delay": true}, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.Duration("warning_delay", 5*time.Second))
		})
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want bool
	}{
		{"true", map[string]any{"warnings": true}, true},
		{"false", map[string]any{"warnings": false}, false},
		{"missing", map[string]any{}, true},
		{"string is not a bool", map[string]any{"warnings": "false"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.Bool("warnings", true))
		})
	}
}

func TestSection(t *testing.T) {
	cfg := config.New(map[string]any{
		"message": map[string]any{"drain_order": "fifo"},
		"scalar":  "value",
	})

	assert.Equal(t, "fifo", cfg.Section("message").String("drain_order", "lifo"))
	assert.False(t, cfg.Section("missing").Has("drain_order"))
	assert.False(t, cfg.Section("scalar").Has("drain_order"))
}

func TestHas(t *testing.T) {
	cfg := config.New(map[string]any{"present": nil})
	assert.True(t, cfg.Has("present"))
	assert.False(t, cfg.Has("absent"))
}

func TestFromYAML(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`message:
  warning_delay: 2s
  warnings: false
  drain_order: fifo`))
	require.NoError(t, err)

	section := cfg.Section("message")
	assert.Equal(t, 2*time.Second, section.Duration("warning_delay", 0))
	assert.False(t, section.Bool("warnings", true))
	assert.Equal(t, "fifo", section.String("drain_order", ""))

	_, err = config.FromYAML([]byte(`invalid: yaml: content:`))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{"warning_delay": 7, "failure_policy": "isolate"}`))
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.Duration("warning_delay", 0))
	assert.Equal(t, "isolate", cfg.String("failure_policy", ""))

	_, err = config.FromJSON([]byte(`{not json`))
	assert.Error(t, err)
}

func TestFromTOML(t *testing.T) {
	cfg, err := config.FromTOML([]byte(`
[message]
warning_delay = 4
drain_order = "fifo"
metrics = true
`))
	require.NoError(t, err)

	section := cfg.Section("message")
	assert.Equal(t, 4*time.Second, section.Duration("warning_delay", 0))
	assert.Equal(t, "fifo", section.String("drain_order", ""))
	assert.True(t, section.Bool("metrics", false))

	_, err = config.FromTOML([]byte(`= broken`))
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	tmpDir := t.TempDir()

	yamlPath := filepath.Join(tmpDir, "app.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`drain_order: fifo`), 0o644))

	ymlPath := filepath.Join(tmpDir, "app.YML")
	require.NoError(t, os.WriteFile(ymlPath, []byte(`drain_order: lifo`), 0o644))

	jsonPath := filepath.Join(tmpDir, "app.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"drain_order": "fifo"}`), 0o644))

	tomlPath := filepath.Join(tmpDir, "app.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`drain_order = "lifo"`), 0o644))

	txtPath := filepath.Join(tmpDir, "app.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("drain_order"), 0o644))

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr string
	}{
		{"yaml file", yamlPath, "fifo", ""},
		{"yml file upper case", ymlPath, "lifo", ""},
		{"json file", jsonPath, "fifo", ""},
		{"toml file", tomlPath, "lifo", ""},
		{"unsupported extension", txtPath, "", "unsupported config file extension"},
		{"file not found", filepath.Join(tmpDir, "missing.yaml"), "", "read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.FromFile(tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.String("drain_order", ""))
		})
	}
}

func TestZeroValueConfig(t *testing.T) {
	var cfg config.Config

	assert.Equal(t, "lifo", cfg.String("drain_order", "lifo"))
	assert.Equal(t, 5*time.Second, cfg.Duration("warning_delay", 5*time.Second))
	assert.True(t, cfg.Bool("warnings", true))
	assert.False(t, cfg.Has("warnings"))
	assert.False(t, cfg.Section("message").Has("drain_order"))
}
