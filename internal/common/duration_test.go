package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "milliseconds", input: "250ms", expected: 250 * time.Millisecond},
		{name: "seconds", input: "1s", expected: time.Second},
		{name: "compound", input: "1h30m", expected: 90 * time.Minute},
		{name: "zero", input: "0s", expected: 0},
		{name: "missing unit", input: "1000", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, d.Duration)
		})
	}
}

func TestDuration_ConfigFormats(t *testing.T) {
	type pollConfig struct {
		Interval Duration `json:"interval" yaml:"interval" toml:"interval"`
	}

	t.Run("json", func(t *testing.T) {
		var cfg pollConfig
		require.NoError(t, json.Unmarshal([]byte(`{"interval":"2s"}`), &cfg))
		require.Equal(t, 2*time.Second, cfg.Interval.Duration)
	})

	t.Run("yaml", func(t *testing.T) {
		var cfg pollConfig
		require.NoError(t, yaml.Unmarshal([]byte("interval: 500ms\n"), &cfg))
		require.Equal(t, 500*time.Millisecond, cfg.Interval.Duration)
	})

	t.Run("toml", func(t *testing.T) {
		var cfg pollConfig
		_, err := toml.Decode(`interval = "3m"`, &cfg)
		require.NoError(t, err)
		require.Equal(t, 3*time.Minute, cfg.Interval.Duration)
	})

	t.Run("json roundtrip", func(t *testing.T) {
		in := pollConfig{Interval: NewDuration(90 * time.Second)}
		data, err := json.Marshal(in)
		require.NoError(t, err)
		require.JSONEq(t, `{"interval":"1m30s"}`, string(data))

		var out pollConfig
		require.NoError(t, json.Unmarshal(data, &out))
		require.Equal(t, in.Interval, out.Interval)
	})
}

func TestDuration_JSONSchema(t *testing.T) {
	schema := Duration{}.JSONSchema()
	require.Equal(t, "string", schema.Type)
	require.Contains(t, schema.Examples, "300ms")
}
