package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubLoggingConfig struct {
	defaultLevel string
	development  bool
	levels       map[string]string
}

func (c stubLoggingConfig) GetComponentLevel(component string) string {
	if level, ok := c.levels[component]; ok {
		return level
	}
	return c.defaultLevel
}

func (c stubLoggingConfig) GetDefaultLevel() string { return c.defaultLevel }
func (c stubLoggingConfig) IsDevelopment() bool     { return c.development }

// lowestEnabled returns the lowest level the logger writes.
func lowestEnabled(t *testing.T, l *Logger) zapcore.Level {
	t.Helper()

	for _, lvl := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel} {
		if l.Desugar().Core().Enabled(lvl) {
			return lvl
		}
	}
	t.Fatal("logger writes nothing")
	return zapcore.InvalidLevel
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level       string
		development bool
		want        zapcore.Level
		wantErr     bool
	}{
		{level: "debug", want: zapcore.DebugLevel},
		{level: "info", want: zapcore.InfoLevel},
		{level: "warn", development: true, want: zapcore.WarnLevel},
		{level: "error", development: true, want: zapcore.ErrorLevel},
		{level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			l, err := NewLogger(tt.level, tt.development)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, l)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, lowestEnabled(t, l))
		})
	}
}

func TestNewComponentLoggerFromConfig(t *testing.T) {
	t.Parallel()

	cfg := stubLoggingConfig{
		defaultLevel: "info",
		levels: map[string]string{
			"chain-client": "warn",
			"ingest":       " DEBUG ",
		},
	}

	tests := []struct {
		component string
		cfg       LoggingConfig
		want      zapcore.Level
	}{
		{component: "chain-client", cfg: cfg, want: zapcore.WarnLevel},
		{component: "ingest", cfg: cfg, want: zapcore.DebugLevel},
		{component: "query", cfg: cfg, want: zapcore.InfoLevel},
		{component: "api", cfg: nil, want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.component, func(t *testing.T) {
			t.Parallel()

			l := NewComponentLoggerFromConfig(tt.component, tt.cfg)
			require.Equal(t, tt.component, l.component)
			require.Equal(t, tt.want, lowestEnabled(t, l))
		})
	}
}

func TestNewComponentLogger_InvalidLevelPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = NewComponentLoggerFromConfig("log-store", stubLoggingConfig{defaultLevel: "loud"})
	})
}

func TestLogger_WithComponent(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	root := &Logger{SugaredLogger: zap.New(core).Sugar()}

	ingest := root.WithComponent("ingest")
	require.NotSame(t, root, ingest)

	// constructors re-tag the logger they are handed
	require.Same(t, ingest, ingest.WithComponent("ingest"))
	ingest.WithComponent("ingest").Infow("indexed height", "height", 7)

	store := ingest.WithComponent("log-store")
	require.NotSame(t, ingest, store)
	store.Warn("slow fsync")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	require.Equal(t, "indexed height", entries[0].Message)
	require.Equal(t, map[string]any{"component": "ingest", "height": int64(7)}, entries[0].ContextMap())

	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, "log-store", entries[1].ContextMap()["component"])
}

func TestNewNopLogger(t *testing.T) {
	t.Parallel()

	l := NewNopLogger()
	require.False(t, l.Desugar().Core().Enabled(zapcore.ErrorLevel))

	require.NotPanics(t, func() {
		l.WithComponent("cache").Infow("discarded", "key", "value")
		require.NoError(t, l.Close())
	})
}
