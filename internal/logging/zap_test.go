package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewZapLoggerTo(&buf, "debug")
	require.NoError(t, err)

	ctx := context.Background()
	log.Debug(ctx, "request", "method", "GET")
	log.With("component", "auth").Warn(ctx, "logout failed", "status", 500)
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.Contains(t, out, "request")
	assert.Contains(t, out, `"method": "GET"`)
	assert.Contains(t, out, "logout failed")
	assert.Contains(t, out, `"component": "auth"`)
	assert.Contains(t, out, `"status": 500`)
}

func TestZapLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewZapLoggerTo(&buf, "error")
	require.NoError(t, err)

	log.Info(context.Background(), "quiet")
	log.Error(context.Background(), "loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNew_SelectsBackend(t *testing.T) {
	tests := []struct {
		backend string
		wantErr bool
		check   func(t *testing.T, l Logger)
	}{
		{backend: "", check: func(t *testing.T, l Logger) { assert.IsType(t, &ZapLogger{}, l) }},
		{backend: "zap", check: func(t *testing.T, l Logger) { assert.IsType(t, &ZapLogger{}, l) }},
		{backend: "SLOG", check: func(t *testing.T, l Logger) { assert.IsType(t, &SlogLogger{}, l) }},
		{backend: "logrus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			l, err := New(tt.backend, "info", &bytes.Buffer{})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, l)
		})
	}
}

func TestNopLogger_DoesNotPanic(t *testing.T) {
	var l Logger = NopLogger{}
	ctx := context.TODO()
	l.Debug(ctx, "x")
	l.Info(ctx, "x")
	l.Warn(ctx, "x")
	l.With("a", 1).Error(ctx, "x")
}
