package logging

import (
	"bytes"
	"log"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitWithWriterFiltersByLevel(t *testing.T) {
	prev, prevOut := slog.Default(), log.Writer()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(prevOut)
	})

	var buf bytes.Buffer
	logger := InitWithWriter(&buf, slog.LevelWarn)

	logger.Info("hidden")
	slog.Warn("reconcile failed", "task_id", "t1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "reconcile failed")
	assert.Contains(t, out, "task_id=t1")
}
