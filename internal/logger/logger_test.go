package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/261019-go-pkg-envsubst/internal/logger"
)

func TestParseLevel(t *testing.T) {
	level, err := logger.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = logger.ParseLevel(" warn ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = logger.ParseLevel("trace")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	for _, format := range []string{"", "console", "text", "json", "dev", "none"} {
		t.Run("format "+format, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := logger.New(&buf, logger.Options{Level: "info", Format: format, NoColor: true})
			require.NoError(t, err)
			require.NotNil(t, l)
		})
	}

	_, err := logger.New(&bytes.Buffer{}, logger.Options{Level: "info", Format: "xml"})
	require.Error(t, err)

	_, err = logger.New(&bytes.Buffer{}, logger.Options{Level: "loud"})
	require.Error(t, err)
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.New(&buf, logger.Options{Level: "warn", Format: "json"})
	require.NoError(t, err)

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown", "path", "a.yaml")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"path":"a.yaml"`)
}

func TestNew_NoneDiscards(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.New(&buf, logger.Options{Level: "debug", Format: "none"})
	require.NoError(t, err)

	l.Error("dropped")
	assert.Empty(t, buf.String())
}
