package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"provider": "zhipu", "card_type": "birthday"})
	log.Info("requesting card message")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "requesting card message", entry["message"])
	require.Equal(t, "zhipu", entry["provider"])
	require.Equal(t, "birthday", entry["card_type"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDefaultsToWarn(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Writer: buf})
	require.NoError(t, err)

	log.Info("hidden")
	log.Debug("hidden")
	require.Equal(t, "", strings.TrimSpace(buf.String()))

	log.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestLoggerVerboseEnablesDebug(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "error", Verbose: true, Writer: buf})
	require.NoError(t, err)

	log.With("request_id", "abc").Debug("sent")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "debug", entry["level"])
	require.Equal(t, "abc", entry["request_id"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud", Writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"step": "describe"})
	log.Error(errors.New("boom"), "failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "failed", entry["message"])
	require.Equal(t, "describe", entry["step"])
	require.Equal(t, "boom", entry["error"])
}

func TestNilAndNopLoggersAreSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	require.Nil(t, log.WithFields(map[string]any{"a": 1}))
	log.Info("ignored")
	log.Error(errors.New("ignored"), "ignored")

	Nop().With("a", 1).Warn("ignored")
	require.False(t, IsTerminal(&bytes.Buffer{}))
}
