package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutputAndLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "warn", Writer: buf})
	require.NoError(t, err)

	log.Info().Msg("dropped")
	require.Equal(t, 0, buf.Len())

	log.Warn().Str("kind", "members").Msg("fallback")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "members", entry["kind"])
	require.Contains(t, entry, "time")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestNew_Console(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Format: "console", Writer: buf})
	require.NoError(t, err)
	log.Info().Msg("hello")
	require.Contains(t, buf.String(), "hello")
}
