package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		events = append(events, ev)
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestLoggerWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	log, err := NewLogger(dir, LevelInfo)
	require.NoError(t, err)

	require.NoError(t, log.Info(CategoryInput, "queue_created", "", map[string]any{"capacity": 128}))
	require.NoError(t, log.Error(CategoryAPI, "read_failed", "bad argument", nil))
	require.NoError(t, log.Close())

	events := readEvents(t, filepath.Join(dir, "conhost.jsonl"))
	require.Len(t, events, 2)
	assert.Equal(t, CategoryInput, events[0].Category)
	assert.Equal(t, "queue_created", events[0].EventType)
	assert.Equal(t, float64(128), events[0].Details["capacity"])
	assert.False(t, events[0].Timestamp.IsZero())

	errorEvents := readEvents(t, filepath.Join(dir, "errors.jsonl"))
	require.Len(t, errorEvents, 1)
	assert.Equal(t, "read_failed", errorEvents[0].EventType)
}

func TestLoggerLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	log, err := NewLogger(dir, LevelWarn)
	require.NoError(t, err)

	require.NoError(t, log.Debug(CategoryInput, "noise", "", nil))
	require.NoError(t, log.Info(CategoryInput, "also_noise", "", nil))
	require.NoError(t, log.Warn(CategoryLifecycle, "kept", "", nil))
	require.NoError(t, log.Close())

	events := readEvents(t, filepath.Join(dir, "conhost.jsonl"))
	require.Len(t, events, 1)
	assert.Equal(t, "kept", events[0].EventType)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
}
