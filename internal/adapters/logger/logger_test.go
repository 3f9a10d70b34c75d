package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-search-service/internal/core/port"
)

type fakeFluent struct {
	tags     []string
	messages []port.Fields
	closed   bool
}

func (f *fakeFluent) Post(tag string, message interface{}) error {
	f.tags = append(f.tags, tag)
	f.messages = append(f.messages, message.(port.Fields))
	return nil
}

func (f *fakeFluent) Close() error {
	f.closed = true
	return nil
}

func TestSlogAdapter_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug, IsJSON: true})

	logger.WithFields(port.Fields{"component": "test"}).Error("boom", errors.New("bad"), port.Fields{"page": 2})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["msg"])
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "bad", entry["error"])
	assert.EqualValues(t, 2, entry["page"])
}

func TestSlogAdapter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	logger.Warn("shown", nil)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSlogAdapter_Color(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, UseColor: true})

	logger.Info("colored", port.Fields{"k": "v"})

	assert.Contains(t, buf.String(), "colored")
}

func TestFluentLoggerAdapter_MergesFieldsAndFiltersLevel(t *testing.T) {
	client := &fakeFluent{}
	adapter, err := NewFluentLoggerAdapter(client, slog.LevelInfo)
	require.NoError(t, err)

	logger := adapter.WithFields(port.Fields{"service_name": "search"})
	logger.Debug("skipped", nil)
	logger.Warn("slow page", port.Fields{"page": 3})
	logger.Error("failed", errors.New("timeout"), nil)

	require.Equal(t, []string{"warn", "error"}, client.tags)
	assert.Equal(t, "search", client.messages[0]["service_name"])
	assert.Equal(t, 3, client.messages[0]["page"])
	assert.Equal(t, "slow page", client.messages[0]["message"])
	assert.Equal(t, "timeout", client.messages[1]["error"])

	require.NoError(t, adapter.Close())
	assert.True(t, client.closed)
}

func TestFluentLoggerAdapter_NilClient(t *testing.T) {
	_, err := NewFluentLoggerAdapter(nil, nil)
	assert.Error(t, err)
}

func TestMultiLoggerAdapter_FanOut(t *testing.T) {
	var first, second bytes.Buffer
	multi, err := NewMultiloggerAdapter(
		NewSlogAdapter(SlogConfig{Writer: &first}),
		NewSlogAdapter(SlogConfig{Writer: &second}),
	)
	require.NoError(t, err)

	multi.WithFields(port.Fields{"run_id": "r1"}).Info("done", nil)

	for _, out := range []string{first.String(), second.String()} {
		assert.Contains(t, out, "done")
		assert.Contains(t, out, "run_id=r1")
	}

	_, err = NewMultiloggerAdapter()
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewRotatingFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "search.log")
	writer, err := NewRotatingFileWriter(RotatingFileConfig{Path: path, MaxSizeMB: 1})
	require.NoError(t, err)
	defer writer.Close()

	logger := NewSlogAdapter(SlogConfig{Writer: writer, IsJSON: true})
	logger.Info("to file", nil)

	assert.Equal(t, path, writer.Filename)

	_, err = NewRotatingFileWriter(RotatingFileConfig{})
	assert.Error(t, err)
}
