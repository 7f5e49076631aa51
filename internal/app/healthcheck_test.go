package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/chathostgo/internal/extension"
	"github.com/vk/chathostgo/internal/profile"
)

func TestHandleHealthz(t *testing.T) {
	prof, err := profile.Open(t.TempDir())
	require.NoError(t, err)

	a := &App{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		prof:       prof,
		extensions: extension.NewRegistry(),
	}

	rec := httptest.NewRecorder()
	a.handleHealthz(rec, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload struct {
		Status     string `json:"status"`
		Profile    string `json:"profile"`
		Extensions int    `json:"extensions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload.Status)
	assert.Equal(t, prof.Name(), payload.Profile)
	assert.Zero(t, payload.Extensions)
}

func TestNewLogger(t *testing.T) {
	t.Run("accepts every documented level and format", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", ""} {
			for _, format := range []string{"text", "json", ""} {
				_, err := newLogger(level, format, io.Discard)
				assert.NoError(t, err, "level=%q format=%q", level, format)
			}
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := newLogger("verbose", "text", io.Discard)
		assert.ErrorContains(t, err, "unknown log level")

		_, err = newLogger("info", "xml", io.Discard)
		assert.ErrorContains(t, err, "unknown log format")
	})
}
