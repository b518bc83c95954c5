package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tallyup/tallyup/internal/ledger"
)

// brokenWriter fails every write, simulating a client that went away
// mid-response.
type brokenWriter struct {
	header http.Header
}

func (w *brokenWriter) Header() http.Header {
	if w.header == nil {
		w.header = make(http.Header)
	}
	return w.header
}

func (w *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func (w *brokenWriter) WriteHeader(int) {}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := New(ledger.New(nil, nil), logger)

	s.writeJSON(&brokenWriter{}, http.StatusOK, map[string]string{"ok": "true"})

	assert.Contains(t, buf.String(), "failed to encode response")
	assert.Contains(t, buf.String(), "connection reset")
}
