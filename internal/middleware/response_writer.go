package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
)

// SafeResponseWriter remembers the status and body size of a response for
// LogRequest. After the request context ends nothing more is sent to the
// client.
//
//nolint:containedctx // the writer lives exactly as long as its request
type SafeResponseWriter struct {
	http.ResponseWriter
	ctx context.Context

	mu          sync.Mutex
	status      int
	wroteHeader bool
	size        int
}

func NewSafeResponseWriter(ctx context.Context, w http.ResponseWriter) *SafeResponseWriter {
	return &SafeResponseWriter{
		ResponseWriter: w,
		ctx:            ctx,
		status:         http.StatusOK,
	}
}

func (w *SafeResponseWriter) WriteHeader(status int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeHeaderLocked(status)
}

// writeHeaderLocked sends the header once. It reports whether the response
// may still be written to.
func (w *SafeResponseWriter) writeHeaderLocked(status int) bool {
	if err := w.ctx.Err(); err != nil {
		slog.Debug("Response dropped.", "reason", err)
		return false
	}

	if !w.wroteHeader {
		w.ResponseWriter.WriteHeader(status)
		w.status = status
		w.wroteHeader = true
	}
	return true
}

func (w *SafeResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.writeHeaderLocked(http.StatusOK) {
		return 0, nil
	}

	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

func (w *SafeResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *SafeResponseWriter) BytesWritten() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *SafeResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
