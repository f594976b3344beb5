package internal

import (
	"bufio"
	"maps"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter wraps http.ResponseWriter to provide response interception.
// It tracks write status and size.
// Writes are serialised, so a handler still running after Takeover cannot
// interleave with the response written by the new owner.
type ResponseWriter struct {
	http.ResponseWriter
	staged  http.Header
	status  int
	size    int64
	written bool
	taken   bool
	mu      sync.Mutex
}

// NewResponseWriter creates a new ResponseWriter.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

// Header returns the response header map.
// Between StageHeader and the first write it is a private copy, which is
// moved onto the underlying writer when the response starts. After Takeover
// every call returns a fresh throwaway map, so a handler outliving its
// deadline never touches the headers of the response that replaced it.
func (w *ResponseWriter) Header() http.Header {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.taken {
		return make(http.Header)
	}
	if w.staged != nil {
		return w.staged
	}
	return w.ResponseWriter.Header()
}

// StageHeader switches Header to a private copy of the current headers.
// It has no effect once the response has started or was taken over.
func (w *ResponseWriter) StageHeader() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.written || w.taken || w.staged != nil {
		return
	}
	w.staged = w.ResponseWriter.Header().Clone()
	if w.staged == nil {
		w.staged = make(http.Header)
	}
}

// writeHeaderLocked marks the response as started. Caller holds mu.
func (w *ResponseWriter) writeHeaderLocked(code int) {
	if w.staged != nil {
		h := w.ResponseWriter.Header()
		clear(h)
		maps.Copy(h, w.staged)
		w.staged = nil
	}
	w.written = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// WriteHeader sends an HTTP response header with the provided status code.
// Only the first call reaches the underlying writer.
func (w *ResponseWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.written || w.taken {
		return
	}
	w.writeHeaderLocked(code)
}

// Write writes the data to the connection as part of an HTTP reply.
// After Takeover it returns http.ErrHandlerTimeout.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.taken {
		return 0, http.ErrHandlerTimeout
	}
	if !w.written {
		w.writeHeaderLocked(w.status)
	}

	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Takeover detaches the underlying writer from w. Later writes through w are
// dropped. The returned writer records status and size back into w.
// It fails if the response has already started.
func (w *ResponseWriter) Takeover() (http.ResponseWriter, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.written || w.taken {
		return nil, false
	}
	w.taken = true
	return &takenWriter{owner: w}, true
}

// Status returns the HTTP status code of the response.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of bytes written to the response body.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written returns true if the response has been written or taken over.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written || w.taken
}

// Flush implements the http.Flusher interface. It starts the response if
// needed and does nothing after Takeover.
func (w *ResponseWriter) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.taken {
		return
	}
	if !w.written {
		w.writeHeaderLocked(w.status)
	}
	flusher.Flush()
}

// Hijack implements the http.Hijacker interface.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap returns the underlying ResponseWriter.
// This allows middleware to access the original writer if needed.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// takenWriter writes straight to the underlying writer after Takeover.
type takenWriter struct {
	owner       *ResponseWriter
	wroteHeader bool
}

func (t *takenWriter) Header() http.Header {
	return t.owner.ResponseWriter.Header()
}

func (t *takenWriter) WriteHeader(code int) {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()

	if t.wroteHeader {
		return
	}
	t.wroteHeader = true
	t.owner.status = code
	t.owner.ResponseWriter.WriteHeader(code)
}

func (t *takenWriter) Write(b []byte) (int, error) {
	if !t.wroteHeader {
		t.WriteHeader(http.StatusOK)
	}

	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()

	n, err := t.owner.ResponseWriter.Write(b)
	t.owner.size += int64(n)
	return n, err
}
