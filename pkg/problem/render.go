package problem

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// Render writes e as application/problem+json.
// Headers supplied by the problem are applied first; Cache-Control and
// Content-Type are then forced so each appears exactly once.
func Render(w http.ResponseWriter, e *Error) error {
	parts := e.Parts()

	body, err := json.Marshal(parts)
	if err != nil {
		return err
	}

	h := w.Header()
	for key, values := range parts.Headers {
		key = http.CanonicalHeaderKey(key)
		h.Del(key)
		for _, v := range values {
			h.Add(key, v)
		}
	}
	h.Set("Cache-Control", "no-store")
	h.Set("Content-Type", ContentType)

	w.WriteHeader(e.StatusCode())
	_, err = w.Write(body)
	return err
}

// RenderProblem is Render(w, New(p)).
func RenderProblem(w http.ResponseWriter, p Problem) error {
	return Render(w, New(p))
}
