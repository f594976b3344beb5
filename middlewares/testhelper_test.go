package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/rigma/metadata/internal"
)

// routeHandler registers one handler on GET /test and GET /test/{id}.
type routeHandler struct {
	fn internal.HandlerFunc
}

func (h routeHandler) Routes(r internal.Router) {
	r.GET("/test", h.fn)
	r.GET("/test/{id}", h.fn)
}

// serve runs req through an App built from the given middleware and handler.
func serve(req *http.Request, fn internal.HandlerFunc, opts ...internal.Option) *httptest.ResponseRecorder {
	opts = append(opts, internal.WithHandlers(routeHandler{fn: fn}))
	app := internal.New(opts...)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func ok(c internal.Context) error {
	return c.String(http.StatusOK, "ok")
}
