package metadata_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rigma/metadata"
)

type echo struct{}

func (echo) Routes(r metadata.Router) {
	r.GET("/echo/{n}", func(c metadata.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"n":     c.Param("n"),
			"limit": c.QueryDefault("limit", "10"),
		})
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	app := metadata.New(
		metadata.WithHandlers(echo{}),
		metadata.WithHealthChecks(metadata.WithLivenessPath("/livez")),
	)

	t.Run("routes", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo/3?limit=5", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"n":"3","limit":"5"}`, rec.Body.String())
	})

	t.Run("health", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	})
}

func TestHTTPErrorProblem(t *testing.T) {
	t.Parallel()

	err := &metadata.HTTPError{Code: http.StatusNotFound, Message: "gone"}
	require.Equal(t, "gone", err.Detail())
	require.Equal(t, "Not Found", err.Title())
	require.Equal(t, http.StatusNotFound, err.Status())
}
