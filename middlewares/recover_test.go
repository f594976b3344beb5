package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/rigma/metadata/internal"
	"github.com/rigma/metadata/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic renders a 500 problem", func(t *testing.T) {
		t.Parallel()

		rec := serve(httptest.NewRequest(http.MethodGet, "/test", nil), func(c internal.Context) error {
			panic("database exploded")
		}, internal.WithMiddleware(middlewares.Recover()))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "https://errors.taster.com/metadata/internal-error", body["type"])
		require.NotContains(t, rec.Body.String(), "exploded")
	})

	t.Run("error panics are wrapped", func(t *testing.T) {
		t.Parallel()

		var got error
		serve(httptest.NewRequest(http.MethodGet, "/test", nil), func(c internal.Context) error {
			panic(errors.New("boom"))
		}, internal.WithMiddleware(middlewares.Recover()), internal.WithErrorHandler(func(c internal.Context, err error) error {
			got = err
			return err
		}))

		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		require.NotEmpty(t, pe.Stack)
		require.EqualError(t, pe, "panic: boom")
	})

	t.Run("stack disabled", func(t *testing.T) {
		t.Parallel()

		var got error
		serve(httptest.NewRequest(http.MethodGet, "/test", nil), func(c internal.Context) error {
			panic("x")
		}, internal.WithMiddleware(middlewares.Recover(middlewares.WithRecoverDisablePrintStack())),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				return err
			}))

		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		require.Nil(t, pe.Stack)
	})

	t.Run("no panic passes through", func(t *testing.T) {
		t.Parallel()

		rec := serve(httptest.NewRequest(http.MethodGet, "/test", nil), ok, internal.WithMiddleware(middlewares.Recover()))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "ok", rec.Body.String())
	})
}
