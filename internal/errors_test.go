package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rigma/metadata/internal"
	"github.com/rigma/metadata/pkg/problem"
)

func TestHTTPErrorUnwrap(t *testing.T) {
	t.Parallel()

	t.Run("wrapped HTTPError preserves fields", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("cause")
		err := fmt.Errorf("middleware: %w", internal.ErrNotFound("gone",
			internal.WithTitle("Gone."),
			internal.WithError(cause),
		))

		var got *internal.HTTPError
		require.ErrorAs(t, err, &got)
		require.Equal(t, http.StatusNotFound, got.Code)
		require.Equal(t, "gone", got.Message)
		require.Equal(t, "Gone.", got.Title())
		require.ErrorIs(t, err, cause)
	})

	t.Run("wrapped HTTPError is still a problem", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("handler failed: %w", internal.NewHTTPError(http.StatusConflict, "taken"))
		var p problem.Problem
		require.ErrorAs(t, err, &p)
		require.Equal(t, http.StatusConflict, problem.PartsOf(p).Status)
	})
}

func TestHTTPErrorProblem(t *testing.T) {
	t.Parallel()

	t.Run("about:blank defaults", func(t *testing.T) {
		t.Parallel()

		parts := problem.PartsOf(internal.ErrNotFound("No route matches /x."))
		require.Equal(t, problem.BlankType, parts.Type)
		require.Equal(t, "Not Found", parts.Title)
		require.Equal(t, "No route matches /x.", parts.Detail)
		require.Equal(t, http.StatusNotFound, parts.Status)
		require.Empty(t, parts.Instance)
	})

	t.Run("typed problem", func(t *testing.T) {
		t.Parallel()

		err := internal.NewHTTPError(http.StatusBadRequest, "'abc' is not a valid identifier.")
		for _, opt := range []internal.HTTPErrorOption{
			internal.WithType(problem.TypeURI("request", "invalid-identifier")),
			internal.WithTitle("Invalid Identifier."),
			internal.WithInstance("/by-id/domains/abc"),
		} {
			opt(err)
		}
		parts := problem.PartsOf(err)
		require.Equal(t, "https://errors.taster.com/metadata/request/invalid-identifier", parts.Type)
		require.Equal(t, "Invalid Identifier.", parts.Title)
		require.Equal(t, "/by-id/domains/abc", parts.Instance)
		require.Equal(t, http.StatusBadRequest, err.StatusCode())
		require.Equal(t, "Bad Request", err.StatusText())
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, http.StatusMethodNotAllowed, internal.ErrMethodNotAllowed("").Code)
	})
}
