package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rigma/metadata/internal/handlers"
	"github.com/rigma/metadata/internal/models"
)

func requireDB(t *testing.T) *handlers.State {
	t.Helper()
	if setupErr != nil {
		t.Skipf("postgres unavailable: %v", setupErr)
	}
	return handlers.NewState(testDB.State)
}

func TestLookups(t *testing.T) {
	t.Parallel()
	app := newApp(requireDB(t))
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	domain, err := models.NewDomain("acme-" + suffix)
	require.NoError(t, err)
	block, err := models.NewBlock("web-api-"+suffix, models.DomainParent(domain.ID))
	require.NoError(t, err)
	nested, err := models.NewBlock("handlers-"+suffix, models.BlockParent(block.ID))
	require.NoError(t, err)

	require.NoError(t, testDB.Seed(ctx, []models.Domain{domain}, []models.Block{block, nested}))

	t.Run("unknown domain", func(t *testing.T) {
		t.Parallel()

		rec := get(app, "/domains/nobody-"+suffix)
		require.Equal(t, http.StatusNotFound, rec.Code)

		body := decode(t, rec)
		require.True(t, strings.HasSuffix(body["type"].(string), "/not-found"))
		require.Contains(t, body["detail"], "nobody-"+suffix)
		require.EqualValues(t, http.StatusNotFound, body["status"])
	})

	t.Run("known domain", func(t *testing.T) {
		t.Parallel()

		rec := get(app, "/domains/ACME-"+suffix)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		body := decode(t, rec)
		require.Equal(t, domain.ID.String(), body["id"])
		require.Equal(t, domain.Name, body["name"])
		require.Contains(t, body, "created_at")
		require.Contains(t, body, "updated_at")
	})

	t.Run("block under domain", func(t *testing.T) {
		t.Parallel()

		rec := get(app, "/domains/"+domain.Name+"/"+block.Name)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		require.Equal(t, block.ID.String(), body["id"])
		require.Equal(t, map[string]any{
			"type":        "domain",
			"domain_uuid": domain.ID.String(),
		}, body["parent"])
	})

	t.Run("domain segment does not filter", func(t *testing.T) {
		t.Parallel()

		rec := get(app, "/domains/elsewhere/"+nested.Name)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, map[string]any{
			"type":       "block",
			"block_uuid": block.ID.String(),
		}, decode(t, rec)["parent"])
	})

	t.Run("unknown block", func(t *testing.T) {
		t.Parallel()

		rec := get(app, "/domains/"+domain.Name+"/missing-"+suffix)
		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decode(t, rec)
		require.Equal(t, "https://errors.taster.com/metadata/blocks/not-found", body["type"])
		require.Equal(t, "Block 'missing-"+suffix+"' is not found.", body["detail"])
	})

	t.Run("by id", func(t *testing.T) {
		t.Parallel()

		rec := get(app, "/by-id/domains/"+domain.ID.String())
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, domain.Name, decode(t, rec)["name"])

		rec = get(app, "/by-id/blocks/"+nested.ID.String())
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, nested.Name, decode(t, rec)["name"])

		rec = get(app, "/by-id/blocks/"+uuid.NewString())
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("head", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/domains/"+domain.Name, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
