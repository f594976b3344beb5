package models_test

import (
	"net/http"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rigma/metadata/internal/models"
	"github.com/rigma/metadata/pkg/problem"
)

func TestNewDomain(t *testing.T) {
	t.Parallel()

	t.Run("lower-cases the name", func(t *testing.T) {
		t.Parallel()

		d, err := models.NewDomain("ACME-Corp")
		require.NoError(t, err)
		require.Equal(t, "acme-corp", d.Name)
		require.Equal(t, uuid.Version(7), d.ID.Version())
		require.Equal(t, d.CreatedAt, d.UpdatedAt)
		require.Equal(t, "Domain(id="+d.ID.String()+", name=acme-corp)", d.String())
	})

	t.Run("unicode names", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "écoles", models.NormalizeDomainName("ÉCOLES"))
	})

	t.Run("whitespace is kept", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, " acme", models.NormalizeDomainName(" ACME"))
		require.Equal(t, "acme\t", models.NormalizeDomainName("Acme\t"))

		d, err := models.NewDomain("  Acme ")
		require.NoError(t, err)
		require.Equal(t, "  acme ", d.Name)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := models.NewDomain("")
		require.ErrorIs(t, err, models.ErrEmptyName)
	})
}

func TestNewBlock(t *testing.T) {
	t.Parallel()

	domainID := uuid.New()

	t.Run("keeps the name verbatim", func(t *testing.T) {
		t.Parallel()

		b, err := models.NewBlock("Web-API", models.DomainParent(domainID))
		require.NoError(t, err)
		require.Equal(t, "Web-API", b.Name)
		require.Equal(t, uuid.Version(7), b.ID.Version())
		require.Equal(t, "Block(id="+b.ID.String()+", name=Web-API)", b.String())
	})

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()

		_, err := models.NewBlock("", models.DomainParent(domainID))
		require.ErrorIs(t, err, models.ErrEmptyName)
	})

	t.Run("requires a parent", func(t *testing.T) {
		t.Parallel()

		_, err := models.NewBlock("web", models.Parent{})
		require.ErrorIs(t, err, models.ErrMissingParent)
	})
}

func TestParent(t *testing.T) {
	t.Parallel()

	domainID := uuid.MustParse("0190b0a4-6a35-7c1e-9a57-3c1a0d2b7f10")
	blockID := uuid.MustParse("0190b0a4-6a35-7c1e-9a57-3c1a0d2b7f11")

	t.Run("domain parent json", func(t *testing.T) {
		t.Parallel()

		raw, err := json.Marshal(models.DomainParent(domainID))
		require.NoError(t, err)
		require.JSONEq(t, `{"type":"domain","domain_uuid":"0190b0a4-6a35-7c1e-9a57-3c1a0d2b7f10"}`, string(raw))
	})

	t.Run("block parent json", func(t *testing.T) {
		t.Parallel()

		raw, err := json.Marshal(models.BlockParent(blockID))
		require.NoError(t, err)
		require.JSONEq(t, `{"type":"block","block_uuid":"0190b0a4-6a35-7c1e-9a57-3c1a0d2b7f11"}`, string(raw))
	})

	t.Run("block embeds the tagged parent", func(t *testing.T) {
		t.Parallel()

		b, err := models.NewBlock("web-api", models.DomainParent(domainID))
		require.NoError(t, err)

		raw, err := json.Marshal(b)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		parent, ok := body["parent"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "domain", parent["type"])
		require.Equal(t, domainID.String(), parent["domain_uuid"])
		require.NotContains(t, parent, "block_uuid")
	})

	t.Run("zero parent does not serialise", func(t *testing.T) {
		t.Parallel()

		_, err := json.Marshal(models.Parent{})
		require.Error(t, err)
	})

	t.Run("decode", func(t *testing.T) {
		t.Parallel()

		var p models.Parent
		require.NoError(t, json.Unmarshal([]byte(`{"type":"block","block_uuid":"0190b0a4-6a35-7c1e-9a57-3c1a0d2b7f11"}`), &p))
		id, ok := p.BlockID()
		require.True(t, ok)
		require.Equal(t, blockID, id)
		_, ok = p.DomainID()
		require.False(t, ok)
	})

	t.Run("decode rejects both and neither", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{
			`{"type":"domain","domain_uuid":"0190b0a4-6a35-7c1e-9a57-3c1a0d2b7f10","block_uuid":"0190b0a4-6a35-7c1e-9a57-3c1a0d2b7f11"}`,
			`{"type":"domain"}`,
			`{"type":"block","domain_uuid":"0190b0a4-6a35-7c1e-9a57-3c1a0d2b7f10"}`,
			`{"type":"other","block_uuid":"0190b0a4-6a35-7c1e-9a57-3c1a0d2b7f11"}`,
		} {
			var p models.Parent
			require.ErrorIs(t, json.Unmarshal([]byte(raw), &p), models.ErrInvalidParentJSON, raw)
		}
	})
}

func TestNewParent(t *testing.T) {
	t.Parallel()

	self := uuid.New()
	domainID := uuid.New()
	blockID := uuid.New()

	t.Run("from domain column", func(t *testing.T) {
		t.Parallel()

		p, err := models.NewParent(self, &domainID, nil)
		require.NoError(t, err)
		require.Equal(t, models.ParentDomain, p.Kind())
		require.Equal(t, domainID, p.ID())
	})

	t.Run("from block column", func(t *testing.T) {
		t.Parallel()

		p, err := models.NewParent(self, nil, &blockID)
		require.NoError(t, err)
		require.Equal(t, models.ParentBlock, p.Kind())
		require.Equal(t, "block:"+blockID.String(), p.String())
	})

	t.Run("both columns set", func(t *testing.T) {
		t.Parallel()

		_, err := models.NewParent(self, &domainID, &blockID)

		var invalid *models.InvalidParentError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, self, invalid.BlockID)

		parts := problem.PartsOf(invalid)
		require.Equal(t, "https://errors.taster.com/metadata/blocks/invalid-parent", parts.Type)
		require.Equal(t, http.StatusInternalServerError, parts.Status)
		require.Contains(t, parts.Detail, self.String())
	})

	t.Run("no column set", func(t *testing.T) {
		t.Parallel()

		_, err := models.NewParent(self, nil, nil)
		require.ErrorContains(t, err, "domain_id=null block_id=null")
	})
}
