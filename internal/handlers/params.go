package handlers

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/rigma/metadata/internal"
	"github.com/rigma/metadata/pkg/id"
)

// pathParam returns a decoded path parameter. chi hands back the escaped form
// when the request path contains escapes.
func pathParam(c internal.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// idParam reads a path parameter holding a canonical UUID.
func idParam(c internal.Context, name string) (uuid.UUID, error) {
	raw := pathParam(c, name)
	v, err := id.Parse(raw)
	if err != nil {
		return uuid.Nil, invalidIdentifier(c, raw, err)
	}
	return v, nil
}
