package api

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/bquirin/MonzoAPIWrapper/client/internal/types"
)

// Whoami returns information about the access token in use.
func Whoami(ctx context.Context, rc *resty.Client) (types.Document, error) {
	return GetDocument(ctx, rc, "whoami", "/ping/whoami", nil)
}
