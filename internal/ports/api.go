package ports

import (
	"context"
	"net/url"
)

// APIClient performs requests against the notes backend. Implemented by
// internal/client.Client; non-2xx responses are returned as *errors.AppError.
type APIClient interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
	PostJSON(ctx context.Context, path string, body, out any) error
	PatchJSON(ctx context.Context, path string, body, out any) error
	PostForm(ctx context.Context, path string, form url.Values, out any) error
}
