// Package correlation threads a per-request correlation identifier from
// the ingress middleware to every outbound upstream call, so upstream
// traffic can be traced back to the originating request.
package correlation

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the correlation id header used on both inbound and outbound
// requests.
const Header = "X-Correlation-ID"

type ctxKey struct{}

// With returns a context carrying the given correlation id.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation id carried by ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// ID returns the correlation id from ctx, minting a new one when the
// context has none.
func ID(ctx context.Context) string {
	if id, ok := FromContext(ctx); ok {
		return id
	}
	return uuid.NewString()
}

// Attach sets the correlation header on an outbound request, replacing any
// stale value left from a previous call on a reused client. It returns the
// id that was attached.
func Attach(ctx context.Context, req *http.Request) string {
	id := ID(ctx)
	req.Header.Del(Header)
	req.Header.Set(Header, id)
	return id
}
