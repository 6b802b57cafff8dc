package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/LiamF-2261667/fruckr-sub001/internal/auth"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
)

type ctxKey string

const ctxIdentity ctxKey = "identity"

// WithIdentity stores the caller's identity from the auth headers in the
// request context. Requests without headers pass through anonymous; the
// authorization gate rejects them where it matters.
func WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := auth.Identity{
			UID:   strings.TrimSpace(r.Header.Get(HeaderUserID)),
			Email: strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
		}
		ctx := context.WithValue(r.Context(), ctxIdentity, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFrom(ctx context.Context) auth.Identity {
	if v := ctx.Value(ctxIdentity); v != nil {
		if id, ok := v.(auth.Identity); ok {
			return id
		}
	}
	return auth.Identity{}
}
