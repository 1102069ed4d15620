package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/smetchik/backend/pkg/slogx"
)

// BearerResolver maps a bearer credential to the acting user id. The token
// may be empty when the request carried no Authorization header.
type BearerResolver interface {
	ResolveBearer(ctx context.Context, token string) (int64, error)
}

// BearerToken extracts the credential from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if len(authz) < len("Bearer ") || !strings.EqualFold(authz[:len("Bearer ")], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[len("Bearer "):])
}

// AuthnMiddleware resolves the acting user and stores it in the context.
// When required is false an unresolved caller is passed through without a
// user id instead of being rejected.
func AuthnMiddleware(res BearerResolver, required bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, err := res.ResolveBearer(ctx, BearerToken(r))
			if err != nil {
				slogx.FromContext(ctx).Debug("bearer not resolved", "err", err)
				if required {
					w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
					WriteError(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(ctx, userID)))
		})
	}
}
