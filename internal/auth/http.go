package auth

import (
	"errors"
	"net/http"

	"personDirectory/internal/httputil"
)

// NewHTTPAuthMiddleware returns a middleware that extracts and validates a
// Bearer JWT from the Authorization header and injects the Principal into
// the request context. Requests without a valid token are rejected with 401.
func NewHTTPAuthMiddleware(secret string) httputil.Middleware {
	return func(next httputil.HandlerFuncErr) httputil.HandlerFuncErr {
		return func(w http.ResponseWriter, r *http.Request) error {
			p, err := ParseBearer(r.Header.Get("Authorization"), secret)
			if err != nil {
				return httputil.NewJSONError(http.StatusUnauthorized, err, "authentication required")
			}
			return next(w, r.WithContext(WithPrincipal(r.Context(), p)))
		}
	}
}

// RequirePrincipal ensures a principal is present in the request context.
func RequirePrincipal(r *http.Request) (*Principal, error) {
	p, ok := FromContext(r.Context())
	if !ok {
		return nil, httputil.NewJSONError(http.StatusUnauthorized, errors.New("missing principal"))
	}
	return p, nil
}

// RequireAdmin ensures the caller is an admin principal. Table lifecycle
// endpoints are restricted to admins.
func RequireAdmin(r *http.Request) (*Principal, error) {
	p, err := RequirePrincipal(r)
	if err != nil {
		return nil, err
	}
	if p.Kind != "admin" {
		return nil, httputil.NewJSONError(http.StatusForbidden, errors.New("principal kind is "+p.Kind), "only admin can perform this action")
	}
	return p, nil
}
