package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mentorhub/mentorhub/internal"
	"github.com/mentorhub/mentorhub/internal/roles"
)

// RequireRole gates a route on the role hierarchy: the caller's effective
// role must rank at least as high as required. Missing principal is a 401,
// insufficient rank a 403. Fail-closed on anything unrecognized.
func RequireRole(required roles.EffectiveRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !roles.HasRole(roles.EffectiveRole(principal.Role), required) {
				slog.Warn("access denied: insufficient role",
					"user_id", principal.UserID,
					"required_role", required,
					"effective_role", principal.Role)
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePathAccess gates a route on the per-role path-prefix table instead
// of the hierarchy, for surfaces that mirror the dashboard's navigation.
func RequirePathAccess() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !roles.IsPathAccessible(roles.EffectiveRole(principal.Role), r.URL.Path) {
				slog.Warn("access denied: path not permitted for role",
					"user_id", principal.UserID,
					"effective_role", principal.Role,
					"path", r.URL.Path)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
