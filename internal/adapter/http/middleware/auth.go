package middleware

import (
	"net/http"
	"strings"

	"github.com/kaditech/saccoledger/internal/domain"
	"github.com/kaditech/saccoledger/internal/infrastructure/auth"
)

// Auth verifies the Bearer token and places the resulting actor on the
// request context. Requests without a valid token never reach the handlers.
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := domain.ActorToContext(r.Context(), claims.Actor())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantHeader is read by StaticAuth when authentication is disabled.
const TenantHeader = "X-Tenant-ID"

// StaticAuth injects a system actor for every request. Used in development
// deployments where authentication is switched off; the tenant comes from the
// X-Tenant-ID header so multi-tenant data stays separated even without
// tokens.
func StaticAuth(defaultTenant string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant := r.Header.Get(TenantHeader)
			if tenant == "" {
				tenant = defaultTenant
			}

			ctx := domain.ActorToContext(r.Context(), domain.Actor{
				UserID:   "system",
				TenantID: tenant,
				Role:     domain.RoleSystem,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff rejects member tokens. Applied to operator-only routes such
// as the ledger consistency check.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := domain.ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if !actor.IsStaff() {
			http.Error(w, "insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
