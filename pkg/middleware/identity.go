package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

// Identity headers set by the upstream API gateway after JWT validation.
// This service trusts the metadata but does not validate its authenticity.
const (
	HeaderTenantID = "X-Tenant-Id"
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

type contextKeyType string

const (
	tenantIDKey contextKeyType = "tenant_id"
	userIDKey   contextKeyType = "user_id"
	roleKey     contextKeyType = "role"
)

// Identity middleware extracts the tenant/user identity headers propagated by
// the gateway and injects them into the request context. Requests missing the
// tenant or user header are rejected with 401: the service cannot scope any
// operation without them.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := r.Header.Get(HeaderTenantID)
			userID := r.Header.Get(HeaderUserID)
			if tenantID == "" || userID == "" {
				writeIdentityError(w, "missing tenant or user identity headers")
				return
			}

			ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
			ctx = context.WithValue(ctx, userIDKey, userID)
			ctx = context.WithValue(ctx, roleKey, r.Header.Get(HeaderUserRole))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantIDFromContext extracts the tenant ID from the request context.
func TenantIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(tenantIDKey).(string); ok {
		return id
	}
	return ""
}

// UserIDFromContext extracts the user ID from the request context.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// RoleFromContext extracts the user role from the request context.
func RoleFromContext(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey).(string); ok {
		return role
	}
	return ""
}

func writeIdentityError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
