package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/draperly/atelier-api/internal/domain"
)

// routeRoles is the static allow-list of roles per route prefix under the
// API base path. Admin is implied everywhere and not listed.
var routeRoles = map[string][]domain.Role{
	"/customers":       {domain.RoleManager, domain.RoleSales, domain.RoleViewer},
	"/partners":        {domain.RoleManager, domain.RoleSales, domain.RoleViewer},
	"/catalog":         {domain.RoleManager, domain.RoleSales, domain.RoleViewer},
	"/projects":        {domain.RoleManager, domain.RoleSales, domain.RoleInstaller, domain.RoleViewer},
	"/bills":           {domain.RoleManager, domain.RoleSales, domain.RoleInstaller, domain.RoleViewer},
	"/spec-sheets":     {domain.RoleManager, domain.RoleSales, domain.RoleViewer},
	"/quotations":      {domain.RoleManager, domain.RoleSales, domain.RoleAccounting, domain.RoleViewer},
	"/inventory":       {domain.RoleManager, domain.RoleAccounting, domain.RoleViewer},
	"/purchase-orders": {domain.RoleManager, domain.RoleAccounting},
	"/accounting":      {domain.RoleManager, domain.RoleAccounting},
	"/marketing":       {domain.RoleManager, domain.RoleMarketing, domain.RoleViewer},
	"/profiles":        {},
}

// AllowedRoles returns the roles permitted on a route prefix, admin excluded.
// The second return is false for prefixes with no entry, which are open to
// every authenticated user.
func AllowedRoles(prefix string) ([]domain.Role, bool) {
	roles, ok := routeRoles[prefix]
	return roles, ok
}

// RequireAccess enforces the role allow-list for everything below basePath.
// Requests from roles outside a prefix's list receive a 403 problem body.
func RequireAccess(basePath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userCtx, ok := FromContext(r.Context())
			if !ok {
				forbid(w, "no user context")
				return
			}
			if userCtx.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			rest := strings.TrimPrefix(r.URL.Path, basePath)
			if !strings.HasPrefix(rest, "/") {
				rest = "/" + rest
			}
			prefix := rest
			if idx := strings.Index(rest[1:], "/"); idx >= 0 {
				prefix = rest[:idx+1]
			}

			allowed, gated := routeRoles[prefix]
			if !gated {
				next.ServeHTTP(w, r)
				return
			}
			if userCtx.HasAnyRole(allowed...) {
				next.ServeHTTP(w, r)
				return
			}
			forbid(w, "role "+string(userCtx.Role)+" has no access to "+prefix)
		})
	}
}

func forbid(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(&domain.APIError{
		Type:   domain.ErrorTypeForbidden,
		Title:  "Access denied",
		Status: http.StatusForbidden,
		Detail: detail,
	})
}
