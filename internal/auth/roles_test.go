package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/draperly/atelier-api/internal/domain"
)

func gateRequest(t *testing.T, role domain.Role, path string, withUser bool) *httptest.ResponseRecorder {
	t.Helper()

	handler := RequireAccess("/api/v1")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withUser {
		req = req.WithContext(WithUserContext(req.Context(), &UserContext{
			UserID: uuid.New(),
			Role:   role,
		}))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireAccess(t *testing.T) {
	tests := []struct {
		name   string
		role   domain.Role
		path   string
		status int
	}{
		{"admin passes everywhere", domain.RoleAdmin, "/api/v1/profiles", http.StatusOK},
		{"sales can open customers", domain.RoleSales, "/api/v1/customers/abc", http.StatusOK},
		{"sales cannot open accounting", domain.RoleSales, "/api/v1/accounting", http.StatusForbidden},
		{"accounting can open accounting", domain.RoleAccounting, "/api/v1/accounting/docs", http.StatusOK},
		{"marketing cannot open inventory", domain.RoleMarketing, "/api/v1/inventory", http.StatusForbidden},
		{"installer can open bills", domain.RoleInstaller, "/api/v1/bills/123/items", http.StatusOK},
		{"viewer cannot open profiles", domain.RoleViewer, "/api/v1/profiles", http.StatusForbidden},
		{"ungated prefix open to all roles", domain.RoleViewer, "/api/v1/dashboard", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := gateRequest(t, tt.role, tt.path, true)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRequireAccess_NoUserContext(t *testing.T) {
	rec := gateRequest(t, "", "/api/v1/customers", false)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "no user context")
}
