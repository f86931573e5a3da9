package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestAuth(t *testing.T) {
	userID := uuid.New()
	valid := jwt.MapClaims{"sub": userID.String(), "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{
			name:       "valid token",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), valid),
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), valid),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret),
				jwt.MapClaims{"sub": userID.String(), "exp": time.Now().Add(-time.Minute).Unix()}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "unsigned",
			header: "Bearer " + signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType,
				jwt.MapClaims{"sub": userID.String()}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "subject is not a uuid",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret),
				jwt.MapClaims{"sub": "alice"}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID uuid.UUID
			var gotAdmin bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = utils.GetUserIDFromContext(r.Context())
				gotAdmin = utils.IsAdminContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/user/tickets", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			Auth(testSecret, zap.NewNop())(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && (gotID != userID || !gotAdmin) {
				t.Errorf("context user = %s admin = %v", gotID, gotAdmin)
			}
		})
	}
}

type stubUsers map[uuid.UUID]*entity.User

func (s stubUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s[id], nil
}

func TestAdmin(t *testing.T) {
	admin, customer, inactive := uuid.New(), uuid.New(), uuid.New()
	users := stubUsers{
		admin:    {Base: entity.Base{ID: admin}, Role: entity.RoleAdmin, IsActive: true},
		customer: {Base: entity.Base{ID: customer}, Role: entity.RoleCustomer, IsActive: true},
		inactive: {Base: entity.Base{ID: inactive}, Role: entity.RoleAdmin, IsActive: false},
	}

	tests := []struct {
		name       string
		userID     uuid.UUID
		tokenRole  string
		wantStatus int
	}{
		{"admin", admin, "admin", http.StatusOK},
		{"customer claiming admin", customer, "admin", http.StatusForbidden},
		{"deactivated admin", inactive, "admin", http.StatusForbidden},
		{"unknown user", uuid.New(), "admin", http.StatusForbidden},
		{"anonymous", uuid.Nil, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !utils.IsAdminContext(r.Context()) {
					t.Error("admin role missing from context")
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodDelete, "/api/admin/sessions/x", nil)
			if tt.userID != uuid.Nil {
				req = req.WithContext(utils.SetUserContext(req.Context(), tt.userID, tt.tokenRole))
			}
			rec := httptest.NewRecorder()
			Admin(users, zap.NewNop())(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestResolveRole(t *testing.T) {
	admin, customer, inactive := uuid.New(), uuid.New(), uuid.New()
	users := stubUsers{
		admin:    {Base: entity.Base{ID: admin}, Role: entity.RoleAdmin, IsActive: true},
		customer: {Base: entity.Base{ID: customer}, Role: entity.RoleCustomer, IsActive: true},
		inactive: {Base: entity.Base{ID: inactive}, Role: entity.RoleAdmin, IsActive: false},
	}

	tests := []struct {
		name      string
		userID    uuid.UUID
		tokenRole string
		wantAdmin bool
	}{
		{"admin", admin, "admin", true},
		{"admin with customer token", admin, "customer", true},
		{"customer claiming admin", customer, "admin", false},
		{"deactivated admin", inactive, "admin", false},
		{"unknown user", uuid.New(), "admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAdmin bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAdmin = utils.IsAdminContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodDelete, "/api/tickets/x", nil)
			req = req.WithContext(utils.SetUserContext(req.Context(), tt.userID, tt.tokenRole))
			rec := httptest.NewRecorder()
			ResolveRole(users, zap.NewNop())(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if gotAdmin != tt.wantAdmin {
				t.Errorf("admin = %v, want %v", gotAdmin, tt.wantAdmin)
			}
		})
	}
}
