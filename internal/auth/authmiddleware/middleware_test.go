package authmiddleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/naol728/rms/internal/auth"
	"github.com/naol728/rms/internal/auth/authmiddleware"
	"github.com/naol728/rms/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func issueToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := auth.NewToken(context.Background(), user, time.Hour)
	assert.NoError(t, err)
	return token
}

func TestMiddleware_ValidToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	token := issueToken(t, &models.User{ID: 7, Email: "alice@example.com", Role: models.RoleStaff})

	var gotUserID int64
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = authmiddleware.FromContext(r.Context())
		gotRole, _ = authmiddleware.RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := authmiddleware.New()(next)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotUserID)
	assert.Equal(t, models.RoleStaff, gotRole)
}

func TestMiddleware_MissingToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	handler := authmiddleware.New()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_MalformedToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	handler := authmiddleware.New()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := authmiddleware.RequireRole(models.RoleAdmin)(next)

	// Staff role on an admin route is rejected.
	req := httptest.NewRequest(http.MethodGet, "/api/staff", nil)
	req = req.WithContext(context.WithValue(req.Context(), authmiddleware.RoleKey, models.RoleStaff))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin role passes.
	req = httptest.NewRequest(http.MethodGet, "/api/staff", nil)
	req = req.WithContext(context.WithValue(req.Context(), authmiddleware.RoleKey, models.RoleAdmin))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// No role in context at all is rejected too.
	req = httptest.NewRequest(http.MethodGet, "/api/staff", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
