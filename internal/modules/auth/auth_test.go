package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService("admin@freshmart.test", string(hash), []byte("test-key"))
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin@freshmart.test", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login(ctx, "admin@freshmart.test", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "someone@else.test", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.Login(context.Background(), "admin@freshmart.test", "hunter2")
	require.NoError(t, err)

	called := false
	guard := RequireAdmin([]byte("test-key"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	// No token.
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/trending", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	// Garbage token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/trending", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	guard.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/trending", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	guard.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
