package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastewise/backend/internal/services"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func echoAdmin() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := AdminID(r.Context())
		w.Write([]byte(id))
	})
}

func signed(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = BearerToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	for _, h := range []string{"Basic abc", "Bearer", "Bearer a b", "Bearer "} {
		_, err = BearerToken(h)
		assert.ErrorIs(t, err, ErrBadHeader, h)
	}
}

func TestAuthenticator_Middleware(t *testing.T) {
	auth := NewAuthenticator(testSecret, nil, zap.NewNop())
	valid, err := auth.Issue("admin-7", time.Hour)
	require.NoError(t, err)

	expired := signed(t, Claims{UserID: "admin-7", Role: RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}, testSecret)
	resident := signed(t, Claims{UserID: "res-1", Role: "resident"}, testSecret)
	forged := signed(t, Claims{UserID: "admin-7", Role: RoleAdmin}, "other-secret")

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "valid admin", header: "Bearer " + valid, status: http.StatusOK, body: "admin-7"},
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token " + valid, status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + forged, status: http.StatusUnauthorized},
		{name: "not an admin", header: "Bearer " + resident, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/forms", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			auth.Middleware(echoAdmin()).ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rr.Body.String())
				return
			}
			var resp services.ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestAuthenticator_Blacklist(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	auth := NewAuthenticator(testSecret, redisClient, zap.NewNop())
	token, err := auth.Issue("admin-7", time.Hour)
	require.NoError(t, err)

	serve := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		auth.Middleware(echoAdmin()).ServeHTTP(rr, req)
		return rr.Code
	}

	mock.ExpectExists(BlacklistKey(token)).SetVal(0)
	assert.Equal(t, http.StatusOK, serve())

	mock.ExpectExists(BlacklistKey(token)).SetVal(1)
	assert.Equal(t, http.StatusUnauthorized, serve())

	mock.ExpectExists(BlacklistKey(token)).SetErr(errors.New("redis down"))
	assert.Equal(t, http.StatusInternalServerError, serve())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticator_Revoke(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()
	auth := NewAuthenticator(testSecret, redisClient, zap.NewNop())

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	require.NoError(t, auth.Revoke(context.Background(), "tok", claims))
	assert.True(t, mr.Exists(BlacklistKey("tok")))
	ttl := mr.TTL(BlacklistKey("tok"))
	assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour, "ttl %s", ttl)

	expired := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}}
	require.NoError(t, auth.Revoke(context.Background(), "old", expired))
	assert.False(t, mr.Exists(BlacklistKey("old")), "expired tokens need no entry")
}
