package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openballot/ledger/internal/core/domain"
)

func authProbe(t *testing.T) (*httptest.Server, *domain.Account) {
	t.Helper()

	var seen domain.Account
	auth := NewAccountAuth(testSecret)
	handler := auth.RequireAccount(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := AccountFromContext(r.Context())
		require.True(t, ok)
		seen = account
		w.WriteHeader(http.StatusOK)
	}))

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, &seen
}

func doAuthRequest(t *testing.T, server *httptest.Server, authorization string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, server.URL, nil)
	require.NoError(t, err)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestRequireAccountValidToken(t *testing.T) {
	server, seen := authProbe(t)

	resp := doAuthRequest(t, server, "Bearer "+signToken(t, "0xvoter1"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.Account("0xvoter1"), *seen)
}

func TestRequireAccountMissingHeader(t *testing.T) {
	server, _ := authProbe(t)

	resp := doAuthRequest(t, server, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAccountNotBearer(t *testing.T) {
	server, _ := authProbe(t)

	resp := doAuthRequest(t, server, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAccountBadSignature(t *testing.T) {
	server, _ := authProbe(t)

	claims := jwt.MapClaims{
		"sub": "0xvoter1",
		"exp": time.Now().Add(15 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	resp := doAuthRequest(t, server, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAccountMissingSubject(t *testing.T) {
	server, _ := authProbe(t)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(15 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp := doAuthRequest(t, server, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAccountExpiredToken(t *testing.T) {
	server, _ := authProbe(t)

	claims := jwt.MapClaims{
		"sub": "0xvoter1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp := doAuthRequest(t, server, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
