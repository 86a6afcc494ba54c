package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/middleware"
)

const (
	testAPIKey = "test-api-key"
	walletA    = "0x1111111111111111111111111111111111111111"
	walletB    = "0x2222222222222222222222222222222222222222"
)

func generateKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims middleware.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(wallet string) middleware.Claims {
	return middleware.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		WalletAddress: wallet,
	}
}

func TestAuthenticator_Authenticate(t *testing.T) {
	key, publicPEM := generateKey(t)
	otherKey, _ := generateKey(t)
	auth := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{testAPIKey, ""},
	})

	t.Run("valid jwt", func(t *testing.T) {
		result, err := auth.Authenticate("Bearer " + signToken(t, key, validClaims(walletA)))

		require.NoError(t, err)
		assert.Equal(t, middleware.AuthTypeJWT, result.AuthType)
		require.NotNil(t, result.Claims)
		assert.Equal(t, walletA, result.Claims.WalletAddress)
		assert.Equal(t, "user-1", result.Claims.Subject)
	})

	t.Run("valid api key", func(t *testing.T) {
		result, err := auth.Authenticate("ApiKey " + testAPIKey)

		require.NoError(t, err)
		assert.Equal(t, middleware.AuthTypeAPIKey, result.AuthType)
		assert.Nil(t, result.Claims)
	})

	expired := validClaims(walletA)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noExpiry := validClaims(walletA)
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no credentials", "Bearer"},
		{"unsupported scheme", "Basic dXNlcjpwYXNz"},
		{"unknown api key", "ApiKey nope"},
		{"empty api key", "ApiKey "},
		{"wrong signer", "Bearer " + signToken(t, otherKey, validClaims(walletA))},
		{"expired", "Bearer " + signToken(t, key, expired)},
		{"no expiry", "Bearer " + signToken(t, key, noExpiry)},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := auth.Authenticate(tt.header)

			assert.Error(t, err)
			assert.Nil(t, result)
		})
	}

	t.Run("hmac token rejected", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims(walletA)).SignedString([]byte(publicPEM))
		require.NoError(t, err)

		_, err = auth.Authenticate("Bearer " + token)

		assert.Error(t, err)
	})
}

func TestAuthenticator_Unconfigured(t *testing.T) {
	key, _ := generateKey(t)
	auth := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: "not a pem"})

	_, err := auth.Authenticate("Bearer " + signToken(t, key, validClaims(walletA)))
	assert.ErrorContains(t, err, "failed to parse RSA public key")

	_, err = auth.Authenticate("ApiKey anything")
	assert.ErrorContains(t, err, "no API keys configured")
}

func TestAuth_WalletBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	key, publicPEM := generateKey(t)

	router := gin.New()
	router.POST("/wallets/:address", middleware.Auth(middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{testAPIKey},
	}), func(c *gin.Context) {
		if !middleware.WalletAllowed(c, c.Param("address")) {
			c.Status(http.StatusForbidden)
			return
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		header     string
		address    string
		wantStatus int
	}{
		{"bound wallet matches", "Bearer " + signToken(t, key, validClaims(walletA)), walletA, http.StatusNoContent},
		{"bound wallet matches case-insensitively", "Bearer " + signToken(t, key, validClaims("0x1111111111111111111111111111111111111111")), "0X1111111111111111111111111111111111111111", http.StatusNoContent},
		{"bound wallet mismatch", "Bearer " + signToken(t, key, validClaims(walletA)), walletB, http.StatusForbidden},
		{"unbound jwt", "Bearer " + signToken(t, key, validClaims("")), walletB, http.StatusNoContent},
		{"api key", "ApiKey " + testAPIKey, walletB, http.StatusNoContent},
		{"unauthenticated", "", walletA, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/wallets/"+tt.address, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
