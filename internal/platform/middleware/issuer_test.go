package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthanchor/pkg/requestcontext"
)

const testSecret = "test-signing-secret"

func signedToken(t *testing.T, sub string, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestIssuerIdentity(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	capture := func(issuerID *string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*issuerID = requestcontext.IssuerID(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("valid bearer token sets issuer id", func(t *testing.T) {
		var got string
		handler := IssuerIdentity(testSecret, logger)(capture(&got))

		req := httptest.NewRequest(http.MethodPost, "/records/anchor", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "doctor-42", testSecret))
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "doctor-42", got)
	})

	t.Run("missing token passes through without issuer", func(t *testing.T) {
		var got string
		handler := IssuerIdentity(testSecret, logger)(capture(&got))

		req := httptest.NewRequest(http.MethodPost, "/records/anchor", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, got)
	})

	t.Run("token signed with wrong secret is ignored, not rejected", func(t *testing.T) {
		var got string
		handler := IssuerIdentity(testSecret, logger)(capture(&got))

		req := httptest.NewRequest(http.MethodPost, "/records/anchor", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "doctor-42", "other-secret"))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, got)
	})

	t.Run("token without subject is ignored", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		var got string
		handler := IssuerIdentity(testSecret, logger)(capture(&got))
		req := httptest.NewRequest(http.MethodPost, "/records/anchor", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Empty(t, got)
	})
}
