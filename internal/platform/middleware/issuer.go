package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"healthanchor/pkg/requestcontext"
)

// IssuerIdentity decorates the request context with the issuer identity from
// an optional HS256 bearer token. It never rejects: anchoring stays open to
// unauthenticated callers, who get placeholder provenance instead (matching
// the wallet-less upload path).
func IssuerIdentity(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			issuerID, err := parseIssuer(token, secret)
			if err != nil {
				logger.WarnContext(r.Context(), "ignoring unusable bearer token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestcontext.WithIssuerID(r.Context(), issuerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseIssuer(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sub, nil
}
