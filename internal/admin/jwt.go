package admin

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims binds a token to a revocable server-side session.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// signToken issues an HS256 token for the given session. The token alone is
// not sufficient to authenticate: the session id inside it must still be
// live on the server.
func signToken(signingKey []byte, username, sessionID string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// parseToken verifies the signature and expiry and returns the embedded
// subject and session id.
func parseToken(signingKey []byte, tokenString string) (username, sessionID string, err error) {
	claims := &sessionClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return signingKey, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("parse session token: %w", err)
	}
	if claims.Subject == "" || claims.SessionID == "" {
		return "", "", fmt.Errorf("session token missing subject or session id")
	}
	return claims.Subject, claims.SessionID, nil
}
