// internal/auth/token.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenInvalid = errors.New("invalid or expired token")

// Principal is the caller identity carried by a verified bearer token.
type Principal struct {
	Subject string
	Name    string
}

// VerifyToken checks signature, algorithm and expiry against the shared
// signing secret. Verification is stateless; no session is kept.
func VerifyToken(tokenString, secret string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	if sub == "" {
		return nil, ErrTokenInvalid
	}
	return &Principal{Subject: sub, Name: name}, nil
}

// GenerateToken mints a bearer token for a caller. The relay has no login
// endpoint; the CRM backend issues tokens with the same secret. Kept here for
// operators and tests.
func GenerateToken(subject, name, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"name": name,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
		"iss":  "agentbook-whatsapp-relay",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
