// internal/auth/session.go
package auth

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey

	// tokenTTL is how long a session token stays valid. Zero means tokens
	// never expire (useful for long-lived casual tables).
	tokenTTL time.Duration
)

// Init generates a fresh ed25519 key pair for this process and reads the
// session TTL from SESSION_TTL (a Go duration; "never", "0" or empty
// disables expiry). Restarting the service invalidates old sessions, which
// is acceptable: guests are re-minted on reconnect.
func Init() error {
	var err error
	publicKey, privateKey, err = ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("generate session key pair: %w", err)
	}

	ttl := os.Getenv("SESSION_TTL")
	switch ttl {
	case "", "0", "never":
		tokenTTL = 0
	default:
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("parse SESSION_TTL: %w", err)
		}
		tokenTTL = d
	}
	return nil
}

// CreateToken issues a signed session token for the given user.
func CreateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
	}
	if tokenTTL > 0 {
		claims["exp"] = time.Now().Add(tokenTTL).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(privateKey)
}

// VerifyToken validates a session token and returns the user it names.
func VerifyToken(tokenString string) (uuid.UUID, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse session token: %w", err)
	}
	if !t.Valid {
		return uuid.Nil, fmt.Errorf("invalid session token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid session claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("session token missing sub")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("session sub is not a user id: %w", err)
	}
	return id, nil
}
