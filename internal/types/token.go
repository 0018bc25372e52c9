package types

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrMalformedToken is returned when a token cannot be decoded.
var ErrMalformedToken = errors.New("malformed auth token")

// TokenClaims is the subset of the JWT payload the client inspects.
// The signature is never verified here; the server is the authority,
// the client only needs expiry and the subject identity.
type TokenClaims struct {
	ID         string `json:"id"`
	Collection string `json:"collectionId"`
	Exp        int64  `json:"exp"`
}

// ParseTokenClaims decodes the payload segment of a JWT without
// verifying its signature.
func ParseTokenClaims(token string) (*TokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrMalformedToken
	}
	var claims TokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrMalformedToken
	}
	return &claims, nil
}

// TokenValid reports whether token decodes and has not expired.
func TokenValid(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims, err := ParseTokenClaims(token)
	if err != nil {
		return false
	}
	return claims.Exp > now.Unix()
}
