package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Envelope constants per RFC 7519. Only HS256 is supported; tokens carrying
// any other algorithm are rejected to prevent algorithm confusion attacks.
const (
	headerType      = "JWT"
	headerAlgorithm = "HS256"
)

// EnvelopePrefix is the base64url encoding shared by all compact JWT headers
// (`{"` encodes to "eyJ"). Callers use it to distinguish self-contained
// signed tokens from opaque session keys.
const EnvelopePrefix = "eyJ"

type header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// Claims carries the registered claims this service issues and validates.
// Temporal fields are Unix timestamps; zero values are treated as unset.
type Claims struct {
	Subject   string `json:"sub,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// Valid checks the temporal claims against current time.
func (c Claims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return ErrExpiredToken
	}
	return nil
}

// Service signs and verifies compact JWT tokens with HMAC-SHA256.
// The signing key lives in process memory only; rotating it invalidates
// every outstanding token, there is no key versioning.
type Service struct {
	signingKey []byte
}

// New creates a token service from the given signing key.
func New(signingKey string) (*Service, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}
	return &Service{signingKey: []byte(signingKey)}, nil
}

// Sign creates a signed token for the given claims.
func (s *Service) Sign(claims Claims) (string, error) {
	headerJSON, err := json.Marshal(header{Type: headerType, Algorithm: headerAlgorithm})
	if err != nil {
		return "", err
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	payload := encodeSegment(headerJSON) + "." + encodeSegment(claimsJSON)
	return payload + "." + s.sign(payload), nil
}

// Parse verifies a token's signature and temporal claims, returning the
// embedded claims. Verification happens before any decoding of the claims so
// forged payloads are never interpreted.
func (s *Service) Parse(tokenString string) (Claims, error) {
	var claims Claims

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return claims, ErrMalformedToken
	}

	payload := parts[0] + "." + parts[1]
	expected := s.sign(payload)
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(expected)) != 1 {
		return claims, ErrInvalidSignature
	}

	headerJSON, err := decodeSegment(parts[0])
	if err != nil {
		return claims, errors.Join(ErrMalformedToken, err)
	}
	var h header
	if err := json.Unmarshal(headerJSON, &h); err != nil {
		return claims, errors.Join(ErrMalformedToken, err)
	}
	if h.Algorithm != headerAlgorithm {
		return claims, ErrUnexpectedSigningMethod
	}

	claimsJSON, err := decodeSegment(parts[1])
	if err != nil {
		return claims, errors.Join(ErrMalformedToken, err)
	}
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return claims, errors.Join(ErrMalformedToken, err)
	}

	if err := claims.Valid(); err != nil {
		return claims, err
	}

	return claims, nil
}

func (s *Service) sign(payload string) string {
	h := hmac.New(sha256.New, s.signingKey)
	h.Write([]byte(payload))
	return encodeSegment(h.Sum(nil))
}

func encodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
