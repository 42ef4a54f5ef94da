package jwt

import "errors"

var (
	ErrMissingSigningKey       = errors.New("jwt: missing signing key")
	ErrMalformedToken          = errors.New("jwt: malformed token")
	ErrExpiredToken            = errors.New("jwt: token is expired")
	ErrInvalidSignature        = errors.New("jwt: invalid signature")
	ErrUnexpectedSigningMethod = errors.New("jwt: unexpected signing method")
)
