package pkce

import "errors"

var (
	ErrInvalidVerifierLength = errors.New("verifier length must be at least 1")
	ErrInvalidStateLength    = errors.New("state length must be at least 1")
	ErrEmptyVerifier         = errors.New("verifier is empty")
	ErrDigestUnavailable     = errors.New("sha-256 digest unavailable")
)
