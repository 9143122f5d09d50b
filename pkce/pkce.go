// Package pkce implements the client side of Proof Key for Code Exchange
// (RFC 7636): verifier generation, challenge derivation, and challenge
// verification for test doubles and embedded resource servers.
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"math/big"

	"github.com/pkg/errors"
)

// CodeMethodType represents the PKCE (Proof Key for Code Exchange) challenge method.
// Used to prevent authorization code interception attacks (especially for public clients).
type CodeMethodType string

const (
	// CodeMethodTypeS256 indicates SHA-256 hashing is used for the code challenge.
	// Client sends: code_challenge = BASE64URL(SHA256(code_verifier))
	// Server validates: SHA256(provided code_verifier) == stored code_challenge
	CodeMethodTypeS256 CodeMethodType = "S256"

	// CodeMethodTypeNone (labeled "plain") means no hashing, code_verifier sent directly.
	// Client sends: code_challenge = code_verifier (plaintext)
	// Only protects against passive attacks; use S256 wherever the digest is available.
	CodeMethodTypeNone CodeMethodType = "plain"
)

// verifierAlphabet is the set of characters a verifier is drawn from.
// RFC 7636 additionally permits "-._~"; letters and digits keep the
// verifier safe in every transport this library targets.
const verifierAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateVerifier draws length characters uniformly at random from
// [A-Za-z0-9] using a cryptographic source. RFC 7636 recommends lengths
// between 43 and 128; no bound is enforced here beyond length >= 1, the
// caller owns that policy.
func GenerateVerifier(length int) (string, error) {
	if length < 1 {
		return "", ErrInvalidVerifierLength
	}

	alphabetLen := big.NewInt(int64(len(verifierAlphabet)))
	verifier := make([]byte, length)
	for i := range verifier {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", errors.Wrap(err, "[GenerateVerifier] rand.Int")
		}
		verifier[i] = verifierAlphabet[n.Int64()]
	}
	return string(verifier), nil
}

// GenerateState creates a random base64url state value for CSRF protection.
// byteLength is the entropy in bytes before encoding.
func GenerateState(byteLength int) (string, error) {
	if byteLength < 1 {
		return "", ErrInvalidStateLength
	}
	b := make([]byte, byteLength)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "[GenerateState] rand.Read")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DeriveChallenge computes the S256 challenge for a verifier:
// BASE64URL(SHA256(ASCII(verifier))) with padding stripped. The result is
// deterministic and contains no '+', '/' or '=' characters.
//
// The digest capability is passed explicitly rather than probed ambiently;
// when the capability reports unavailable the caller decides whether to
// degrade to PlainChallenge.
func DeriveChallenge(verifier string, capability DigestCapability) (string, error) {
	if verifier == "" {
		return "", ErrEmptyVerifier
	}
	if capability != DigestAvailable {
		return "", ErrDigestUnavailable
	}
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:]), nil
}

// PlainChallenge returns the verifier unmodified for use as a "plain"
// challenge. This is a real security downgrade: the challenge becomes equal
// to the verifier and directly observable in the authorization request.
// Callers must opt in explicitly and send code_challenge_method=plain.
func PlainChallenge(verifier string) (string, error) {
	if verifier == "" {
		return "", ErrEmptyVerifier
	}
	return verifier, nil
}

// VerifyChallenge checks a verifier against a previously issued challenge.
// This is the server-side half of the exchange; it lives here so token
// endpoint test doubles and embedded verifiers share one implementation.
func VerifyChallenge(challenge, verifier string, method CodeMethodType) bool {
	if challenge == "" || verifier == "" {
		return false
	}
	switch method {
	case CodeMethodTypeS256:
		hash := sha256.Sum256([]byte(verifier))
		computed := base64.RawURLEncoding.EncodeToString(hash[:])
		return subtle.ConstantTimeCompare([]byte(challenge), []byte(computed)) == 1
	case CodeMethodTypeNone:
		return subtle.ConstantTimeCompare([]byte(challenge), []byte(verifier)) == 1
	}
	return false
}
