package pkce_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/go-pkce-client/pkce"
	"github.com/stretchr/testify/require"
)

const (
	// RFC 7636 Appendix B verifier/challenge pair
	testCodeVerifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	testCodeChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"

	verifierAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

func TestGenerateVerifierLengthAndAlphabet(t *testing.T) {
	for _, length := range []int{1, 43, 64, 128, 300} {
		verifier, err := pkce.GenerateVerifier(length)
		require.NoError(t, err)
		require.Len(t, verifier, length)
		for _, c := range verifier {
			require.True(t, strings.ContainsRune(verifierAlphabet, c), "unexpected character %q", c)
		}
	}
}

func TestGenerateVerifierRejectsNonPositiveLength(t *testing.T) {
	_, err := pkce.GenerateVerifier(0)
	require.ErrorIs(t, err, pkce.ErrInvalidVerifierLength)

	_, err = pkce.GenerateVerifier(-5)
	require.ErrorIs(t, err, pkce.ErrInvalidVerifierLength)
}

func TestGenerateVerifierIsNotConstant(t *testing.T) {
	a, err := pkce.GenerateVerifier(64)
	require.NoError(t, err)
	b, err := pkce.GenerateVerifier(64)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestDeriveChallengeMatchesRFC7636Vector(t *testing.T) {
	challenge, err := pkce.DeriveChallenge(testCodeVerifier, pkce.DigestAvailable)
	require.NoError(t, err)
	require.Equal(t, testCodeChallenge, challenge)
}

func TestDeriveChallengeIsDeterministicAndURLSafe(t *testing.T) {
	verifier, err := pkce.GenerateVerifier(64)
	require.NoError(t, err)

	first, err := pkce.DeriveChallenge(verifier, pkce.DigestAvailable)
	require.NoError(t, err)
	second, err := pkce.DeriveChallenge(verifier, pkce.DigestAvailable)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.NotContains(t, first, "+")
	require.NotContains(t, first, "/")
	require.NotContains(t, first, "=")
}

func TestDeriveChallengeFailsWhenDigestUnavailable(t *testing.T) {
	_, err := pkce.DeriveChallenge(testCodeVerifier, pkce.DigestUnavailable)
	require.ErrorIs(t, err, pkce.ErrDigestUnavailable)
}

func TestDeriveChallengeRejectsEmptyVerifier(t *testing.T) {
	_, err := pkce.DeriveChallenge("", pkce.DigestAvailable)
	require.ErrorIs(t, err, pkce.ErrEmptyVerifier)
}

func TestPlainChallengeReturnsVerifierUnmodified(t *testing.T) {
	challenge, err := pkce.PlainChallenge(testCodeVerifier)
	require.NoError(t, err)
	require.Equal(t, testCodeVerifier, challenge)

	_, err = pkce.PlainChallenge("")
	require.ErrorIs(t, err, pkce.ErrEmptyVerifier)
}

func TestVerifyChallenge(t *testing.T) {
	require.True(t, pkce.VerifyChallenge(testCodeChallenge, testCodeVerifier, pkce.CodeMethodTypeS256))
	require.False(t, pkce.VerifyChallenge(testCodeChallenge, "wrong-verifier", pkce.CodeMethodTypeS256))

	require.True(t, pkce.VerifyChallenge(testCodeVerifier, testCodeVerifier, pkce.CodeMethodTypeNone))
	require.False(t, pkce.VerifyChallenge(testCodeChallenge, testCodeVerifier, pkce.CodeMethodTypeNone))

	require.False(t, pkce.VerifyChallenge("", testCodeVerifier, pkce.CodeMethodTypeS256))
	require.False(t, pkce.VerifyChallenge(testCodeChallenge, "", pkce.CodeMethodTypeS256))
	require.False(t, pkce.VerifyChallenge(testCodeChallenge, testCodeVerifier, pkce.CodeMethodType("unknown")))
}

func TestGenerateState(t *testing.T) {
	state, err := pkce.GenerateState(16)
	require.NoError(t, err)
	require.NotEmpty(t, state)
	require.NotContains(t, state, "=")

	_, err = pkce.GenerateState(0)
	require.ErrorIs(t, err, pkce.ErrInvalidStateLength)
}

func TestDefaultDigestProbe(t *testing.T) {
	require.Equal(t, pkce.DigestAvailable, pkce.DefaultDigestProbe())
}
