package config

import "strconv"

type PKCEConfig interface {
	GetVerifierLength() int
	GetStateByteLength() int
	GetAllowPlainChallenge() bool
}

type PKCE struct{}

var _ PKCEConfig = PKCE{}

func (PKCE) GetVerifierLength() int {
	return getIntEnv("PKCE_VERIFIER_LENGTH", 64)
}

func (PKCE) GetStateByteLength() int {
	return getIntEnv("PKCE_STATE_BYTES", 16)
}

// GetAllowPlainChallenge controls the opt-in degradation to a plain-text
// challenge when the digest is unavailable. Defaults to false.
func (PKCE) GetAllowPlainChallenge() bool {
	return GetEnv("PKCE_ALLOW_PLAIN", "false") == "true"
}

func getIntEnv(envVar string, defaultValue int) int {
	value, err := strconv.Atoi(GetEnv(envVar, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}
