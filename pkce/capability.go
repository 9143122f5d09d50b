package pkce

// DigestCapability is the tagged result of probing for the SHA-256 digest
// primitive. Challenge derivation consumes this value instead of doing
// runtime feature detection, so the transformation method is selected
// deterministically by the caller.
type DigestCapability int

const (
	// DigestUnavailable means the execution context cannot provide the
	// digest primitive and S256 derivation must not be attempted.
	DigestUnavailable DigestCapability = iota

	// DigestAvailable means SHA-256 is usable for challenge derivation.
	DigestAvailable
)

// DigestProbe reports whether the digest primitive is usable. Injectable so
// callers can simulate constrained contexts; see DefaultDigestProbe.
type DigestProbe func() DigestCapability

// DefaultDigestProbe always reports available. The Go runtime ships SHA-256
// unconditionally; the probe exists for environments that restrict crypto
// (FIPS-only builds, syscall-filtered sandboxes) and for tests.
func DefaultDigestProbe() DigestCapability {
	return DigestAvailable
}
