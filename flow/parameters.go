package flow

import (
	"strings"

	"github.com/jrsteele09/go-pkce-client/pkce"
)

// ResponseType represents the OAuth 2.0 response type.
// Determines what is returned from the authorization endpoint.
type ResponseType string

const (
	// CodeResponseType indicates the authorization code flow, the only flow
	// this client implements. The authorization endpoint returns a code that
	// is exchanged for tokens at the token endpoint.
	CodeResponseType ResponseType = "code"
)

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Token request includes: code, client_id, redirect_uri, code_verifier.
	AuthorizationCodeGrant GrantType = "authorization_code"
)

// AuthorizationParameters holds the parameters sent to the authorization
// endpoint as query parameters when an attempt begins.
type AuthorizationParameters struct {
	// ClientID identifies the application requesting authorization.
	// Required: Yes
	// Example: "web-app-client" or "mobile-app-xyz"
	ClientID string

	// ResponseType specifies what the authorization endpoint should return.
	// Required: Yes ("code" is the only supported value)
	ResponseType ResponseType

	// RedirectURI is where the authorization response will be sent.
	// Required: Yes
	// Security: Must exactly match a URI pre-registered with the provider
	RedirectURI string

	// Scope specifies the permissions being requested.
	// Required: No (but typically includes "openid" for OIDC)
	// Example: "openid profile email"
	Scope string

	// State is an opaque value echoed back by the provider on the redirect.
	// Required: Recommended (CSRF protection)
	// Security: Exchange rejects callbacks whose state does not match
	State string

	// CodeChallenge is the PKCE challenge derived from the code verifier.
	// Required: Yes for this client (it exists to do PKCE)
	// Example: BASE64URL(SHA256(code_verifier)), 43 characters for S256
	CodeChallenge string

	// CodeChallengeMethod specifies how CodeChallenge was derived.
	// Required: Yes if CodeChallenge is provided
	// Example: "S256" or "plain" (plain only via explicit opt-in)
	CodeChallengeMethod pkce.CodeMethodType
}

// Validate checks the authorization parameters before the redirect is built.
func (p *AuthorizationParameters) Validate() error {
	if strings.TrimSpace(p.ClientID) == "" {
		return ErrMissingClientID
	}
	if strings.TrimSpace(p.RedirectURI) == "" {
		return ErrMissingRedirectURI
	}
	if p.ResponseType != CodeResponseType {
		return ErrInvalidResponseType
	}
	if strings.TrimSpace(p.CodeChallenge) == "" {
		return ErrMissingCodeChallenge
	}
	if !codeChallengeMethodValid(p.CodeChallengeMethod) {
		return ErrInvalidCodeChallengeMethod
	}
	return nil
}

// TokenParameters holds the parameters for the token request body
// (application/x-www-form-urlencoded POST).
type TokenParameters struct {
	// ClientID identifies the OAuth2 client making the request.
	ClientID string

	// GrantType is always "authorization_code" for this client.
	GrantType GrantType

	// Code is the authorization code received on the redirect.
	// Usage: exchanged once for tokens, then becomes invalid.
	Code string

	// RedirectURI must repeat the value sent on the authorization request.
	RedirectURI string

	// CodeVerifier is the PKCE verifier matching the code_challenge sent
	// earlier. Never send an empty verifier: a missing verifier means the
	// flow was never started and must be restarted, not patched up.
	CodeVerifier string
}

// Validate checks the token parameters before the request is sent.
func (p *TokenParameters) Validate() error {
	if strings.TrimSpace(p.ClientID) == "" {
		return ErrMissingClientID
	}
	if p.GrantType != AuthorizationCodeGrant {
		return ErrInvalidGrantType
	}
	if strings.TrimSpace(p.Code) == "" {
		return ErrMissingAuthorizationCode
	}
	if strings.TrimSpace(p.RedirectURI) == "" {
		return ErrMissingRedirectURI
	}
	if strings.TrimSpace(p.CodeVerifier) == "" {
		return ErrNoPendingAttempt
	}
	return nil
}

func codeChallengeMethodValid(method pkce.CodeMethodType) bool {
	switch method {
	case pkce.CodeMethodTypeS256, pkce.CodeMethodTypeNone:
		return true
	}
	return false
}
