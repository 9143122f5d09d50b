package config

import "strings"

type OAuthConfig interface {
	GetClientID() string
	GetIssuerURL() string
	GetAuthorizationEndpoint() string
	GetTokenEndpoint() string
	GetRedirectURI() string
	GetScopes() []string
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetClientID() string {
	return GetEnv("OAUTH_CLIENT_ID", "oauth-client")
}

// GetIssuerURL returns the OIDC issuer used for endpoint discovery. When
// empty, the explicit authorization/token endpoints are used instead.
func (OAuth) GetIssuerURL() string {
	return GetEnv("OAUTH_ISSUER_URL", "")
}

func (OAuth) GetAuthorizationEndpoint() string {
	return GetEnv("OAUTH_AUTHORIZATION_ENDPOINT", "http://localhost:8080/oauth2/authorize")
}

func (OAuth) GetTokenEndpoint() string {
	return GetEnv("OAUTH_TOKEN_ENDPOINT", "http://localhost:8080/oauth2/token")
}

func (OAuth) GetRedirectURI() string {
	return GetEnv("OAUTH_REDIRECT_URI", "http://localhost:3000/callback")
}

func (OAuth) GetScopes() []string {
	scopes := GetEnv("OAUTH_SCOPES", "openid profile email")
	return strings.Fields(scopes)
}
