package config

type Config interface {
	EnvConfig
	OAuthConfig
	PKCEConfig
}

type mainConfig struct {
	EnvVars
	OAuth
	PKCE
}

func New() Config {
	return mainConfig{}
}
