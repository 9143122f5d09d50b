// Package server hosts the loopback redirect endpoint for the demo client:
// it kicks off an authorization attempt and receives the provider's redirect
// carrying the authorization code.
package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-pkce-client/flow"
	"github.com/jrsteele09/go-pkce-client/internal/config"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Route path constants
const (
	RouteIndex    = "/"
	RouteCallback = "/callback"
)

// TokenHandler receives the tokens of a completed authorization attempt.
type TokenHandler func(token *oauth2.Token)

type Server struct {
	env     string // Environment (e.g., "DEV", "PROD")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	flow    *flow.AuthorizationFlow
	onToken TokenHandler
}

func New(config config.Config, authFlow *flow.AuthorizationFlow, onToken TokenHandler) (*Server, error) {
	if authFlow == nil {
		return nil, fmt.Errorf("[Server New] authorization flow is required")
	}

	s := &Server{
		mux:     http.NewServeMux(),
		config:  config,
		flow:    authFlow,
		onToken: onToken,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex, s.BeginAuthorizationHandler())
	s.RegisterRouteFunc("GET "+RouteCallback, s.OAuthCallbackHandler())
	s.RegisterRouteFunc("POST "+RouteCallback, s.OAuthCallbackHandler()) // For form_post response mode
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Info().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			log.Info().Str("path", parts[0]).Msg("route registered")
		}
	}
}
