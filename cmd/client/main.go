package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-pkce-client/flow"
	"github.com/jrsteele09/go-pkce-client/flow/attemptrepo"
	"github.com/jrsteele09/go-pkce-client/internal/config"
	"github.com/jrsteele09/go-pkce-client/server"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running client: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Client stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	authFlow, err := buildFlow(context.Background(), c)
	if err != nil {
		return fmt.Errorf("buildFlow: %w", err)
	}

	callbackServer, err := server.New(c, authFlow, logTokens)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: callbackServer}
	go listenAndServe(httpServer)
	log.Printf("Open http://localhost%s/ to start the sign-in flow\n", c.GetPort())
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildFlow(ctx context.Context, c config.Config) (*flow.AuthorizationFlow, error) {
	endpoint := oauth2.Endpoint{
		AuthURL:  c.GetAuthorizationEndpoint(),
		TokenURL: c.GetTokenEndpoint(),
	}

	// Prefer discovery when an issuer is configured
	if issuer := c.GetIssuerURL(); issuer != "" {
		discovered, err := flow.DiscoverEndpoints(ctx, issuer)
		if err != nil {
			return nil, fmt.Errorf("flow.DiscoverEndpoints: %w", err)
		}
		endpoint = discovered
	}

	oauthConfig := &oauth2.Config{
		ClientID:    c.GetClientID(),
		RedirectURL: c.GetRedirectURI(),
		Scopes:      c.GetScopes(),
		Endpoint:    endpoint,
	}

	options := []flow.AuthorizationFlowOption{
		flow.WithVerifierLength(c.GetVerifierLength()),
		flow.WithStateByteLength(c.GetStateByteLength()),
	}
	if c.GetAllowPlainChallenge() {
		options = append(options, flow.WithPlainFallback())
	}

	return flow.NewAuthorizationFlow(oauthConfig, attemptrepo.NewInMemoryRepo(), options...)
}

// logTokens displays the outcome of a completed attempt. Claims are decoded
// without signature verification; validating tokens is the resource server's
// job, this client treats them as opaque.
func logTokens(token *oauth2.Token) {
	zlog.Info().
		Str("token_type", token.TokenType).
		Time("expiry", token.Expiry).
		Msg("Tokens received")

	logTokenClaims("access_token", token.AccessToken)
	if idToken, ok := token.Extra("id_token").(string); ok {
		logTokenClaims("id_token", idToken)
	}
}

func logTokenClaims(name, raw string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		zlog.Debug().Str("token", name).Msg("Token is not a JWT, skipping claim display")
		return
	}
	zlog.Info().Str("token", name).Interface("claims", map[string]any(claims)).Msg("Decoded claims")
}

func listenAndServe(server *http.Server) error {
	log.Printf("Callback server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
