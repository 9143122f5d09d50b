package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-pkce-client/flow"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

// BeginAuthorizationHandler starts a new authorization attempt and sends the
// user agent to the provider's authorization endpoint. Hitting it again
// overwrites any attempt already in flight.
func (s *Server) BeginAuthorizationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attempt, authURL, err := s.flow.Begin(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to begin authorization attempt")
			http.Error(w, "Failed to begin authorization: "+err.Error(), http.StatusInternalServerError)
			return
		}

		log.Info().
			Str("attempt_id", attempt.AttemptID).
			Str("code_challenge_method", string(attempt.Method)).
			Msg("Authorization attempt started")

		http.Redirect(w, r, authURL, http.StatusSeeOther)
	}
}

// OAuthCallbackHandler receives the provider's redirect and completes the
// pending attempt by exchanging the authorization code for tokens.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// r.FormValue works for both query params (GET) and form_post (POST)
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")
		errorDesc := r.FormValue("error_description")

		// Authorization endpoint errors are surfaced verbatim, no local interpretation
		if errorParam != "" {
			http.Error(w, fmt.Sprintf("Authorization failed: %s - %s", errorParam, errorDesc), http.StatusBadRequest)
			return
		}

		if code == "" || state == "" {
			http.Error(w, "Missing code or state parameter", http.StatusBadRequest)
			return
		}

		token, err := s.flow.Exchange(r.Context(), code, state)
		if err != nil {
			s.writeExchangeError(w, err)
			return
		}

		if s.onToken != nil {
			s.onToken(token)
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		fmt.Fprint(w, "<html><body><h1>Signed in</h1><p>Tokens received. You can close this window.</p></body></html>")
	}
}

func (s *Server) writeExchangeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, flow.ErrNoPendingAttempt):
		log.Err(err).Msg("Callback received with no pending attempt")
		http.Error(w, "No authorization attempt in progress: restart the sign-in flow", http.StatusBadRequest)
	case errors.Is(err, flow.ErrStateMismatch):
		log.Err(err).Msg("Callback state mismatch")
		http.Error(w, "Invalid state parameter: restart the sign-in flow", http.StatusBadRequest)
	default:
		log.Err(err).Msg("Token exchange failed")
		http.Error(w, "Token exchange failed: "+err.Error(), http.StatusBadGateway)
	}
}
