// Package flow drives the client side of the OAuth 2.0 Authorization Code
// flow with PKCE. Each authorization attempt moves through two states:
// Begin puts an attempt in flight (Idle -> Pending) and Exchange completes
// it (Pending -> Completed). At most one attempt is pending at a time; a
// second Begin overwrites the first.
package flow

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-pkce-client/flow/attemptrepo"
	"github.com/jrsteele09/go-pkce-client/pkce"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	defaultVerifierLength  = 64
	defaultStateByteLength = 16
)

// AuthorizationFlow builds authorization requests and exchanges
// authorization codes for tokens, binding the two legs together with a
// PKCE verifier held in the attempt repository.
type AuthorizationFlow struct {
	oauth           *oauth2.Config   // Client credentials and endpoints
	attempts        attemptrepo.Repo // Single-slot verifier persistence
	digestProbe     pkce.DigestProbe // Capability probe for the S256 digest
	allowPlain      bool             // Opt-in plain challenge degradation
	verifierLength  int              // Characters drawn for each verifier
	stateByteLength int              // Entropy bytes behind each state value
	httpClient      *http.Client     // Overrides the token request transport
	nowTime         func() time.Time // nowTime function (injectable for testing)
}

// AuthorizationFlowOption defines a function type to modify the AuthorizationFlow instance.
type AuthorizationFlowOption func(*AuthorizationFlow)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) AuthorizationFlowOption {
	return func(f *AuthorizationFlow) {
		f.nowTime = nowFunc
	}
}

// WithHTTPClient sets the HTTP client used for the token exchange.
func WithHTTPClient(client *http.Client) AuthorizationFlowOption {
	return func(f *AuthorizationFlow) {
		f.httpClient = client
	}
}

// WithDigestProbe replaces the digest capability probe (primarily for
// testing constrained contexts).
func WithDigestProbe(probe pkce.DigestProbe) AuthorizationFlowOption {
	return func(f *AuthorizationFlow) {
		f.digestProbe = probe
	}
}

// WithPlainFallback enables the plain-text challenge when the digest probe
// reports unavailable. This downgrades security: the challenge equals the
// verifier. Without this option an unavailable digest fails Begin.
func WithPlainFallback() AuthorizationFlowOption {
	return func(f *AuthorizationFlow) {
		f.allowPlain = true
	}
}

// WithVerifierLength sets the number of characters drawn for each verifier.
func WithVerifierLength(length int) AuthorizationFlowOption {
	return func(f *AuthorizationFlow) {
		f.verifierLength = length
	}
}

// WithStateByteLength sets the entropy, in bytes, behind each state value.
func WithStateByteLength(length int) AuthorizationFlowOption {
	return func(f *AuthorizationFlow) {
		f.stateByteLength = length
	}
}

// NewAuthorizationFlow initializes an AuthorizationFlow with required dependencies.
// Optional configuration can be provided via options (e.g., WithNowTime for testing).
func NewAuthorizationFlow(
	oauthConfig *oauth2.Config,
	attempts attemptrepo.Repo,
	options ...AuthorizationFlowOption,
) (*AuthorizationFlow, error) {
	// Validate required parameters
	if oauthConfig == nil {
		return nil, errors.New("[NewAuthorizationFlow] oauth config is required")
	}
	if oauthConfig.ClientID == "" {
		return nil, errors.New("[NewAuthorizationFlow] client ID is required")
	}
	if oauthConfig.RedirectURL == "" {
		return nil, errors.New("[NewAuthorizationFlow] redirect URL is required")
	}
	if oauthConfig.Endpoint.AuthURL == "" || oauthConfig.Endpoint.TokenURL == "" {
		return nil, errors.New("[NewAuthorizationFlow] authorization and token endpoints are required")
	}
	if attempts == nil {
		return nil, errors.New("[NewAuthorizationFlow] attempts repo is required")
	}

	authFlow := &AuthorizationFlow{
		oauth:           oauthConfig,
		attempts:        attempts,
		digestProbe:     pkce.DefaultDigestProbe,
		verifierLength:  defaultVerifierLength,
		stateByteLength: defaultStateByteLength,
		nowTime:         time.Now,
	}

	// Apply optional configuration
	for _, opt := range options {
		opt(authFlow)
	}

	return authFlow, nil
}

// Begin starts an authorization attempt: it generates a fresh verifier,
// derives the challenge, persists the attempt, and returns it together with
// the URL the user agent must be sent to. Any previously pending attempt is
// overwritten.
func (f *AuthorizationFlow) Begin(ctx context.Context) (*attemptrepo.Attempt, string, error) {
	verifier, err := pkce.GenerateVerifier(f.verifierLength)
	if err != nil {
		return nil, "", errors.Wrap(err, "[Begin] pkce.GenerateVerifier")
	}

	state, err := pkce.GenerateState(f.stateByteLength)
	if err != nil {
		return nil, "", errors.Wrap(err, "[Begin] pkce.GenerateState")
	}

	attemptID := uuid.New().String()

	challenge, method, err := f.deriveChallenge(attemptID, verifier)
	if err != nil {
		return nil, "", errors.Wrap(err, "[Begin] deriveChallenge")
	}

	params := &AuthorizationParameters{
		ClientID:            f.oauth.ClientID,
		ResponseType:        CodeResponseType,
		RedirectURI:         f.oauth.RedirectURL,
		Scope:               joinScopes(f.oauth.Scopes),
		State:               state,
		CodeChallenge:       challenge,
		CodeChallengeMethod: method,
	}
	if err := params.Validate(); err != nil {
		return nil, "", errors.Wrap(err, "[Begin] failed parameter validation")
	}

	attempt := &attemptrepo.Attempt{
		AttemptID:   attemptID,
		Verifier:    verifier,
		Challenge:   challenge,
		Method:      method,
		State:       state,
		RedirectURI: f.oauth.RedirectURL,
		CreatedAt:   f.nowTime(),
	}
	if err := f.attempts.Save(attempt); err != nil {
		return nil, "", errors.Wrap(err, "[Begin] failed to save attempt")
	}

	authURL := f.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", challenge),
		oauth2.SetAuthURLParam("code_challenge_method", string(method)),
	)

	return attempt, authURL, nil
}

// Exchange completes the pending attempt by exchanging the authorization
// code for tokens. The verifier is loaded from the attempt repository; if
// none is pending the exchange fails closed without contacting the token
// endpoint. A non-success response from the token endpoint is surfaced
// as-is (wrapped, with the provider's error body intact) with no retry.
func (f *AuthorizationFlow) Exchange(ctx context.Context, code, state string) (*oauth2.Token, error) {
	attempt, err := f.attempts.Load()
	if err != nil {
		if errors.Is(err, attemptrepo.ErrNoAttempt) {
			return nil, ErrNoPendingAttempt
		}
		return nil, errors.Wrap(err, "[Exchange] attempts.Load")
	}

	if state != attempt.State {
		return nil, ErrStateMismatch
	}

	params := &TokenParameters{
		ClientID:     f.oauth.ClientID,
		GrantType:    AuthorizationCodeGrant,
		Code:         code,
		RedirectURI:  attempt.RedirectURI,
		CodeVerifier: attempt.Verifier,
	}
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "[Exchange] failed parameter validation")
	}

	// The attempt is one-shot: clear it before the exchange so a failed
	// exchange forces a full restart rather than a replay.
	if err := f.attempts.Clear(); err != nil {
		return nil, errors.Wrap(err, "[Exchange] attempts.Clear")
	}

	if f.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
	}

	token, err := f.oauth.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", attempt.Verifier),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[Exchange] token endpoint")
	}

	return token, nil
}

func (f *AuthorizationFlow) deriveChallenge(attemptID, verifier string) (string, pkce.CodeMethodType, error) {
	capability := f.digestProbe()
	if capability == pkce.DigestAvailable {
		challenge, err := pkce.DeriveChallenge(verifier, capability)
		if err != nil {
			return "", "", err
		}
		return challenge, pkce.CodeMethodTypeS256, nil
	}

	if !f.allowPlain {
		return "", "", ErrPlainFallbackDisabled
	}

	log.Warn().
		Str("attempt_id", attemptID).
		Msg("Digest unavailable: degrading to plain code challenge, verifier is sent in clear")

	challenge, err := pkce.PlainChallenge(verifier)
	if err != nil {
		return "", "", err
	}
	return challenge, pkce.CodeMethodTypeNone, nil
}

func joinScopes(scopes []string) string {
	return strings.Join(scopes, " ")
}
