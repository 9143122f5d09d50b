package flow

import "errors"

var (
	ErrMissingClientID            = errors.New("client_id is required")
	ErrMissingRedirectURI         = errors.New("redirect_uri is required")
	ErrInvalidResponseType        = errors.New("response_type must be code")
	ErrInvalidGrantType           = errors.New("grant_type must be authorization_code")
	ErrMissingCodeChallenge       = errors.New("code_challenge is required")
	ErrInvalidCodeChallengeMethod = errors.New("code_challenge_method must be S256 or plain")
	ErrMissingAuthorizationCode   = errors.New("authorization code is missing")
	ErrNoPendingAttempt           = errors.New("no pending authorization attempt: restart the authorization flow")
	ErrStateMismatch              = errors.New("state does not match the pending authorization attempt")
	ErrPlainFallbackDisabled      = errors.New("digest unavailable and plain challenge fallback is not enabled")
)
