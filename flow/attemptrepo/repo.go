package attemptrepo

import (
	"time"

	"github.com/jrsteele09/go-pkce-client/pkce"
)

// Attempt carries the state of a single authorization attempt from the
// redirect to the token exchange. It is explicitly scoped: created by
// AuthorizationFlow.Begin, consumed (and cleared) by Exchange.
type Attempt struct {
	AttemptID   string
	Verifier    string
	Challenge   string
	Method      pkce.CodeMethodType
	State       string
	RedirectURI string
	CreatedAt   time.Time
}

// Repo persists at most one pending attempt. The store is a single fixed
// slot: Save replaces whatever is pending (last write wins), and Load on an
// empty slot must fail so the token exchange never runs without a verifier.
type Repo interface {
	Save(attempt *Attempt) error
	Load() (*Attempt, error)
	Clear() error
}
