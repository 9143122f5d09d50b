package attemptrepo_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-pkce-client/flow/attemptrepo"
	"github.com/jrsteele09/go-pkce-client/pkce"
	"github.com/stretchr/testify/require"
)

func testAttempt(id, verifier string) *attemptrepo.Attempt {
	return &attemptrepo.Attempt{
		AttemptID:   id,
		Verifier:    verifier,
		Challenge:   "challenge-" + id,
		Method:      pkce.CodeMethodTypeS256,
		State:       "state-" + id,
		RedirectURI: "http://localhost:3000/callback",
		CreatedAt:   time.Now(),
	}
}

func TestLoadEmptySlotFailsClosed(t *testing.T) {
	repo := attemptrepo.NewInMemoryRepo()

	_, err := repo.Load()
	require.ErrorIs(t, err, attemptrepo.ErrNoAttempt)
}

func TestSaveAndLoad(t *testing.T) {
	repo := attemptrepo.NewInMemoryRepo()

	saved := testAttempt("attempt-1", "verifier-1")
	require.NoError(t, repo.Save(saved))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestSecondSaveOverwritesFirst(t *testing.T) {
	repo := attemptrepo.NewInMemoryRepo()

	require.NoError(t, repo.Save(testAttempt("attempt-1", "verifier-1")))
	require.NoError(t, repo.Save(testAttempt("attempt-2", "verifier-2")))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, "attempt-2", loaded.AttemptID)
	require.Equal(t, "verifier-2", loaded.Verifier)
}

func TestClear(t *testing.T) {
	repo := attemptrepo.NewInMemoryRepo()

	require.NoError(t, repo.Save(testAttempt("attempt-1", "verifier-1")))
	require.NoError(t, repo.Clear())

	_, err := repo.Load()
	require.ErrorIs(t, err, attemptrepo.ErrNoAttempt)
}

func TestSaveRejectsInvalidAttempts(t *testing.T) {
	repo := attemptrepo.NewInMemoryRepo()

	require.Error(t, repo.Save(nil))
	require.Error(t, repo.Save(&attemptrepo.Attempt{AttemptID: "attempt-1"}))
}

func TestLoadReturnsACopy(t *testing.T) {
	repo := attemptrepo.NewInMemoryRepo()
	require.NoError(t, repo.Save(testAttempt("attempt-1", "verifier-1")))

	first, err := repo.Load()
	require.NoError(t, err)
	first.Verifier = "mutated"

	second, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, "verifier-1", second.Verifier)
}
