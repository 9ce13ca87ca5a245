package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/numerology/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	t.Helper()
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		s := domain.NewSession(sessionID)
		s.Store(domain.ResultSet{LifePath: 5, Destiny: 8, Soul: 6, Personality: 11, Birthday: 6, Maturity: 4})
		s.SwitchMode(domain.ModeDetail)

		require.NoError(t, store.Save(ctx, sessionID, s))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, sessionID, loaded.ID)
		assert.Equal(t, domain.ModeDetail, loaded.Mode)
		require.NotNil(t, loaded.Result)
		assert.Equal(t, *s.Result, *loaded.Result)
	})

	t.Run("Save Without Result", func(t *testing.T) {
		id := sessionID + "-empty"
		require.NoError(t, store.Save(ctx, id, domain.NewSession(id)))
		defer func() { _ = store.Delete(ctx, id) }()

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, loaded.Result)
		assert.Equal(t, domain.DefaultMode, loaded.Mode)
	})

	t.Run("Loaded Copy Is Independent", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		require.NotNil(t, loaded.Result)
		loaded.Result.Destiny = 1
		loaded.Mode = domain.ModeBrief

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 8, again.Result.Destiny)
		assert.Equal(t, domain.ModeDetail, again.Mode)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewSession(sessionID)))
		require.NoError(t, store.Delete(ctx, sessionID))

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Delete of a missing session")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewSession(id1)))
		require.NoError(t, store.Save(ctx, id2, domain.NewSession(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
