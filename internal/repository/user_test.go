package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omok-labs/gomoku-backend/internal/apperror"
	"github.com/omok-labs/gomoku-backend/internal/entity"
)

func TestUserRepository(t *testing.T) {
	t.Run("Save and find round-trip", func(t *testing.T) {
		ctx, st := newTestSQLite(t)

		userRepo := NewUserRepository(st.Connection)

		user := &entity.User{Email: "player@example.com"}
		require.NoError(t, userRepo.Save(ctx, user))

		found, err := userRepo.Find(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user, found)
	})

	t.Run("Saving the same email twice is idempotent", func(t *testing.T) {
		ctx, st := newTestSQLite(t)

		userRepo := NewUserRepository(st.Connection)

		user := &entity.User{Email: "player@example.com"}
		require.NoError(t, userRepo.Save(ctx, user))
		require.NoError(t, userRepo.Save(ctx, user))

		found, err := userRepo.Find(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user, found)
	})

	t.Run("Find returns ErrNotFound for an unknown email", func(t *testing.T) {
		ctx, st := newTestSQLite(t)

		userRepo := NewUserRepository(st.Connection)

		_, err := userRepo.Find(ctx, "nobody@example.com")
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
