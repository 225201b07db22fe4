package accounts

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/models"
	"profile-feed-api/app/server/testutil"
	"testing"
)

func TestRepository(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewRepository(db)

	account, err := NewFactory(db).CreateAccount(ctx, "repo@example.com", "Repo", "pass")
	require.NoError(t, err)

	t.Run("get", func(t *testing.T) {
		got, err := repo.Get(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, account.Email, got.Email)

		_, err = repo.Get(ctx, account.ID+100)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("find principal", func(t *testing.T) {
		p, err := repo.FindPrincipal(ctx, "email", "repo@example.com")
		require.NoError(t, err)
		assert.Equal(t, account.ID, p.Identify())

		_, err = repo.FindPrincipal(ctx, "email", "missing@example.com")
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		_, err = repo.FindPrincipal(ctx, "password", "x")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("rotate token key", func(t *testing.T) {
		require.NoError(t, repo.RotateTokenKey(ctx, account.ID))

		got, err := repo.Get(ctx, account.ID)
		require.NoError(t, err)
		assert.NotEqual(t, account.TokenKey, got.TokenKey)

		assert.ErrorIs(t, repo.RotateTokenKey(ctx, account.ID+100), apperr.ErrNotFound)
	})

	t.Run("set password", func(t *testing.T) {
		before, err := repo.Get(ctx, account.ID)
		require.NoError(t, err)

		require.NoError(t, repo.SetPassword(ctx, account.ID, "changed"))

		got, err := repo.Get(ctx, account.ID)
		require.NoError(t, err)
		assert.True(t, got.VerifyCredential("changed"))
		assert.False(t, got.VerifyCredential("pass"))
		assert.NotEqual(t, before.TokenKey, got.TokenKey)

		assert.ErrorIs(t, repo.SetPassword(ctx, account.ID+100, "x"), apperr.ErrNotFound)
	})

	t.Run("delete cascades", func(t *testing.T) {
		other, err := NewFactory(db).CreateAccount(ctx, "other@example.com", "Other", "pass")
		require.NoError(t, err)

		require.NoError(t, db.Create(&models.FeedItem{AccountID: account.ID, StatusText: "mine"}).Error)
		require.NoError(t, db.Create(&models.FeedItem{AccountID: other.ID, StatusText: "theirs"}).Error)

		require.NoError(t, repo.Delete(ctx, account.ID))

		_, err = repo.Get(ctx, account.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		var items []models.FeedItem
		require.NoError(t, db.Find(&items).Error)
		require.Len(t, items, 1)
		assert.Equal(t, other.ID, items[0].AccountID)

		assert.ErrorIs(t, repo.Delete(ctx, account.ID), apperr.ErrNotFound)

		// 邮箱重新可用
		_, err = NewFactory(db).CreateAccount(ctx, "repo@example.com", "Repo Again", "pass")
		assert.NoError(t, err)
	})
}
