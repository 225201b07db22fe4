package inits

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"profile-feed-api/app/server/config"
	"profile-feed-api/app/server/models"
	"profile-feed-api/app/server/testutil"
	"testing"
)

func TestInitData(t *testing.T) {
	db := testutil.NewDB(t)
	l := zaptest.NewLogger(t)
	ctx := context.Background()

	var cfg config.Config
	cfg.Bootstrap.AdminName = "Administrator"

	// 没有配置时什么也不做
	require.NoError(t, InitData(ctx, db, &cfg, l))
	var count int64
	require.NoError(t, db.Model(&models.Account{}).Count(&count).Error)
	assert.Zero(t, count)

	cfg.Bootstrap.AdminEmail = "Root@EXAMPLE.com"
	cfg.Bootstrap.AdminPassword = "admin-pass"
	require.NoError(t, InitData(ctx, db, &cfg, l))

	var admin models.Account
	require.NoError(t, db.First(&admin, "email = ?", "Root@example.com").Error)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsSuperuser)
	assert.True(t, admin.VerifyCredential("admin-pass"))

	// 再次启动时不会覆盖已有账号
	cfg.Bootstrap.AdminPassword = "changed"
	require.NoError(t, InitData(ctx, db, &cfg, l))
	require.NoError(t, db.Model(&models.Account{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, db.First(&admin, admin.ID).Error)
	assert.True(t, admin.VerifyCredential("admin-pass"))
}
