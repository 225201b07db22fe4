package inits

import (
	"context"
	"fmt"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"profile-feed-api/app/server/accounts"
	"profile-feed-api/app/server/config"
	"profile-feed-api/app/server/models"
)

func DB(cfg *config.Config, l *zap.Logger) (db *gorm.DB, err error) {
	// 打开连接
	if db, err = Open(cfg.System.DBConnectionString); err != nil {
		return nil, err
	}

	// 迁移
	if err = Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 初始化启动数据
	if err = InitData(context.Background(), db, cfg, l); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	// 返回
	return db, nil
}

// Open 只打开连接，不做迁移
func Open(conn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(conn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// InitData 在配置了初始管理员且该邮箱还没有账号时创建管理员
func InitData(ctx context.Context, db *gorm.DB, cfg *config.Config, l *zap.Logger) (err error) {
	if !cfg.HasBootstrapAdmin() {
		l.Debug("no bootstrap admin configured")
		return nil
	}

	email := accounts.NormalizeEmail(cfg.Bootstrap.AdminEmail)

	// 查询现有记录
	taken, err := accounts.EmailTaken(db.WithContext(ctx), email, 0)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	} else if taken {
		// 已有账号，不覆盖
		return nil
	}

	// 插入记录
	admin, err := accounts.NewFactory(db).CreateAdministrator(ctx, email, cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	l.Info("bootstrap admin created", zap.Uint("id", admin.ID), zap.String("email", admin.Email), zap.String("name", admin.FullName()))
	return nil
}
