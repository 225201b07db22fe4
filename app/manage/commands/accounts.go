package commands

import (
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"profile-feed-api/app/server/accounts"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/constants"
	"profile-feed-api/app/server/inits"
)

func (a *App) Migrate(_ context.Context, args []string) error {
	fs := a.flagSet("migrate")
	if err := parse(fs, args, nil); err != nil {
		return err
	}

	if err := inits.Migrate(a.db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	a.l.Info("database migrated")
	return nil
}

func (a *App) CreateSuperuser(ctx context.Context, args []string) error {
	fs := a.flagSet("createsuperuser")
	values := map[string]*string{
		"email":    fs.String("email", "", "login email"),
		"name":     fs.String("name", "Administrator", "display name"),
		"password": fs.String("password", a.adminPassword, "password, defaults to $ADMIN_PASSWORD"),
	}
	if err := parse(fs, args, values, "email", "name", "password"); err != nil {
		return err
	}

	admin, err := a.factory.CreateAdministrator(ctx, *values["email"], *values["name"], *values["password"])
	if err != nil {
		return fmt.Errorf("create superuser: %w", err)
	}

	a.l.Info("superuser created", zap.Uint("id", admin.ID), zap.String("email", admin.Email))
	_, _ = fmt.Fprintf(a.out, "created superuser %d %s <%s>\n", admin.ID, admin.FullName(), admin.Email)
	return nil
}

func (a *App) ChangePassword(ctx context.Context, args []string) error {
	fs := a.flagSet("changepassword")
	values := map[string]*string{
		"email":    fs.String("email", "", "login email"),
		"password": fs.String("password", "", "new password"),
	}
	if err := parse(fs, args, values, "email", "password"); err != nil {
		return err
	}

	email := accounts.NormalizeEmail(*values["email"])
	principal, err := a.accounts.FindPrincipal(ctx, constants.LoginField, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("no account with email %q", email)
		}
		return err
	}

	if err = a.accounts.SetPassword(ctx, principal.Identify(), *values["password"]); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	// 服务端缓存里还是旧的令牌密钥，清理后旧令牌才会失效
	a.cache.Del(ctx, principal.Identify())

	a.l.Info("password changed", zap.Uint("id", principal.Identify()))
	_, _ = fmt.Fprintf(a.out, "password changed for <%s>\n", email)
	return nil
}
