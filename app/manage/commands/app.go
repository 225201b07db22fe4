// Package commands 实现维护用的命令行子命令
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"io"
	"profile-feed-api/app/server/accounts"
	"profile-feed-api/app/server/cache"
	"sort"
	"strings"
)

var ErrUsage = errors.New("usage error")

type command struct {
	help string
	run  func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"migrate":         {"create or update the database tables", (*App).Migrate},
	"createsuperuser": {"create an account with staff and superuser flags", (*App).CreateSuperuser},
	"changepassword":  {"set a new password and revoke existing tokens", (*App).ChangePassword},
}

type App struct {
	db  *gorm.DB
	l   *zap.Logger
	out io.Writer

	cache *cache.AccountCache // 服务端的调用者缓存

	adminPassword string // -password 的默认值

	accounts *accounts.Repository
	factory  *accounts.Factory
}

func NewApp(db *gorm.DB, ac *cache.AccountCache, l *zap.Logger, out io.Writer, adminPassword string) *App {
	return &App{
		db:            db,
		l:             l,
		out:           out,
		cache:         ac,
		adminPassword: adminPassword,

		accounts: accounts.NewRepository(db),
		factory:  accounts.NewFactory(db),
	}
}

// Run 按第一个参数分派子命令
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}

	cmd, ok := commands[args[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	return cmd.run(a, ctx, args[1:])
}

func (a *App) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: manage <command> [flags]\n\ncommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-16s %s\n", name, commands[name].help)
	}
	_, _ = io.WriteString(a.out, b.String())
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// parse 解析参数，并要求 required 中的参数都不为空
func parse(fs *flag.FlagSet, args []string, values map[string]*string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	for _, name := range required {
		if strings.TrimSpace(*values[name]) == "" {
			return fmt.Errorf("%w: -%s is required", ErrUsage, name)
		}
	}
	return nil
}
