package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap"
	"log"
	"os"
	"profile-feed-api/app/manage/commands"
	"profile-feed-api/app/manage/config"
	"profile-feed-api/app/server/cache"
	"profile-feed-api/app/server/inits"
)

func main() {
	// 初始化配置
	cfg, err := config.Load(envconfig.OsLookuper())
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.IsProd())
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	l = l.Named("manage")

	// 初始化数据库连接
	db, err := inits.Open(cfg.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接，未配置时不清理缓存
	rdb, err := inits.Redis(cfg.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}
	if rdb == nil {
		l.Warn("REDIS_CONN not set, the server may accept revoked tokens until its caller cache expires")
	}

	// 执行子命令
	app := commands.NewApp(db, cache.NewAccountCache(rdb, l), l, os.Stdout, cfg.AdminPassword)
	err = app.Run(context.Background(), os.Args[1:])
	if rdb != nil {
		_ = rdb.Close()
	}
	if err != nil {
		_ = l.Sync()
		if errors.Is(err, commands.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		l.Fatal("command failed", zap.Error(err))
	}
}
