package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nrednav/cuid2"
	"go.uber.org/zap"
	"log"
	"net/http"
	"os"
	"os/signal"
	"profile-feed-api/app/server/accounts"
	"profile-feed-api/app/server/apidocs"
	"profile-feed-api/app/server/apispec"
	"profile-feed-api/app/server/auth"
	"profile-feed-api/app/server/cache"
	"profile-feed-api/app/server/constants"
	"profile-feed-api/app/server/handlers"
	"profile-feed-api/app/server/inits"
	"profile-feed-api/app/server/jwt"
	"syscall"
	"time"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.IsProd())
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	l = l.Named("server")
	defer func() {
		_ = l.Sync()
	}()

	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg, l)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}
	if rdb == nil {
		l.Info("redis not configured, caller cache disabled")
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 初始化登录校验
	authn, err := auth.New(auth.Config{
		LoginField: constants.LoginField,
		Normalize:  accounts.NormalizeEmail,
	}, accounts.NewRepository(db))
	if err != nil {
		l.Fatal("error initializing authenticator", zap.Error(err))
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(l, db, cache.NewAccountCache(rdb, l), j, authn, cfg.Security.AuthTokenDuration)

	// 准备 echo 服务
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)

			return nil
		},
	}))
	e.Use(echoprometheus.NewMiddleware("profile_feed"))
	e.Use(middleware.Recover())

	// 绑定 echo 服务
	handlers.RegisterHandlers(e, handlerApp)

	// 添加 API 文档
	if !cfg.IsProd() {
		if swg, err := apispec.GetSwagger(); err != nil {
			l.Error("error initializing swagger", zap.Error(err))
		} else if doc, err := apidocs.Doc("/api", swg); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		} else {
			e.Pre(doc)
		}
	}

	// 启动指标服务
	if cfg.System.MetricsListen != "" {
		go func() {
			metrics := echo.New()
			metrics.HideBanner = true
			metrics.GET("/metrics", echoprometheus.NewHandler())
			if err := metrics.Start(cfg.System.MetricsListen); err != nil && !errors.Is(err, http.ErrServerClosed) {
				l.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	// 启动 echo 服务
	go func() {
		if err := e.Start(cfg.System.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		l.Error("error shutting down the server", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
