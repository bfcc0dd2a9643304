package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"fundlimit/internal/app"
	"fundlimit/internal/config"
	"fundlimit/internal/fund"
	"fundlimit/internal/log"
	"fundlimit/internal/provider"
	"fundlimit/internal/store"
)

func main() {
	var configPath string
	var code string
	flag.StringVar(&configPath, "config", "", "配置文件路径，默认使用 configs/config.yaml")
	flag.StringVar(&code, "code", "", "单次查询的基金代码，查询后立即退出")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 单次查询模式不需要数据库，直接走数据源。
	if code != "" {
		client := provider.NewClient(cfg.Provider, logger)
		limitSvc := fund.NewService(client, logger)

		text, ok := limitSvc.LimitText(ctx, code)
		if !ok {
			os.Exit(1)
		}
		fmt.Println(text)
		return
	}

	sqliteStore, err := store.NewSQLite(cfg.Database)
	if err != nil {
		logger.Error("初始化数据库失败", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if closeErr := sqliteStore.Close(); closeErr != nil {
			logger.Warn("关闭数据库失败", zap.Error(closeErr))
		}
	}()

	limitApp := app.New(cfg, logger, sqliteStore)

	if err := limitApp.Run(ctx); err != nil {
		logger.Error("系统运行异常", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("系统已安全退出")
}
