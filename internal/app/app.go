package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fundlimit/internal/config"
	"fundlimit/internal/fund"
	"fundlimit/internal/history"
	"fundlimit/internal/provider"
	"fundlimit/internal/store"
)

// App 聚合核心依赖并驱动系统生命周期。
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

// New 创建 App 实例。
func New(cfg *config.Config, logger *zap.Logger, store *store.Store) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		store:  store,
	}
}

// Run 启动限额跟踪循环与查询接口，阻塞到收到退出信号。
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("基金限额服务已初始化",
		zap.String("environment", a.cfg.App.Environment),
		zap.String("provider", a.cfg.Provider.BaseURL),
		zap.Strings("codes", a.cfg.Fund.Codes),
	)

	client := provider.NewClient(a.cfg.Provider, a.logger)
	limitSvc := fund.NewService(client, a.logger)

	histSvc, err := history.NewService(a.store, a.logger)
	if err != nil {
		return fmt.Errorf("初始化查询历史服务失败: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	if a.cfg.Server.Enabled {
		group.Go(func() error {
			return runQueryServer(groupCtx, limitSvc, histSvc, a.cfg.Server.Port, a.logger)
		})
	}

	group.Go(func() error {
		return a.watch(groupCtx, client, histSvc)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	a.logger.Info("系统收到退出信号，正在停止")
	return nil
}

// watch 按配置的节奏刷新申购表，解析每只跟踪基金的限额。
func (a *App) watch(ctx context.Context, client *provider.Client, hist *history.Service) error {
	refreshInterval := a.cfg.Scheduler.RefreshInterval
	if refreshInterval <= 0 {
		refreshInterval = 30 * time.Minute
	}

	a.refreshOnce(ctx, client, hist)

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			a.refreshOnce(ctx, client, hist)
		}
	}
}

// refreshOnce 拉取一次申购表并解析所有跟踪代码。
// 拉取或匹配失败只记录日志，不会中断循环。
func (a *App) refreshOnce(ctx context.Context, client *provider.Client, hist *history.Service) {
	if len(a.cfg.Fund.Codes) == 0 {
		return
	}

	records, err := client.FetchPurchaseTable(ctx)
	if err != nil {
		a.logger.Warn("刷新申购状态表失败", zap.Error(err))
		return
	}

	table := fund.Table(records)
	for _, code := range a.cfg.Fund.Codes {
		rec, err := table.Lookup(code)
		if err != nil {
			a.logger.Warn("申购表中未找到跟踪基金",
				zap.String("code", code),
				zap.Error(err),
			)
			continue
		}

		info := fund.InfoFromRecord(rec)
		text := fund.FormatLimit(info.PurchaseStatus, info.LimitAmount)

		a.logger.Info("基金限额",
			zap.String("code", code),
			zap.String("name", info.FundName),
			zap.String("status", info.PurchaseStatus),
			zap.String("text", text),
		)

		hist.RecordLookup(ctx, code, info, text)
	}
}
