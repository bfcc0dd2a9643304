package fund

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fundlimit/internal/provider"
)

// Provider 抽象申购状态表的数据来源。
type Provider interface {
	FetchPurchaseTable(ctx context.Context) ([]provider.Record, error)
}

// LimitInfo 聚合单只基金的申购限额信息。
type LimitInfo struct {
	LimitAmount    float64 `json:"limit_amount"`
	PurchaseStatus string  `json:"purchase_status"`
	FundType       string  `json:"fund_type"`
	FundName       string  `json:"fund_name"`
}

// Service 提供基金限额查询与展示文本格式化。
type Service struct {
	provider Provider
	logger   *zap.Logger
}

// NewService 构造限额查询服务。
func NewService(p Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: p, logger: logger}
}

// ExtractLimitInfo 拉取申购表并提取指定基金的限额信息。
func (s *Service) ExtractLimitInfo(ctx context.Context, code string) (*LimitInfo, error) {
	records, err := s.provider.FetchPurchaseTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取基金申购数据失败: %w", err)
	}

	rec, err := Table(records).Lookup(code)
	if err != nil {
		return nil, err
	}

	return InfoFromRecord(rec), nil
}

// InfoFromRecord 从申购表记录提取限额信息。
func InfoFromRecord(rec provider.Record) *LimitInfo {
	return &LimitInfo{
		LimitAmount:    rec.DailyLimit,
		PurchaseStatus: rec.PurchaseStatus,
		FundType:       rec.Type,
		FundName:       rec.Name,
	}
}

// LimitText 返回基金限额的展示文本。任何失败都会被记录日志
// 并转换成 ok=false，调用方无需处理错误。空串本身是合法结果，
// 表示该基金不限额。
func (s *Service) LimitText(ctx context.Context, code string) (string, bool) {
	info, err := s.ExtractLimitInfo(ctx, code)
	if err != nil {
		s.logger.Warn("获取基金限额信息失败",
			zap.String("code", code),
			zap.Error(err),
		)
		return "", false
	}
	return FormatLimit(info.PurchaseStatus, info.LimitAmount), true
}

// FormatLimit 根据申购状态和日累计限额生成展示文本。
// 暂停申购显示"暂停"；有限额时金额达到一万按万为单位显示，
// 否则显示原始金额；不限额返回空串。
func FormatLimit(status string, amount float64) string {
	if status == provider.StatusSuspended {
		return "暂停"
	}
	if amount > 0 {
		if amount >= 10000 {
			return fmt.Sprintf("限%.0f万", amount/10000)
		}
		return fmt.Sprintf("限%.0f", amount)
	}
	return ""
}
