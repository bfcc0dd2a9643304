package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fundlimit/internal/fund"
	"fundlimit/internal/store"
)

// Service 负责持久化限额查询记录。
type Service struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewService 初始化查询历史服务，创建所需表结构。
func NewService(store *store.Store, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("history: store 不能为空")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		db:     store.DB(),
		logger: logger,
	}

	if err := s.initSchema(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Service) initSchema() error {
	stmt := `
CREATE TABLE IF NOT EXISTS limit_queries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	fund_code TEXT NOT NULL,
	fund_name TEXT NOT NULL,
	fund_type TEXT NOT NULL,
	purchase_status TEXT NOT NULL,
	limit_amount REAL NOT NULL,
	limit_text TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_limit_queries_code ON limit_queries(fund_code);
`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("history: 初始化表失败: %w", err)
	}
	return nil
}

// Record 写入单条查询记录。
func (s *Service) Record(ctx context.Context, q Query) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO limit_queries
			(fund_code, fund_name, fund_type, purchase_status, limit_amount, limit_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.FundCode, q.FundName, q.FundType, q.PurchaseStatus, q.LimitAmount, q.LimitText,
		q.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("history: 写入查询记录失败: %w", err)
	}

	return nil
}

// RecordLookup 记录一次成功解析的限额查询，失败只打日志。
func (s *Service) RecordLookup(ctx context.Context, code string, info *fund.LimitInfo, text string) {
	if info == nil {
		return
	}
	if err := s.Record(ctx, Query{
		FundCode:       code,
		FundName:       info.FundName,
		FundType:       info.FundType,
		PurchaseStatus: info.PurchaseStatus,
		LimitAmount:    info.LimitAmount,
		LimitText:      text,
	}); err != nil {
		s.logger.Warn("记录限额查询失败", zap.String("code", code), zap.Error(err))
	}
}

// ListRecent 返回最近的查询记录，code 为空时不过滤。
func (s *Service) ListRecent(ctx context.Context, code string, limit int) ([]Query, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, fund_code, fund_name, fund_type, purchase_status, limit_amount, limit_text, created_at
		FROM limit_queries`
	args := make([]interface{}, 0, 2)
	if code != "" {
		query += ` WHERE fund_code = ?`
		args = append(args, code)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: 查询记录失败: %w", err)
	}
	defer rows.Close()

	var results []Query
	for rows.Next() {
		var q Query
		var createdAt string
		if err := rows.Scan(&q.ID, &q.FundCode, &q.FundName, &q.FundType,
			&q.PurchaseStatus, &q.LimitAmount, &q.LimitText, &createdAt); err != nil {
			return nil, fmt.Errorf("history: 扫描记录失败: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			q.CreatedAt = ts
		}
		results = append(results, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: 遍历记录失败: %w", err)
	}

	return results, nil
}
