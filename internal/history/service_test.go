package history

import (
	"context"
	"testing"

	"fundlimit/internal/config"
	"fundlimit/internal/fund"
	"fundlimit/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	st, err := store.NewSQLite(config.DatabaseConfig{
		InMemory:     true,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Fatalf("NewSQLite returned error: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	svc, err := NewService(st, nil)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestRecordAndListRecent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	svc.RecordLookup(ctx, "160119", &fund.LimitInfo{
		FundName:       "南方中证500ETF联接",
		FundType:       "指数型-股票",
		PurchaseStatus: "暂停申购",
	}, "暂停")
	svc.RecordLookup(ctx, "161725", &fund.LimitInfo{
		FundName:       "招商中证白酒",
		FundType:       "指数型-股票",
		PurchaseStatus: "开放申购",
		LimitAmount:    20000,
	}, "限2万")

	all, err := svc.ListRecent(ctx, "", 10)
	if err != nil {
		t.Fatalf("ListRecent returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unexpected row count: got %d want 2", len(all))
	}
	// 最新的记录排在最前。
	if all[0].FundCode != "161725" {
		t.Errorf("expected newest record first, got %q", all[0].FundCode)
	}

	filtered, err := svc.ListRecent(ctx, "160119", 10)
	if err != nil {
		t.Fatalf("ListRecent returned error: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("unexpected filtered count: got %d want 1", len(filtered))
	}
	row := filtered[0]
	if row.LimitText != "暂停" || row.PurchaseStatus != "暂停申购" {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.CreatedAt.IsZero() {
		t.Errorf("expected created_at to be populated")
	}
}

func TestRecordLookup_NilInfoIgnored(t *testing.T) {
	svc := newTestService(t)

	svc.RecordLookup(context.Background(), "160119", nil, "")

	rows, err := svc.ListRecent(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("ListRecent returned error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows for nil info, got %d", len(rows))
	}
}
