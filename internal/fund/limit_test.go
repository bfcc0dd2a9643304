package fund

import (
	"context"
	"errors"
	"testing"

	"fundlimit/internal/provider"
)

type mockProvider struct {
	records []provider.Record
	err     error
}

func (m *mockProvider) FetchPurchaseTable(_ context.Context) ([]provider.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func sampleTable() []provider.Record {
	return []provider.Record{
		{Code: "160119", Name: "南方中证500ETF联接", Type: "指数型-股票", PurchaseStatus: "暂停申购", DailyLimit: 0},
		{Code: "161725", Name: "招商中证白酒", Type: "指数型-股票", PurchaseStatus: "开放申购", DailyLimit: 20000},
		{Code: "005827", Name: "易方达蓝筹精选", Type: "混合型-偏股", PurchaseStatus: "开放申购", DailyLimit: 500},
		{Code: "110011", Name: "易方达优质精选", Type: "混合型-偏股", PurchaseStatus: "开放申购", DailyLimit: 0},
	}
}

func TestLimitText_SuspendedFund(t *testing.T) {
	svc := NewService(&mockProvider{records: sampleTable()}, nil)

	text, ok := svc.LimitText(context.Background(), "160119")
	if !ok {
		t.Fatalf("LimitText returned ok=false")
	}
	if text != "暂停" {
		t.Errorf("unexpected text: got %q want %q", text, "暂停")
	}
}

func TestLimitText_LimitInTenThousands(t *testing.T) {
	svc := NewService(&mockProvider{records: sampleTable()}, nil)

	text, ok := svc.LimitText(context.Background(), "161725")
	if !ok {
		t.Fatalf("LimitText returned ok=false")
	}
	if text != "限2万" {
		t.Errorf("unexpected text: got %q want %q", text, "限2万")
	}
}

func TestLimitText_SmallLimit(t *testing.T) {
	svc := NewService(&mockProvider{records: sampleTable()}, nil)

	text, ok := svc.LimitText(context.Background(), "005827")
	if !ok {
		t.Fatalf("LimitText returned ok=false")
	}
	if text != "限500" {
		t.Errorf("unexpected text: got %q want %q", text, "限500")
	}
}

func TestLimitText_NoLimit(t *testing.T) {
	svc := NewService(&mockProvider{records: sampleTable()}, nil)

	text, ok := svc.LimitText(context.Background(), "110011")
	if !ok {
		t.Fatalf("LimitText returned ok=false")
	}
	if text != "" {
		t.Errorf("expected empty text for unrestricted fund, got %q", text)
	}
}

func TestLimitText_EmptyTable(t *testing.T) {
	svc := NewService(&mockProvider{err: provider.ErrEmptyTable}, nil)

	if text, ok := svc.LimitText(context.Background(), "160119"); ok || text != "" {
		t.Errorf("expected absence on empty table, got (%q, %v)", text, ok)
	}
}

func TestLimitText_CodeMissing(t *testing.T) {
	svc := NewService(&mockProvider{records: sampleTable()}, nil)

	if text, ok := svc.LimitText(context.Background(), "999999"); ok || text != "" {
		t.Errorf("expected absence on missing code, got (%q, %v)", text, ok)
	}
}

func TestExtractLimitInfo_FieldMapping(t *testing.T) {
	svc := NewService(&mockProvider{records: sampleTable()}, nil)

	info, err := svc.ExtractLimitInfo(context.Background(), "161725")
	if err != nil {
		t.Fatalf("ExtractLimitInfo returned error: %v", err)
	}
	if info.FundName != "招商中证白酒" {
		t.Errorf("unexpected fund name: %q", info.FundName)
	}
	if info.FundType != "指数型-股票" {
		t.Errorf("unexpected fund type: %q", info.FundType)
	}
	if info.PurchaseStatus != "开放申购" {
		t.Errorf("unexpected purchase status: %q", info.PurchaseStatus)
	}
	if info.LimitAmount != 20000 {
		t.Errorf("unexpected limit amount: %f", info.LimitAmount)
	}
}

func TestExtractLimitInfo_NotFound(t *testing.T) {
	svc := NewService(&mockProvider{records: sampleTable()}, nil)

	if _, err := svc.ExtractLimitInfo(context.Background(), "999999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFormatLimit(t *testing.T) {
	cases := []struct {
		name   string
		status string
		amount float64
		want   string
	}{
		{"suspended", "暂停申购", 0, "暂停"},
		{"suspended overrides amount", "暂停申购", 20000, "暂停"},
		{"ten thousands", "开放申购", 20000, "限2万"},
		{"large limit", "开放申购", 1200000, "限120万"},
		{"exactly ten thousand", "开放申购", 10000, "限1万"},
		{"raw amount", "开放申购", 500, "限500"},
		{"below ten thousand", "开放申购", 9999, "限9999"},
		{"no limit", "正常申购", 0, ""},
		{"open without limit", "开放申购", 0, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatLimit(tc.status, tc.amount); got != tc.want {
				t.Errorf("FormatLimit(%q, %v) = %q, want %q", tc.status, tc.amount, got, tc.want)
			}
		})
	}
}
