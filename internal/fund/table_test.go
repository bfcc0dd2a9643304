package fund

import (
	"errors"
	"testing"
)

func TestTableLookup_ExactMatch(t *testing.T) {
	table := Table{
		{Code: "160119", Name: "南方中证500ETF联接"},
		{Code: "161725", Name: "招商中证白酒"},
	}

	rec, err := table.Lookup("161725")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if rec.Name != "招商中证白酒" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestTableLookup_PrefixFallback(t *testing.T) {
	table := Table{
		{Code: "160119", Name: "南方中证500ETF联接"},
	}

	// 带市场前缀的代码没有精确命中，去掉前缀后按数字包含匹配。
	rec, err := table.Lookup("sz160119")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if rec.Code != "160119" {
		t.Errorf("unexpected record code: %q", rec.Code)
	}
}

func TestTableLookup_FallbackFirstMatchWins(t *testing.T) {
	table := Table{
		{Code: "016011", Name: "first"},
		{Code: "160119", Name: "second"},
	}

	rec, err := table.Lookup("sh0160")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if rec.Name != "first" {
		t.Errorf("expected first containment match, got %+v", rec)
	}
}

func TestTableLookup_NotFound(t *testing.T) {
	table := Table{
		{Code: "160119"},
	}

	if _, err := table.Lookup("999999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTableLookup_EmptyInputs(t *testing.T) {
	if _, err := Table(nil).Lookup("160119"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty table, got %v", err)
	}

	table := Table{{Code: "160119"}}
	if _, err := table.Lookup("  "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on blank code, got %v", err)
	}
}
