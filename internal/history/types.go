package history

import "time"

// Query 记录一次限额查询的结果。
type Query struct {
	ID             int64     `json:"id"`
	FundCode       string    `json:"fund_code"`
	FundName       string    `json:"fund_name"`
	FundType       string    `json:"fund_type"`
	PurchaseStatus string    `json:"purchase_status"`
	LimitAmount    float64   `json:"limit_amount"`
	LimitText      string    `json:"limit_text"`
	CreatedAt      time.Time `json:"created_at"`
}
