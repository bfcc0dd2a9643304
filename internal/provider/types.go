package provider

import (
	"strconv"
	"strings"
)

const (
	// StatusSuspended 表示基金暂停申购。
	StatusSuspended = "暂停申购"
	// StatusOpen 表示基金开放申购。
	StatusOpen = "开放申购"
)

// Record 代表申购状态表中的一行基金记录。
type Record struct {
	Code           string
	Name           string
	Type           string
	PurchaseStatus string
	RedeemStatus   string
	NAV            float64
	DailyLimit     float64
}

// wireRecord 是数据源返回的原始行，字段均为字符串。
type wireRecord struct {
	Code           string `json:"FCODE"`
	Name           string `json:"SHORTNAME"`
	Type           string `json:"FTYPE"`
	PurchaseStatus string `json:"SGZT"`
	RedeemStatus   string `json:"SHZT"`
	NAV            string `json:"DWJZ"`
	DailyLimit     string `json:"MAXSG"`
}

// wirePage 是分页响应的外层结构。
type wirePage struct {
	Datas      []wireRecord `json:"datas"`
	AllRecords int          `json:"allRecords"`
	AllPages   int          `json:"allPages"`
	PageIndex  int          `json:"pageIndex"`
}

func (w wireRecord) toRecord() Record {
	return Record{
		Code:           strings.TrimSpace(w.Code),
		Name:           strings.TrimSpace(w.Name),
		Type:           strings.TrimSpace(w.Type),
		PurchaseStatus: strings.TrimSpace(w.PurchaseStatus),
		RedeemStatus:   strings.TrimSpace(w.RedeemStatus),
		NAV:            parseAmount(w.NAV),
		DailyLimit:     parseAmount(w.DailyLimit),
	}
}

// parseAmount 宽松地把数据源的金额字符串转成数字。
// 空串、占位符和千分位分隔符都按 0 或剔除处理。
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" || s == "--" || s == "---" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
