package fund

import (
	"errors"
	"fmt"
	"strings"

	"fundlimit/internal/provider"
)

// ErrNotFound 表示申购表中没有匹配的基金。
var ErrNotFound = errors.New("fund: 未找到匹配的基金代码")

// Table 是一次拉取得到的申购状态表快照。
type Table []provider.Record

// Lookup 按基金代码查找记录。先做精确匹配；失败时去掉两位
// 市场前缀，用剩余数字对表内代码做包含匹配，返回第一条命中。
func (t Table) Lookup(code string) (provider.Record, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return provider.Record{}, fmt.Errorf("%w: 代码为空", ErrNotFound)
	}

	for _, rec := range t {
		if rec.Code == code {
			return rec, nil
		}
	}

	numeric := code
	if len(code) > 2 {
		numeric = code[2:]
	}
	if numeric != "" {
		for _, rec := range t {
			if strings.Contains(rec.Code, numeric) {
				return rec, nil
			}
		}
	}

	return provider.Record{}, fmt.Errorf("%w: %s", ErrNotFound, code)
}
