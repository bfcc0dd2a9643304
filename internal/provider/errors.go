package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTable 表示数据源返回了空的申购状态表。
	ErrEmptyTable = errors.New("provider: 基金申购数据为空")
)

// StatusError 表示数据源返回了非 200 状态码。
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider: 数据源返回状态码 %d: %s", e.Code, e.Body)
}
