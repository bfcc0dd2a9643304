package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"fundlimit/internal/config"
)

const (
	purchaseTablePath = "/api/Dtshph.ashx"

	// maxPages 限制单次拉取的分页数量，避免数据源异常时无限翻页。
	maxPages = 200
)

// Client 负责从东方财富的申购状态接口拉取全量基金申购表。
type Client struct {
	cfg        config.ProviderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient 构造申购数据客户端，支持可选代理。
func NewClient(cfg config.ProviderConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := &http.Transport{}
	if cfg.Proxy != "" {
		if u, err := url.Parse(cfg.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger,
	}
}

// FetchPurchaseTable 拉取完整的基金申购状态表。
// 接口按页返回，这里顺序翻页直到 allPages 耗尽。
func (c *Client) FetchPurchaseTable(ctx context.Context) ([]Record, error) {
	pageSize := c.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	var records []Record
	totalPages := 1

	for page := 1; page <= totalPages && page <= maxPages; page++ {
		result, err := c.fetchPage(ctx, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("拉取申购表第 %d 页失败: %w", page, err)
		}

		if result.AllPages > totalPages {
			totalPages = result.AllPages
		}

		for _, row := range result.Datas {
			records = append(records, row.toRecord())
		}
	}

	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	c.logger.Debug("申购状态表拉取完成",
		zap.Int("records", len(records)),
		zap.Int("pages", totalPages),
	)

	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, page, pageSize int) (*wirePage, error) {
	endpoint, err := url.Parse(c.cfg.BaseURL + purchaseTablePath)
	if err != nil {
		return nil, fmt.Errorf("解析数据源地址失败: %w", err)
	}

	q := endpoint.Query()
	q.Set("c", "dwjz")
	q.Set("t", "8")
	q.Set("s", "asc")
	q.Set("issale", "1")
	q.Set("page", strconv.Itoa(page))
	q.Set("pageNum", strconv.Itoa(pageSize))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求数据源失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var result wirePage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("解析申购表响应失败: %w", err)
	}

	return &result, nil
}
