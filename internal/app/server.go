package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"fundlimit/internal/fund"
	"fundlimit/internal/history"
)

// limitResponse 是 /api/limit 的响应体。
type limitResponse struct {
	Code           string  `json:"code"`
	Found          bool    `json:"found"`
	Text           string  `json:"text"`
	LimitAmount    float64 `json:"limit_amount,omitempty"`
	PurchaseStatus string  `json:"purchase_status,omitempty"`
	FundType       string  `json:"fund_type,omitempty"`
	FundName       string  `json:"fund_name,omitempty"`
}

// runQueryServer 对外提供限额查询和历史记录接口，阻塞到 ctx 结束。
func runQueryServer(ctx context.Context, svc *fund.Service, hist *history.Service, port int, logger *zap.Logger) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/limit", func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(r.URL.Query().Get("code"))
		if code == "" {
			http.Error(w, "缺少 code 参数", http.StatusBadRequest)
			return
		}

		resp := limitResponse{Code: code}
		w.Header().Set("Content-Type", "application/json")

		info, err := svc.ExtractLimitInfo(r.Context(), code)
		switch {
		case err == nil:
			resp.Found = true
			resp.Text = fund.FormatLimit(info.PurchaseStatus, info.LimitAmount)
			resp.LimitAmount = info.LimitAmount
			resp.PurchaseStatus = info.PurchaseStatus
			resp.FundType = info.FundType
			resp.FundName = info.FundName
			hist.RecordLookup(r.Context(), code, info, resp.Text)
		case errors.Is(err, fund.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			logger.Warn("查询限额失败", zap.String("code", code), zap.Error(err))
			w.WriteHeader(http.StatusBadGateway)
		}

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Warn("写入查询响应失败", zap.Error(err))
		}
	})

	mux.HandleFunc("/api/history", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		limit := 100
		if qs := q.Get("limit"); qs != "" {
			if v, err := strconv.Atoi(qs); err == nil && v > 0 {
				if v > 1000 {
					v = 1000
				}
				limit = v
			}
		}

		queries, err := hist.ListRecent(r.Context(), strings.TrimSpace(q.Get("code")), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(queries); err != nil {
			logger.Warn("写入历史响应失败", zap.Error(err))
		}
	})

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
			logger.Warn("关闭查询服务失败", zap.Error(err))
		}
	}()

	logger.Info("查询接口已启动", zap.String("addr", addr))

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("查询服务异常: %w", err)
	}
	return nil
}
