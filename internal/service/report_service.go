package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sellerdesk/internal/cache"
	"github.com/sellerdesk/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	defaultReportCacheTTL = 45 * time.Second
	reportCustomMaxDays   = 90
)

// ReportService 销售报表服务
// 说明：聚合卖家控制台的经营数据，读多写少，结果走 Redis 短缓存。
type ReportService struct {
	repo           repository.ReportRepository
	variantRepo    repository.ProductVariantRepository
	settingService *SettingService
	cacheTTL       time.Duration
}

// NewReportService 创建报表服务
func NewReportService(
	repo repository.ReportRepository,
	variantRepo repository.ProductVariantRepository,
	settingService *SettingService,
	cacheTTLSeconds int,
) *ReportService {
	ttl := defaultReportCacheTTL
	if cacheTTLSeconds > 0 {
		ttl = time.Duration(cacheTTLSeconds) * time.Second
	}
	return &ReportService{
		repo:           repo,
		variantRepo:    variantRepo,
		settingService: settingService,
		cacheTTL:       ttl,
	}
}

// ReportQueryInput 报表查询输入
type ReportQueryInput struct {
	Range        string // today / 7d / 30d / custom
	From         *time.Time
	To           *time.Time
	ForceRefresh bool
}

// ReportKPI 销售核心指标
type ReportKPI struct {
	OrdersTotal          int64  `json:"orders_total"`
	PaidOrders           int64  `json:"paid_orders"`
	CompletedOrders      int64  `json:"completed_orders"`
	PendingPaymentOrders int64  `json:"pending_payment_orders"`
	CanceledOrders       int64  `json:"canceled_orders"`
	GMVPaid              string `json:"gmv_paid"`
	ItemsSold            int64  `json:"items_sold"`
	ActiveProducts       int64  `json:"active_products"`
	LowStockVariants     int64  `json:"low_stock_variants"`
}

// ReportOverviewResponse 销售总览响应
type ReportOverviewResponse struct {
	Range    string    `json:"range"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	Currency string    `json:"currency,omitempty"`
	KPI      ReportKPI `json:"kpi"`
}

// ReportTrendPoint 按天趋势点
type ReportTrendPoint struct {
	Day         string `json:"day"`
	OrdersTotal int64  `json:"orders_total"`
	OrdersPaid  int64  `json:"orders_paid"`
	GMVPaid     string `json:"gmv_paid"`
}

// ReportTrendResponse 销售趋势响应
type ReportTrendResponse struct {
	Range  string             `json:"range"`
	From   string             `json:"from"`
	To     string             `json:"to"`
	Points []ReportTrendPoint `json:"points"`
}

// ReportProductRanking 商品销量排行项
type ReportProductRanking struct {
	ProductID  uint   `json:"product_id"`
	Title      string `json:"title"`
	PaidOrders int64  `json:"paid_orders"`
	Quantity   int64  `json:"quantity"`
	PaidAmount string `json:"paid_amount"`
}

// resolveReportRange 解析查询区间，自定义区间限制最大跨度。
func resolveReportRange(input ReportQueryInput) (time.Time, time.Time, string, error) {
	now := time.Now()
	endAt := now
	rangeName := strings.ToLower(strings.TrimSpace(input.Range))

	switch rangeName {
	case "", "7d":
		rangeName = "7d"
		return endAt.AddDate(0, 0, -7), endAt, rangeName, nil
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, endAt, rangeName, nil
	case "30d":
		return endAt.AddDate(0, 0, -30), endAt, rangeName, nil
	case "custom":
		if input.From == nil || input.To == nil || !input.From.Before(*input.To) {
			return time.Time{}, time.Time{}, "", fmt.Errorf("invalid custom range")
		}
		if input.To.Sub(*input.From) > reportCustomMaxDays*24*time.Hour {
			return time.Time{}, time.Time{}, "", fmt.Errorf("custom range exceeds %d days", reportCustomMaxDays)
		}
		return *input.From, *input.To, rangeName, nil
	default:
		return time.Time{}, time.Time{}, "", fmt.Errorf("unknown range: %s", rangeName)
	}
}

func reportCacheKey(kind string, startAt, endAt time.Time) string {
	return fmt.Sprintf("report:%s:%d:%d", kind, startAt.Unix(), endAt.Unix())
}

// Overview 销售总览
func (s *ReportService) Overview(ctx context.Context, input ReportQueryInput) (*ReportOverviewResponse, error) {
	startAt, endAt, rangeName, err := resolveReportRange(input)
	if err != nil {
		return nil, err
	}

	key := reportCacheKey("overview", startAt, endAt)
	if !input.ForceRefresh {
		var cached ReportOverviewResponse
		if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	row, err := s.repo.GetOverview(startAt, endAt)
	if err != nil {
		return nil, err
	}

	threshold, err := s.settingService.GetLowStockThreshold()
	if err != nil {
		threshold = DefaultLowStockThreshold
	}
	lowStock, err := s.variantRepo.CountLowStock(threshold)
	if err != nil {
		return nil, err
	}

	resp := &ReportOverviewResponse{
		Range:    rangeName,
		From:     startAt.Format(time.RFC3339),
		To:       endAt.Format(time.RFC3339),
		Currency: row.Currency,
		KPI: ReportKPI{
			OrdersTotal:          row.OrdersTotal,
			PaidOrders:           row.PaidOrders,
			CompletedOrders:      row.CompletedOrders,
			PendingPaymentOrders: row.PendingPaymentOrders,
			CanceledOrders:       row.CanceledOrders,
			GMVPaid:              decimal.NewFromFloat(row.GMVPaid).StringFixed(2),
			ItemsSold:            row.ItemsSold,
			ActiveProducts:       row.ActiveProducts,
			LowStockVariants:     lowStock,
		},
	}
	_ = cache.SetJSON(ctx, key, resp, s.cacheTTL)
	return resp, nil
}

// Trends 按天销售趋势
func (s *ReportService) Trends(ctx context.Context, input ReportQueryInput) (*ReportTrendResponse, error) {
	startAt, endAt, rangeName, err := resolveReportRange(input)
	if err != nil {
		return nil, err
	}

	key := reportCacheKey("trends", startAt, endAt)
	if !input.ForceRefresh {
		var cached ReportTrendResponse
		if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	rows, err := s.repo.GetSalesTrends(startAt, endAt)
	if err != nil {
		return nil, err
	}

	points := make([]ReportTrendPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, ReportTrendPoint{
			Day:         row.Day,
			OrdersTotal: row.OrdersTotal,
			OrdersPaid:  row.OrdersPaid,
			GMVPaid:     decimal.NewFromFloat(row.GMVPaid).StringFixed(2),
		})
	}

	resp := &ReportTrendResponse{
		Range:  rangeName,
		From:   startAt.Format(time.RFC3339),
		To:     endAt.Format(time.RFC3339),
		Points: points,
	}
	_ = cache.SetJSON(ctx, key, resp, s.cacheTTL)
	return resp, nil
}

// TopProducts 商品销量排行
func (s *ReportService) TopProducts(ctx context.Context, input ReportQueryInput, limit int) ([]ReportProductRanking, error) {
	startAt, endAt, _, err := resolveReportRange(input)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	key := fmt.Sprintf("%s:%d", reportCacheKey("top_products", startAt, endAt), limit)
	if !input.ForceRefresh {
		var cached []ReportProductRanking
		if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := s.repo.GetTopProducts(startAt, endAt, limit)
	if err != nil {
		return nil, err
	}

	rankings := make([]ReportProductRanking, 0, len(rows))
	for _, row := range rows {
		rankings = append(rankings, ReportProductRanking{
			ProductID:  row.ProductID,
			Title:      row.Title,
			PaidOrders: row.PaidOrders,
			Quantity:   row.Quantity,
			PaidAmount: decimal.NewFromFloat(row.PaidAmount).StringFixed(2),
		})
	}
	_ = cache.SetJSON(ctx, key, rankings, s.cacheTTL)
	return rankings, nil
}
