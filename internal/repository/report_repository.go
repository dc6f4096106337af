package repository

import (
	"fmt"
	"time"

	"github.com/sellerdesk/internal/constants"
	"github.com/sellerdesk/internal/models"

	"gorm.io/gorm"
)

// ReportRepository 销售报表聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type ReportRepository interface {
	GetOverview(startAt, endAt time.Time) (ReportOverviewRow, error)
	GetSalesTrends(startAt, endAt time.Time) ([]ReportSalesTrendRow, error)
	GetTopProducts(startAt, endAt time.Time, limit int) ([]ReportProductRankingRow, error)
	GetPaidOrderAggregate(startAt, endAt time.Time) (ReportPaidAggregateRow, error)
}

// ReportOverviewRow 销售总览原始统计结果
type ReportOverviewRow struct {
	OrdersTotal          int64
	PaidOrders           int64
	CompletedOrders      int64
	PendingPaymentOrders int64
	CanceledOrders       int64
	GMVPaid              float64
	ItemsSold            int64
	ActiveProducts       int64
	Currency             string
}

// ReportSalesTrendRow 按天销售趋势统计
type ReportSalesTrendRow struct {
	Day         string
	OrdersTotal int64
	OrdersPaid  int64
	GMVPaid     float64
}

// ReportProductRankingRow 商品销量排行原始行
type ReportProductRankingRow struct {
	ProductID  uint
	Title      string
	PaidOrders int64
	Quantity   int64
	PaidAmount float64
}

// ReportPaidAggregateRow 已支付订单汇总（结算用）
type ReportPaidAggregateRow struct {
	OrderCount  int64
	GrossAmount float64
	Currency    string
}

// GormReportRepository GORM 报表聚合实现
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建报表仓库
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func paidOrderStatuses() []string {
	return []string{
		constants.OrderStatusPaid,
		constants.OrderStatusShipped,
		constants.OrderStatusCompleted,
	}
}

// GetOverview 获取销售总览统计
func (r *GormReportRepository) GetOverview(startAt, endAt time.Time) (ReportOverviewRow, error) {
	result := ReportOverviewRow{}

	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}

	if err := orderBase().Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}

	paidStatuses := paidOrderStatuses()
	if err := orderBase().Where("status IN ?", paidStatuses).Count(&result.PaidOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusCompleted).Count(&result.CompletedOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusPendingPayment).Count(&result.PendingPaymentOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusCanceled).Count(&result.CanceledOrders).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Order{}).
		Where("paid_at IS NOT NULL AND paid_at >= ? AND paid_at < ? AND status IN ?", startAt, endAt, paidStatuses).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.GMVPaid).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.paid_at IS NOT NULL AND orders.paid_at >= ? AND orders.paid_at < ? AND orders.status IN ?", startAt, endAt, paidStatuses).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&result.ItemsSold).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Count(&result.ActiveProducts).Error; err != nil {
		return result, err
	}

	_ = r.db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ? AND currency <> ''", startAt, endAt).
		Order("id DESC").
		Limit(1).
		Pluck("currency", &result.Currency).Error

	return result, nil
}

// GetSalesTrends 获取按天销售趋势
func (r *GormReportRepository) GetSalesTrends(startAt, endAt time.Time) ([]ReportSalesTrendRow, error) {
	type totalRow struct {
		Day   string
		Total int64
	}
	type paidRow struct {
		Day    string
		Paid   int64
		Amount float64
	}

	expr := dayExpr(r.db, "created_at")

	var totals []totalRow
	if err := r.db.Model(&models.Order{}).
		Select(fmt.Sprintf("%s as day, COUNT(*) as total", expr)).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group(expr).
		Order("day asc").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	var paids []paidRow
	if err := r.db.Model(&models.Order{}).
		Select(fmt.Sprintf("%s as day, COUNT(*) as paid, COALESCE(SUM(total_amount), 0) as amount", expr)).
		Where("created_at >= ? AND created_at < ? AND status IN ?", startAt, endAt, paidOrderStatuses()).
		Group(expr).
		Order("day asc").
		Scan(&paids).Error; err != nil {
		return nil, err
	}

	paidMap := make(map[string]paidRow, len(paids))
	for _, item := range paids {
		paidMap[item.Day] = item
	}

	result := make([]ReportSalesTrendRow, 0, len(totals))
	for _, item := range totals {
		result = append(result, ReportSalesTrendRow{
			Day:         item.Day,
			OrdersTotal: item.Total,
			OrdersPaid:  paidMap[item.Day].Paid,
			GMVPaid:     paidMap[item.Day].Amount,
		})
	}
	return result, nil
}

// GetTopProducts 获取商品销量排行
func (r *GormReportRepository) GetTopProducts(startAt, endAt time.Time, limit int) ([]ReportProductRankingRow, error) {
	if limit <= 0 {
		limit = 10
	}

	rows := make([]ReportProductRankingRow, 0, limit)
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_id as product_id, " +
			"MAX(order_items.title) as title, " +
			"COUNT(DISTINCT order_items.order_id) as paid_orders, " +
			"COALESCE(SUM(order_items.quantity), 0) as quantity, " +
			"COALESCE(SUM(order_items.total_price), 0) as paid_amount").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.paid_at IS NOT NULL AND orders.paid_at >= ? AND orders.paid_at < ? AND orders.status IN ?", startAt, endAt, paidOrderStatuses()).
		Group("order_items.product_id").
		Order("paid_amount DESC, quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetPaidOrderAggregate 获取周期内已支付订单汇总
func (r *GormReportRepository) GetPaidOrderAggregate(startAt, endAt time.Time) (ReportPaidAggregateRow, error) {
	result := ReportPaidAggregateRow{}

	base := r.db.Model(&models.Order{}).
		Where("paid_at IS NOT NULL AND paid_at >= ? AND paid_at < ? AND status IN ?", startAt, endAt, paidOrderStatuses())

	if err := base.Session(&gorm.Session{}).Count(&result.OrderCount).Error; err != nil {
		return result, err
	}
	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.GrossAmount).Error; err != nil {
		return result, err
	}

	_ = base.Session(&gorm.Session{}).
		Where("currency <> ''").
		Order("id DESC").
		Limit(1).
		Pluck("currency", &result.Currency).Error

	return result, nil
}
