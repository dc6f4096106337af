package constants

// 订单状态
const (
	OrderStatusPendingPayment = "pending_payment" // 待支付
	OrderStatusPaid           = "paid"            // 已支付
	OrderStatusShipped        = "shipped"         // 已发货
	OrderStatusCompleted      = "completed"       // 已完成
	OrderStatusCanceled       = "canceled"        // 已取消
	OrderStatusRefunded       = "refunded"        // 已退款
)

// 结算单状态
const (
	PayoutStatusPending = "pending" // 待打款
	PayoutStatusSettled = "settled" // 已结算
)

// 交期时长单位
const (
	LeadTimeUnitDays  = "days"  // 天
	LeadTimeUnitMonth = "month" // 月
)

// 交期数量区间（固定档位）
const (
	QuantityRange0To1  = "0-1"
	QuantityRange2To5  = "2-5"
	QuantityRange6To9  = "6-9"
	QuantityRange10Up  = "10+"
	QuantityRangeOther = "other" // 自由区间，仅用于非模板场景
)

// 异步任务类型
const (
	TaskReportExport = "report:export"  // 销售报表导出任务
	TaskMediaCleanup = "media:cleanup"  // 上传媒体清理任务
	QueueDefault     = "default"        // 默认队列
	QueueCritical    = "critical"       // 高优先级队列
)

// 验证码提供方
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码场景
const (
	CaptchaSceneLogin = "login"
)

// 设置键
const (
	SettingKeyCommissionRate    = "payout.commission_rate_percent" // 平台佣金比例（百分数）
	SettingKeyLowStockThreshold = "report.low_stock_threshold"     // 低库存告警阈值
)

// DefaultVariantCodePrefix 变体编号前缀（D001、D002…）
const DefaultVariantCodePrefix = "D"
