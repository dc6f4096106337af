package models

import (
	"time"

	"gorm.io/gorm"
)

// PayoutStatement 结算单表
// 按周期汇总已支付订单，毛额减佣金得净额；同一周期只允许生成一次。
type PayoutStatement struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                              // 主键
	PeriodStart      time.Time      `gorm:"not null;index;uniqueIndex:idx_payout_period" json:"period_start"`  // 周期开始
	PeriodEnd        time.Time      `gorm:"not null;uniqueIndex:idx_payout_period" json:"period_end"`          // 周期结束
	Currency         string         `gorm:"type:varchar(10);not null" json:"currency"`                         // 币种
	OrderCount       int64          `gorm:"not null;default:0" json:"order_count"`                             // 订单数量
	GrossAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"gross_amount"`         // 销售毛额
	CommissionRate   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"commission_rate"`      // 佣金比例（百分数快照）
	CommissionAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"commission_amount"`    // 佣金金额
	NetAmount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"net_amount"`           // 应结净额
	Status           string         `gorm:"type:varchar(20);not null;index" json:"status"`                     // 状态（pending/settled）
	SettledAt        *time.Time     `json:"settled_at"`                                                        // 结算时间
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                           // 创建时间
	UpdatedAt        time.Time      `json:"updated_at"`                                                        // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                                    // 软删除时间
}

// TableName 指定表名
func (PayoutStatement) TableName() string {
	return "payout_statements"
}
