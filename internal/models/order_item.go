package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
// 标题、变体编号与属性为下单时刻的快照，商品后续修改不回写。
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                       // 主键
	OrderID     uint           `gorm:"index;not null" json:"order_id"`                             // 订单ID
	ProductID   uint           `gorm:"index;not null" json:"product_id"`                           // 商品ID
	VariantID   *uint          `gorm:"index" json:"variant_id,omitempty"`                          // 变体ID（单规格商品为空）
	Title       string         `gorm:"type:varchar(200);not null" json:"title"`                    // 商品标题快照
	VariantCode string         `gorm:"type:varchar(16)" json:"variant_code,omitempty"`             // 变体编号快照
	Attributes  JSON           `gorm:"type:json" json:"attributes,omitempty"`                      // 变体属性快照
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`    // 单价
	Quantity    int            `gorm:"not null" json:"quantity"`                                   // 数量
	TotalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`   // 小计
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
