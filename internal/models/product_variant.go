package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant 商品变体表
// 由属性组合物化而来，VariantCode 按组合顺序分配（D001、D002…），同商品内位置稳定。
type ProductVariant struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                                          // 主键
	ProductID   uint           `gorm:"not null;index;uniqueIndex:idx_product_variant_code" json:"product_id"`         // 商品ID
	VariantCode string         `gorm:"column:variant_code;type:varchar(16);not null;uniqueIndex:idx_product_variant_code" json:"variant_code"` // 变体编号（同商品内唯一）
	Attributes  JSON           `gorm:"type:json;not null" json:"attributes"`                                          // 属性名→属性值映射
	ExtraCharge Money          `gorm:"type:decimal(20,2);not null;default:0" json:"extra_charge"`                     // 加价金额
	Stock       int            `gorm:"not null;default:0" json:"stock"`                                               // 库存数量
	Media       StringArray    `gorm:"type:json" json:"media"`                                                        // 变体图片 URL 列表
	LeadTimeOffsetDays int     `gorm:"not null;default:0" json:"lead_time_offset_days"`                               // 交期偏移（天）
	Length      float64        `gorm:"not null;default:0" json:"length"`                                              // 长
	Width       float64        `gorm:"not null;default:0" json:"width"`                                               // 宽
	Height      float64        `gorm:"not null;default:0" json:"height"`                                              // 高
	DimensionUnit string       `gorm:"type:varchar(10)" json:"dimension_unit"`                                        // 尺寸单位
	Weight      float64        `gorm:"not null;default:0" json:"weight"`                                              // 重量
	WeightUnit  string         `gorm:"type:varchar(10)" json:"weight_unit"`                                           // 重量单位
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                                           // 是否启用
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                                             // 排序权重（组合顺序）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                                       // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                                    // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                                                // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}
