package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`                         // 分类ID
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识
	Title       string         `gorm:"type:varchar(200);not null" json:"title"`                   // 商品标题
	Description string         `gorm:"type:text" json:"description"`                              // 商品描述
	BasePrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_price"`   // 基础售价
	Currency    string         `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`   // 币种
	Images      StringArray    `gorm:"type:json" json:"images"`                                   // 图片数组
	Tags        StringArray    `gorm:"type:json" json:"tags"`                                     // 标签数组
	LeadTimeTemplateID *uint   `gorm:"index" json:"lead_time_template_id,omitempty"`              // 关联的交期模板ID
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	// 关联
	Category Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Options  []ProductOption  `gorm:"foreignKey:ProductID" json:"options,omitempty"`   // 属性定义列表
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`  // 变体列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
