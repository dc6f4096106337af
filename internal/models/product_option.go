package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductOption 商品属性定义表
// 一条记录对应一个属性（如 Color），值列表保持录入顺序，顺序决定变体编号与默认列序。
type ProductOption struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                                   // 主键
	ProductID uint           `gorm:"not null;index;uniqueIndex:idx_product_option_name" json:"product_id"`   // 商品ID
	Name      string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_product_option_name" json:"name"` // 属性名（同商品内唯一）
	Values    StringArray    `gorm:"type:json;not null" json:"values"`                                       // 属性值列表（有序）
	Position  int            `gorm:"not null;default:0;index" json:"position"`                               // 属性顺序（行添加顺序）
	CreatedAt time.Time      `json:"created_at"`                                                             // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                                             // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                                         // 软删除时间
}

// TableName 指定表名
func (ProductOption) TableName() string {
	return "product_options"
}
