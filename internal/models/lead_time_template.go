package models

import (
	"time"

	"gorm.io/gorm"
)

// LeadTimeTemplate 交期模板表
// 名称唯一（大小写不敏感，存储前已 trim）；数据维度的唯一性由服务层校验。
type LeadTimeTemplate struct {
	ID        uint           `gorm:"primarykey" json:"id"`                         // 主键
	Name      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 模板名称
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间

	Entries []LeadTimeEntry `gorm:"foreignKey:TemplateID" json:"entries,omitempty"` // 交期条目
}

// TableName 指定表名
func (LeadTimeTemplate) TableName() string {
	return "lead_time_templates"
}

// LeadTimeEntry 交期条目表
// 同一模板内每个数量区间至多一条。
type LeadTimeEntry struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                                         // 主键
	TemplateID    uint           `gorm:"not null;index;uniqueIndex:idx_template_range" json:"template_id"`             // 模板ID
	QuantityRange string         `gorm:"type:varchar(16);not null;uniqueIndex:idx_template_range" json:"quantity_range"` // 数量区间（0-1/2-5/6-9/10+）
	StartQty      int            `gorm:"not null" json:"start_qty"`                                                    // 区间起始数量
	EndQty        int            `gorm:"not null" json:"end_qty"`                                                      // 区间结束数量
	LeadTime      int            `gorm:"not null" json:"lead_time"`                                                    // 交期时长
	LeadTimeUnit  string         `gorm:"type:varchar(10);not null" json:"lead_time_unit"`                              // 时长单位（days/month）
	CreatedAt     time.Time      `json:"created_at"`                                                                   // 创建时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                                               // 软删除时间
}

// TableName 指定表名
func (LeadTimeEntry) TableName() string {
	return "lead_time_entries"
}
