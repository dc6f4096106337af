package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sellerdesk/internal/models"

	"gorm.io/gorm"
)

// LeadTimeTemplateRepository 交期模板数据访问接口
type LeadTimeTemplateRepository interface {
	List(filter LeadTimeTemplateListFilter) ([]models.LeadTimeTemplate, int64, error)
	ListAll() ([]models.LeadTimeTemplate, error)
	GetByID(id uint) (*models.LeadTimeTemplate, error)
	Create(template *models.LeadTimeTemplate) error
	Update(template *models.LeadTimeTemplate) error
	Delete(id uint) error
	CountProducts(templateID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) LeadTimeTemplateRepository
}

// GormLeadTimeTemplateRepository GORM 实现
type GormLeadTimeTemplateRepository struct {
	db *gorm.DB
}

// NewLeadTimeTemplateRepository 创建交期模板仓库
func NewLeadTimeTemplateRepository(db *gorm.DB) *GormLeadTimeTemplateRepository {
	return &GormLeadTimeTemplateRepository{db: db}
}

// WithTx 绑定事务
func (r *GormLeadTimeTemplateRepository) WithTx(tx *gorm.DB) LeadTimeTemplateRepository {
	if tx == nil {
		return r
	}
	return &GormLeadTimeTemplateRepository{db: tx}
}

// Transaction 执行事务
func (r *GormLeadTimeTemplateRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func entriesPreload(db *gorm.DB) *gorm.DB {
	return db.Order("start_qty ASC, id ASC")
}

// List 分页获取交期模板（含条目）
func (r *GormLeadTimeTemplateRepository) List(filter LeadTimeTemplateListFilter) ([]models.LeadTimeTemplate, int64, error) {
	var templates []models.LeadTimeTemplate

	query := r.db.Model(&models.LeadTimeTemplate{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where(fmt.Sprintf("name %s ?", likeOperator(r.db)), like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	err := query.Preload("Entries", entriesPreload).
		Order("created_at DESC, id DESC").
		Find(&templates).Error
	if err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// ListAll 获取全部交期模板（含条目）
func (r *GormLeadTimeTemplateRepository) ListAll() ([]models.LeadTimeTemplate, error) {
	templates := make([]models.LeadTimeTemplate, 0)
	err := r.db.Preload("Entries", entriesPreload).
		Order("created_at DESC, id DESC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// GetByID 根据 ID 获取交期模板（含条目）
func (r *GormLeadTimeTemplateRepository) GetByID(id uint) (*models.LeadTimeTemplate, error) {
	var template models.LeadTimeTemplate
	err := r.db.Preload("Entries", entriesPreload).First(&template, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// Create 创建交期模板（含条目）
func (r *GormLeadTimeTemplateRepository) Create(template *models.LeadTimeTemplate) error {
	return r.db.Create(template).Error
}

// Update 更新交期模板；条目整体替换
func (r *GormLeadTimeTemplateRepository) Update(template *models.LeadTimeTemplate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("template_id = ?", template.ID).
			Delete(&models.LeadTimeEntry{}).Error; err != nil {
			return err
		}
		for i := range template.Entries {
			template.Entries[i].ID = 0
			template.Entries[i].TemplateID = template.ID
		}
		return tx.Save(template).Error
	})
}

// Delete 删除交期模板及其条目
func (r *GormLeadTimeTemplateRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("template_id = ?", id).
			Delete(&models.LeadTimeEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.LeadTimeTemplate{}, id).Error
	})
}

// CountProducts 统计引用某模板的商品数
func (r *GormLeadTimeTemplateRepository) CountProducts(templateID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Where("lead_time_template_id = ?", templateID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
