package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/sellerdesk/internal/models"

	"gorm.io/gorm"
)

// PayoutRepository 结算单数据访问接口
type PayoutRepository interface {
	List(filter PayoutListFilter) ([]models.PayoutStatement, int64, error)
	GetByID(id uint) (*models.PayoutStatement, error)
	GetByPeriod(periodStart, periodEnd time.Time) (*models.PayoutStatement, error)
	Create(statement *models.PayoutStatement) error
	Update(statement *models.PayoutStatement) error
	Delete(id uint) error
}

// GormPayoutRepository GORM 实现
type GormPayoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository 创建结算单仓库
func NewPayoutRepository(db *gorm.DB) *GormPayoutRepository {
	return &GormPayoutRepository{db: db}
}

// List 结算单列表
func (r *GormPayoutRepository) List(filter PayoutListFilter) ([]models.PayoutStatement, int64, error) {
	var statements []models.PayoutStatement

	query := r.db.Model(&models.PayoutStatement{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.PeriodFrom != nil {
		query = query.Where("period_start >= ?", *filter.PeriodFrom)
	}
	if filter.PeriodTo != nil {
		query = query.Where("period_end <= ?", *filter.PeriodTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	err := query.Order("period_start DESC, id DESC").Find(&statements).Error
	if err != nil {
		return nil, 0, err
	}
	return statements, total, nil
}

// GetByID 根据 ID 获取结算单
func (r *GormPayoutRepository) GetByID(id uint) (*models.PayoutStatement, error) {
	var statement models.PayoutStatement
	if err := r.db.First(&statement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &statement, nil
}

// GetByPeriod 根据结算周期获取结算单
func (r *GormPayoutRepository) GetByPeriod(periodStart, periodEnd time.Time) (*models.PayoutStatement, error) {
	var statement models.PayoutStatement
	err := r.db.Where("period_start = ? AND period_end = ?", periodStart, periodEnd).
		First(&statement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &statement, nil
}

// Create 创建结算单
func (r *GormPayoutRepository) Create(statement *models.PayoutStatement) error {
	return r.db.Create(statement).Error
}

// Update 更新结算单
func (r *GormPayoutRepository) Update(statement *models.PayoutStatement) error {
	return r.db.Save(statement).Error
}

// Delete 删除结算单
func (r *GormPayoutRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.PayoutStatement{}, id).Error
}
