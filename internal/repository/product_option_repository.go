package repository

import (
	"github.com/sellerdesk/internal/models"

	"gorm.io/gorm"
)

// ProductOptionRepository 商品选项数据访问接口
type ProductOptionRepository interface {
	ListByProduct(productID uint) ([]models.ProductOption, error)
	ReplaceForProduct(tx *gorm.DB, productID uint, options []models.ProductOption) error
	WithTx(tx *gorm.DB) ProductOptionRepository
}

// GormProductOptionRepository GORM 实现
type GormProductOptionRepository struct {
	db *gorm.DB
}

// NewProductOptionRepository 创建商品选项仓库
func NewProductOptionRepository(db *gorm.DB) *GormProductOptionRepository {
	return &GormProductOptionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductOptionRepository) WithTx(tx *gorm.DB) ProductOptionRepository {
	if tx == nil {
		return r
	}
	return &GormProductOptionRepository{db: tx}
}

// ListByProduct 获取商品的全部选项（按展示位置排序）
func (r *GormProductOptionRepository) ListByProduct(productID uint) ([]models.ProductOption, error) {
	options := make([]models.ProductOption, 0)
	err := r.db.Where("product_id = ?", productID).
		Order("position ASC, id ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

// ReplaceForProduct 整体替换商品的选项集合，需在事务内调用
func (r *GormProductOptionRepository) ReplaceForProduct(tx *gorm.DB, productID uint, options []models.ProductOption) error {
	db := tx
	if db == nil {
		db = r.db
	}
	if err := db.Unscoped().Where("product_id = ?", productID).Delete(&models.ProductOption{}).Error; err != nil {
		return err
	}
	if len(options) == 0 {
		return nil
	}
	for i := range options {
		options[i].ID = 0
		options[i].ProductID = productID
		options[i].Position = i
	}
	return db.Create(&options).Error
}
