package repository

import (
	"errors"

	"github.com/sellerdesk/internal/models"

	"gorm.io/gorm"
)

// ProductVariantRepository SKU 变体数据访问接口
type ProductVariantRepository interface {
	ListByProduct(productID uint) ([]models.ProductVariant, error)
	GetByID(id uint) (*models.ProductVariant, error)
	SyncForProduct(tx *gorm.DB, productID uint, variants []models.ProductVariant) error
	UpdateStock(id uint, stock int) error
	CountLowStock(threshold int) (int64, error)
	WithTx(tx *gorm.DB) ProductVariantRepository
}

// GormProductVariantRepository GORM 实现
type GormProductVariantRepository struct {
	db *gorm.DB
}

// NewProductVariantRepository 创建 SKU 变体仓库
func NewProductVariantRepository(db *gorm.DB) *GormProductVariantRepository {
	return &GormProductVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductVariantRepository) WithTx(tx *gorm.DB) ProductVariantRepository {
	if tx == nil {
		return r
	}
	return &GormProductVariantRepository{db: tx}
}

// ListByProduct 获取商品的全部 SKU 变体
func (r *GormProductVariantRepository) ListByProduct(productID uint) ([]models.ProductVariant, error) {
	variants := make([]models.ProductVariant, 0)
	err := r.db.Where("product_id = ?", productID).
		Order("sort_order DESC, id ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

// GetByID 根据 ID 获取 SKU 变体
func (r *GormProductVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// SyncForProduct 将商品的变体集合同步为给定集合，需在事务内调用。
// ID 为 0 的变体插入，其余按主键更新，未出现的变体删除。
func (r *GormProductVariantRepository) SyncForProduct(tx *gorm.DB, productID uint, variants []models.ProductVariant) error {
	db := tx
	if db == nil {
		db = r.db
	}

	keepIDs := make([]uint, 0, len(variants))
	for i := range variants {
		variants[i].ProductID = productID
		if variants[i].ID == 0 {
			if err := db.Create(&variants[i]).Error; err != nil {
				return err
			}
		} else {
			if err := db.Save(&variants[i]).Error; err != nil {
				return err
			}
		}
		keepIDs = append(keepIDs, variants[i].ID)
	}

	query := db.Unscoped().Where("product_id = ?", productID)
	if len(keepIDs) > 0 {
		query = query.Where("id NOT IN ?", keepIDs)
	}
	return query.Delete(&models.ProductVariant{}).Error
}

// UpdateStock 更新 SKU 库存
func (r *GormProductVariantRepository) UpdateStock(id uint, stock int) error {
	return r.db.Model(&models.ProductVariant{}).
		Where("id = ?", id).
		Update("stock", stock).Error
}

// CountLowStock 统计库存低于阈值的启用变体数
func (r *GormProductVariantRepository) CountLowStock(threshold int) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProductVariant{}).
		Where("is_active = ? AND stock < ?", true, threshold).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
