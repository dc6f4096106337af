package service

import (
	"strings"

	"github.com/sellerdesk/internal/models"
	"github.com/sellerdesk/internal/repository"

	"gorm.io/gorm"
)

// DefaultMaxCombinations 组合数上限的默认值
const DefaultMaxCombinations = 1000

// ProductService 商品业务服务
type ProductService struct {
	productRepo     repository.ProductRepository
	optionRepo      repository.ProductOptionRepository
	variantRepo     repository.ProductVariantRepository
	categoryRepo    repository.CategoryRepository
	maxCombinations int
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	optionRepo repository.ProductOptionRepository,
	variantRepo repository.ProductVariantRepository,
	categoryRepo repository.CategoryRepository,
	maxCombinations int,
) *ProductService {
	if maxCombinations <= 0 {
		maxCombinations = DefaultMaxCombinations
	}
	return &ProductService{
		productRepo:     productRepo,
		optionRepo:      optionRepo,
		variantRepo:     variantRepo,
		categoryRepo:    categoryRepo,
		maxCombinations: maxCombinations,
	}
}

// MaxCombinations 返回组合数上限
func (s *ProductService) MaxCombinations() int {
	return s.maxCombinations
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// Get 获取商品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(product *models.Product) (*models.Product, error) {
	product.Slug = strings.TrimSpace(product.Slug)
	if product.Slug == "" || strings.TrimSpace(product.Title) == "" {
		return nil, ErrOptionInvalid
	}
	if product.BasePrice.Decimal.IsNegative() {
		return nil, ErrPriceInvalid
	}
	count, err := s.productRepo.CountBySlug(product.Slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(product.ID)
}

// Update 更新商品基础信息
func (s *ProductService) Update(id uint, updated *models.Product) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	slug := strings.TrimSpace(updated.Slug)
	if slug == "" {
		return nil, ErrOptionInvalid
	}
	if updated.BasePrice.Decimal.IsNegative() {
		return nil, ErrPriceInvalid
	}
	if slug != product.Slug {
		count, err := s.productRepo.CountBySlug(slug, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
	}

	product.Slug = slug
	product.Title = updated.Title
	product.Description = updated.Description
	product.CategoryID = updated.CategoryID
	product.BasePrice = updated.BasePrice
	product.Currency = updated.Currency
	product.Images = updated.Images
	product.Tags = updated.Tags
	product.LeadTimeTemplateID = updated.LeadTimeTemplateID
	product.IsActive = updated.IsActive
	product.SortOrder = updated.SortOrder
	product.Options = nil
	product.Variants = nil

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(id)
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.productRepo.Delete(id)
}

// validateDefinitions 校验属性定义：名称非空且唯一，取值在属性内唯一。
func validateDefinitions(definitions []OptionDefinition) error {
	names := make(map[string]struct{}, len(definitions))
	for _, def := range definitions {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return ErrOptionInvalid
		}
		if _, dup := names[name]; dup {
			return ErrOptionInvalid
		}
		names[name] = struct{}{}

		values := make(map[string]struct{}, len(def.Values))
		for _, value := range def.Values {
			trimmed := strings.TrimSpace(value)
			if trimmed == "" {
				continue
			}
			if _, dup := values[trimmed]; dup {
				return ErrOptionInvalid
			}
			values[trimmed] = struct{}{}
		}
	}
	return nil
}

// PreviewCombinations 按属性定义展开组合并剔除排除项。
// 组合总数超过上限时拒绝展开。
func (s *ProductService) PreviewCombinations(definitions []OptionDefinition, excludedKeys []string) ([]VariantCombination, error) {
	if err := validateDefinitions(definitions); err != nil {
		return nil, err
	}
	if CountCombinations(definitions, s.maxCombinations) > s.maxCombinations {
		return nil, ErrVariantSpaceTooLarge
	}

	excluded := make(map[string]struct{}, len(excludedKeys))
	for _, key := range excludedKeys {
		excluded[key] = struct{}{}
	}
	return FilterExcluded(GenerateCombinations(definitions), excluded), nil
}

// SaveVariantSpace 保存商品的属性定义与变体表。
// 展开组合（剔除排除项）后与既有变体按编号合并，整体在一个事务内
// 替换选项集合并同步变体集合；失效变体按裁剪策略丢弃。
func (s *ProductService) SaveVariantSpace(productID uint, definitions []OptionDefinition, excludedKeys []string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	combos, err := s.PreviewCombinations(definitions, excludedKeys)
	if err != nil {
		return nil, err
	}

	existing, err := s.variantRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	records := MaterializeVariants(definitions, combos, existing)
	for i := range records {
		records[i].SortOrder = len(records) - i
	}

	active := ActiveDefinitions(definitions)
	options := make([]models.ProductOption, 0, len(active))
	for _, def := range active {
		options = append(options, models.ProductOption{
			Name:   def.Name,
			Values: models.StringArray(def.Values),
		})
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.optionRepo.ReplaceForProduct(tx, productID, options); err != nil {
			return err
		}
		return s.variantRepo.SyncForProduct(tx, productID, records)
	})
	if err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(productID)
}

// VariantSpaceDefinitions 将商品持久化的选项还原为属性定义。
func VariantSpaceDefinitions(product *models.Product) []OptionDefinition {
	if product == nil {
		return nil
	}
	definitions := make([]OptionDefinition, 0, len(product.Options))
	for _, option := range product.Options {
		definitions = append(definitions, OptionDefinition{
			Name:   option.Name,
			Values: []string(option.Values),
		})
	}
	return definitions
}
