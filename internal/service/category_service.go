package service

import (
	"strings"

	"github.com/sellerdesk/internal/models"
	"github.com/sellerdesk/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List 分类列表
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.List()
}

// Get 分类详情
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(category *models.Category) error {
	category.Slug = strings.TrimSpace(category.Slug)
	category.Name = strings.TrimSpace(category.Name)
	count, err := s.repo.CountBySlug(category.Slug, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return s.repo.Create(category)
}

// Update 更新分类
func (s *CategoryService) Update(category *models.Category) error {
	existing, err := s.Get(category.ID)
	if err != nil {
		return err
	}

	category.Slug = strings.TrimSpace(category.Slug)
	category.Name = strings.TrimSpace(category.Name)
	if category.Slug != existing.Slug {
		count, err := s.repo.CountBySlug(category.Slug, &category.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugExists
		}
	}
	return s.repo.Update(category)
}

// Delete 删除分类（分类下仍有商品时拒绝）
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(id)
}
