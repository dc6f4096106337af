package admin

import (
	"errors"

	"github.com/sellerdesk/internal/http/response"
	"github.com/sellerdesk/internal/models"
	"github.com/sellerdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category := &models.Category{
		Slug:      req.Slug,
		Name:      req.Name,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	}
	if err := h.CategoryService.Create(category); err != nil {
		if errors.Is(err, service.ErrSlugExists) {
			respondError(c, response.CodeBadRequest, "error.product_slug_exists", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.category_save_failed", err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category := &models.Category{
		ID:        id,
		Slug:      req.Slug,
		Name:      req.Name,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	}
	if err := h.CategoryService.Update(category); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "error.product_slug_exists", nil)
		default:
			respondError(c, response.CodeInternal, "error.category_save_failed", err)
		}
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, response.CodeBadRequest, "error.category_in_use", nil)
		default:
			respondError(c, response.CodeInternal, "error.category_save_failed", err)
		}
		return
	}
	response.Success(c, nil)
}
