package admin

import (
	"errors"
	"sort"
	"strconv"

	"github.com/sellerdesk/internal/http/response"
	"github.com/sellerdesk/internal/models"
	"github.com/sellerdesk/internal/repository"
	"github.com/sellerdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	CategoryID         uint     `json:"category_id" binding:"required"`
	Slug               string   `json:"slug" binding:"required"`
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description"`
	BasePrice          float64  `json:"base_price"`
	Currency           string   `json:"currency"`
	Images             []string `json:"images"`
	Tags               []string `json:"tags"`
	LeadTimeTemplateID *uint    `json:"lead_time_template_id"`
	IsActive           *bool    `json:"is_active"`
	SortOrder          int      `json:"sort_order"`
}

func (r ProductRequest) toModel() *models.Product {
	currency := r.Currency
	if currency == "" {
		currency = "USD"
	}
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return &models.Product{
		CategoryID:         r.CategoryID,
		Slug:               r.Slug,
		Title:              r.Title,
		Description:        r.Description,
		BasePrice:          models.NewMoneyFromDecimal(decimal.NewFromFloat(r.BasePrice)),
		Currency:           currency,
		Images:             models.StringArray(r.Images),
		Tags:               models.StringArray(r.Tags),
		LeadTimeTemplateID: r.LeadTimeTemplateID,
		IsActive:           isActive,
		SortOrder:          r.SortOrder,
	}
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   c.Query("category_id"),
		Search:       c.Query("search"),
		OnlyActive:   c.Query("only_active") == "true",
		WithCategory: true,
		WithVariants: c.Query("with_variants") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Create(req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "error.product_slug_exists", nil)
		case errors.Is(err, service.ErrPriceInvalid):
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		case errors.Is(err, service.ErrOptionInvalid):
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		default:
			respondError(c, response.CodeInternal, "error.product_save_failed", err)
		}
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品基础信息
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "error.product_slug_exists", nil)
		case errors.Is(err, service.ErrPriceInvalid), errors.Is(err, service.ErrOptionInvalid):
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		default:
			respondError(c, response.CodeInternal, "error.product_save_failed", err)
		}
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_save_failed", err)
		return
	}
	response.Success(c, nil)
}

// OptionDefinitionRequest 属性定义请求
type OptionDefinitionRequest struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

func toDefinitions(defs []OptionDefinitionRequest) []service.OptionDefinition {
	definitions := make([]service.OptionDefinition, 0, len(defs))
	for _, def := range defs {
		definitions = append(definitions, service.OptionDefinition{
			Name:   def.Name,
			Values: def.Values,
		})
	}
	return definitions
}

// VariantPreviewRequest 组合预览请求
type VariantPreviewRequest struct {
	Definitions  []OptionDefinitionRequest `json:"definitions" binding:"required"`
	ExcludedKeys []string                  `json:"excluded_keys"`
}

// PreviewVariantCombinations 预览属性组合
func (h *Handler) PreviewVariantCombinations(c *gin.Context) {
	var req VariantPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	combos, err := h.ProductService.PreviewCombinations(toDefinitions(req.Definitions), req.ExcludedKeys)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVariantSpaceTooLarge):
			respondError(c, response.CodeBadRequest, "error.variant_space_too_large", nil)
		case errors.Is(err, service.ErrOptionInvalid):
			respondError(c, response.CodeBadRequest, "error.variant_option_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"combinations": combos,
		"total":        len(combos),
		"limit":        h.ProductService.MaxCombinations(),
	})
}

// VariantSpaceRequest 保存变体空间请求
type VariantSpaceRequest struct {
	Definitions  []OptionDefinitionRequest `json:"definitions" binding:"required"`
	ExcludedKeys []string                  `json:"excluded_keys"`
}

// GetVariantSpace 获取商品的属性定义与变体表
func (h *Handler) GetVariantSpace(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	response.Success(c, gin.H{
		"definitions": service.VariantSpaceDefinitions(product),
		"variants":    product.Variants,
	})
}

// SaveVariantSpace 保存商品的属性定义与变体表
func (h *Handler) SaveVariantSpace(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariantSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.SaveVariantSpace(id, toDefinitions(req.Definitions), req.ExcludedKeys)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		case errors.Is(err, service.ErrVariantSpaceTooLarge):
			respondError(c, response.CodeBadRequest, "error.variant_space_too_large", nil)
		case errors.Is(err, service.ErrOptionInvalid):
			respondError(c, response.CodeBadRequest, "error.variant_option_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.product_save_failed", err)
		}
		return
	}
	response.Success(c, product)
}

// UpdateVariantStockRequest 更新变体库存请求
type UpdateVariantStockRequest struct {
	Stock int `json:"stock" binding:"min=0"`
}

// UpdateVariantStock 更新单个变体的库存
func (h *Handler) UpdateVariantStock(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseIDParam(c, "variant_id")
	if !ok {
		return
	}

	var req UpdateVariantStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	variant, err := h.ProductVariantRepo.GetByID(variantID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	if variant == nil || variant.ProductID != productID {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}

	if err := h.ProductVariantRepo.UpdateStock(variantID, req.Stock); err != nil {
		respondError(c, response.CodeInternal, "error.product_save_failed", err)
		return
	}
	response.Success(c, nil)
}

// VariantSessionState 变体编辑会话的传输结构
type VariantSessionState struct {
	Definitions  []OptionDefinitionRequest `json:"definitions"`
	ExcludedKeys []string                  `json:"excluded_keys"`
	Records      []models.ProductVariant   `json:"records"`
	Signature    string                    `json:"signature"`
}

func (r VariantSessionState) toServiceState() service.VariantState {
	state := service.NewVariantState()
	state.Definitions = toDefinitions(r.Definitions)
	state.Records = append(state.Records, r.Records...)
	state.Signature = r.Signature
	for _, key := range r.ExcludedKeys {
		state.Excluded[key] = struct{}{}
	}
	return state
}

func fromServiceState(state service.VariantState) VariantSessionState {
	definitions := make([]OptionDefinitionRequest, 0, len(state.Definitions))
	for _, def := range state.Definitions {
		definitions = append(definitions, OptionDefinitionRequest{
			Name:   def.Name,
			Values: def.Values,
		})
	}
	excluded := make([]string, 0, len(state.Excluded))
	for key := range state.Excluded {
		excluded = append(excluded, key)
	}
	sort.Strings(excluded)
	return VariantSessionState{
		Definitions:  definitions,
		ExcludedKeys: excluded,
		Records:      state.Records,
		Signature:    state.Signature,
	}
}

// VariantSessionRequest 变体编辑会话请求
type VariantSessionRequest struct {
	State  VariantSessionState   `json:"state"`
	Action service.VariantAction `json:"action" binding:"required"`
}

// StepVariantSession 执行一次变体编辑会话状态转移
func (h *Handler) StepVariantSession(c *gin.Context) {
	var req VariantSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	next := service.ReduceVariant(req.State.toServiceState(), req.Action)
	response.Success(c, gin.H{
		"state":        fromServiceState(next),
		"combinations": next.ActiveCombinations(),
	})
}
