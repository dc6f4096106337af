package admin

import (
	"errors"
	"strconv"

	"github.com/sellerdesk/internal/http/response"
	"github.com/sellerdesk/internal/models"
	"github.com/sellerdesk/internal/repository"
	"github.com/sellerdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// LeadTimeEntryRequest 交期条目请求
type LeadTimeEntryRequest struct {
	QuantityRange string `json:"quantity_range" binding:"required"`
	StartQty      int    `json:"start_qty"`
	EndQty        int    `json:"end_qty"`
	LeadTime      int    `json:"lead_time"`
	LeadTimeUnit  string `json:"lead_time_unit"`
}

// LeadTimeTemplateRequest 交期模板创建/更新请求
type LeadTimeTemplateRequest struct {
	Name    string                 `json:"name"`
	Entries []LeadTimeEntryRequest `json:"entries"`
}

func toLeadTimeEntries(entries []LeadTimeEntryRequest) []models.LeadTimeEntry {
	result := make([]models.LeadTimeEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, models.LeadTimeEntry{
			QuantityRange: entry.QuantityRange,
			StartQty:      entry.StartQty,
			EndQty:        entry.EndQty,
			LeadTime:      entry.LeadTime,
			LeadTimeUnit:  entry.LeadTimeUnit,
		})
	}
	return result
}

// respondLeadTimeSaveError 将保存前置校验错误映射为响应
func respondLeadTimeSaveError(c *gin.Context, err error) {
	var missing *service.MissingRangesError
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.lead_time_not_found", nil)
	case errors.Is(err, service.ErrTemplateNameRequired):
		respondError(c, response.CodeBadRequest, "error.lead_time_name_required", nil)
	case errors.Is(err, service.ErrTemplateEntriesRequired):
		respondError(c, response.CodeBadRequest, "error.lead_time_entries_required", nil)
	case errors.As(err, &missing):
		locale := resolveLocale(c)
		response.ErrorWithData(c, response.CodeBadRequest, translate(locale, "error.lead_time_range_missing"), gin.H{
			"missing_ranges": missing.Ranges,
		})
	case errors.Is(err, service.ErrTemplateDurationInvalid):
		respondError(c, response.CodeBadRequest, "error.lead_time_duration_invalid", nil)
	case errors.Is(err, service.ErrTemplateUnitInvalid):
		respondError(c, response.CodeBadRequest, "error.lead_time_unit_invalid", nil)
	case errors.Is(err, service.ErrTemplateRangeDuplicate):
		respondError(c, response.CodeBadRequest, "error.lead_time_range_duplicate", nil)
	case errors.Is(err, service.ErrTemplateNameDataExists):
		respondError(c, response.CodeConflict, "error.lead_time_name_data_exists", nil)
	case errors.Is(err, service.ErrTemplateNameExists):
		respondError(c, response.CodeConflict, "error.lead_time_name_exists", nil)
	case errors.Is(err, service.ErrTemplateDataExists):
		respondError(c, response.CodeConflict, "error.lead_time_data_exists", nil)
	default:
		respondError(c, response.CodeInternal, "error.lead_time_save_failed", err)
	}
}

// GetLeadTimeTemplates 获取交期模板列表
func (h *Handler) GetLeadTimeTemplates(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	templates, total, err := h.LeadTimeService.List(repository.LeadTimeTemplateListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.lead_time_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, templates, pagination)
}

// GetLeadTimeTemplate 获取交期模板详情
func (h *Handler) GetLeadTimeTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	template, err := h.LeadTimeService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.lead_time_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.lead_time_fetch_failed", err)
		return
	}
	response.Success(c, template)
}

// CreateLeadTimeTemplate 创建交期模板
func (h *Handler) CreateLeadTimeTemplate(c *gin.Context) {
	var req LeadTimeTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	template, err := h.LeadTimeService.Create(req.Name, toLeadTimeEntries(req.Entries))
	if err != nil {
		respondLeadTimeSaveError(c, err)
		return
	}
	response.Success(c, template)
}

// UpdateLeadTimeTemplate 更新交期模板
func (h *Handler) UpdateLeadTimeTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req LeadTimeTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	template, err := h.LeadTimeService.Update(id, req.Name, toLeadTimeEntries(req.Entries))
	if err != nil {
		respondLeadTimeSaveError(c, err)
		return
	}
	response.Success(c, template)
}

// DeleteLeadTimeTemplate 删除交期模板
func (h *Handler) DeleteLeadTimeTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.LeadTimeService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.lead_time_not_found", nil)
		case errors.Is(err, service.ErrTemplateInUse):
			respondError(c, response.CodeBadRequest, "error.lead_time_in_use", nil)
		default:
			respondError(c, response.CodeInternal, "error.lead_time_delete_failed", err)
		}
		return
	}
	response.Success(c, nil)
}

// LeadTimeSessionRequest 交期编辑会话请求
type LeadTimeSessionRequest struct {
	Entries []LeadTimeEntryRequest      `json:"entries"`
	State   service.ReconciliationState `json:"state"`
}

// ReconcileLeadTimeSession 用当前条目与模板库折叠一次会话状态
func (h *Handler) ReconcileLeadTimeSession(c *gin.Context) {
	var req LeadTimeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	state, phase, err := h.LeadTimeService.ReconcileSession(toLeadTimeEntries(req.Entries), req.State)
	if err != nil {
		if errors.Is(err, service.ErrTemplateRangeDuplicate) {
			respondError(c, response.CodeBadRequest, "error.lead_time_range_duplicate", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.lead_time_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"state": state,
		"phase": phase,
	})
}

// LeadTimeApplyRequest 模板载入请求
type LeadTimeApplyRequest struct {
	TemplateID uint                        `json:"template_id" binding:"required"`
	State      service.ReconciliationState `json:"state"`
}

// ApplyLeadTimeTemplate 载入模板到编辑会话
// 当前数据已命中该模板时直接确认，否则进入待确认状态。
func (h *Handler) ApplyLeadTimeTemplate(c *gin.Context) {
	var req LeadTimeApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	template, err := h.LeadTimeService.Get(req.TemplateID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.lead_time_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.lead_time_fetch_failed", err)
		return
	}

	state := service.ApplyTemplate(req.State, *template)
	response.Success(c, gin.H{
		"state":            state,
		"template":         template,
		"requires_confirm": state.PendingTemplateID != nil,
	})
}

// LeadTimeConfirmRequest 模板确认请求
type LeadTimeConfirmRequest struct {
	State service.ReconciliationState `json:"state"`
}

// ConfirmLeadTimeTemplate 确认已载入的模板
func (h *Handler) ConfirmLeadTimeTemplate(c *gin.Context) {
	var req LeadTimeConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	templates, err := h.LeadTimeService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "error.lead_time_fetch_failed", err)
		return
	}

	state := service.ConfirmTemplate(req.State, templates)
	response.Success(c, gin.H{"state": state})
}
