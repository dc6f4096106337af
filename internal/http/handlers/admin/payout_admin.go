package admin

import (
	"errors"
	"strconv"

	"github.com/sellerdesk/internal/http/response"
	"github.com/sellerdesk/internal/repository"
	"github.com/sellerdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// GetPayouts 获取结算单列表
func (h *Handler) GetPayouts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	statements, total, err := h.PayoutService.List(repository.PayoutListFilter{
		Page:       page,
		PageSize:   pageSize,
		Status:     c.Query("status"),
		PeriodFrom: parseTimeQuery(c, "period_from"),
		PeriodTo:   parseTimeQuery(c, "period_to"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.payout_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, statements, pagination)
}

// GetPayout 获取结算单详情
func (h *Handler) GetPayout(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	statement, err := h.PayoutService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.payout_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.payout_fetch_failed", err)
		return
	}
	response.Success(c, statement)
}

// GeneratePayoutRequest 生成结算单请求
type GeneratePayoutRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

// GeneratePayout 生成指定周期的结算单
func (h *Handler) GeneratePayout(c *gin.Context) {
	var req GeneratePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	periodStart := parseDateValue(req.PeriodStart)
	periodEnd := parseDateValue(req.PeriodEnd)
	if periodStart == nil || periodEnd == nil {
		respondError(c, response.CodeBadRequest, "error.payout_period_invalid", nil)
		return
	}

	statement, err := h.PayoutService.Generate(*periodStart, *periodEnd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPayoutPeriodInvalid):
			respondError(c, response.CodeBadRequest, "error.payout_period_invalid", nil)
		case errors.Is(err, service.ErrPayoutExists):
			respondError(c, response.CodeConflict, "error.payout_exists", nil)
		default:
			respondError(c, response.CodeInternal, "error.payout_generate_failed", err)
		}
		return
	}
	response.Success(c, statement)
}

// SettlePayout 标记结算单为已结算
func (h *Handler) SettlePayout(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	statement, err := h.PayoutService.MarkSettled(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.payout_not_found", nil)
		case errors.Is(err, service.ErrPayoutSettled):
			respondError(c, response.CodeBadRequest, "error.payout_settled", nil)
		default:
			respondError(c, response.CodeInternal, "error.payout_generate_failed", err)
		}
		return
	}
	response.Success(c, statement)
}

// DeletePayout 删除未结算的结算单
func (h *Handler) DeletePayout(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.PayoutService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.payout_not_found", nil)
		case errors.Is(err, service.ErrPayoutSettled):
			respondError(c, response.CodeBadRequest, "error.payout_settled", nil)
		default:
			respondError(c, response.CodeInternal, "error.payout_fetch_failed", err)
		}
		return
	}
	response.Success(c, nil)
}
