package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/sellerdesk/internal/http/response"
	"github.com/sellerdesk/internal/repository"
	"github.com/sellerdesk/internal/service"

	"github.com/gin-gonic/gin"
)

func parseDateValue(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if value, err := time.Parse(time.RFC3339, raw); err == nil {
		return &value
	}
	if value, err := time.Parse("2006-01-02", raw); err == nil {
		return &value
	}
	return nil
}

func parseTimeQuery(c *gin.Context, name string) *time.Time {
	return parseDateValue(c.Query(name))
}

// GetOrders 获取订单历史列表
func (h *Handler) GetOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.List(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      c.Query("status"),
		OrderNo:     c.Query("order_no"),
		BuyerEmail:  c.Query("buyer_email"),
		CreatedFrom: parseTimeQuery(c, "created_from"),
		CreatedTo:   parseTimeQuery(c, "created_to"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, order)
}
