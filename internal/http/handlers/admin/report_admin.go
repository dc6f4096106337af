package admin

import (
	"strconv"
	"time"

	"github.com/sellerdesk/internal/http/response"
	"github.com/sellerdesk/internal/queue"
	"github.com/sellerdesk/internal/service"

	"github.com/gin-gonic/gin"
)

func reportQueryInput(c *gin.Context) service.ReportQueryInput {
	return service.ReportQueryInput{
		Range:        c.DefaultQuery("range", "7d"),
		From:         parseTimeQuery(c, "from"),
		To:           parseTimeQuery(c, "to"),
		ForceRefresh: c.Query("refresh") == "true",
	}
}

// GetReportOverview 获取销售总览
func (h *Handler) GetReportOverview(c *gin.Context) {
	overview, err := h.ReportService.Overview(c.Request.Context(), reportQueryInput(c))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.report_fetch_failed", err)
		return
	}
	response.Success(c, overview)
}

// GetReportTrends 获取按天销售趋势
func (h *Handler) GetReportTrends(c *gin.Context) {
	trends, err := h.ReportService.Trends(c.Request.Context(), reportQueryInput(c))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.report_fetch_failed", err)
		return
	}
	response.Success(c, trends)
}

// GetReportTopProducts 获取商品销量排行
func (h *Handler) GetReportTopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rankings, err := h.ReportService.TopProducts(c.Request.Context(), reportQueryInput(c), limit)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.report_fetch_failed", err)
		return
	}
	response.Success(c, rankings)
}

// ExportReportRequest 报表导出请求
type ExportReportRequest struct {
	Range string `json:"range"`
	From  string `json:"from"`
	To    string `json:"to"`
}

func (r ExportReportRequest) toQueryInput() service.ReportQueryInput {
	return service.ReportQueryInput{
		Range: r.Range,
		From:  parseDateValue(r.From),
		To:    parseDateValue(r.To),
	}
}

// ExportReport 提交销售报表导出任务
// 队列可用时异步执行，否则同步生成并返回文件路径。
// 自定义区间的边界在两条路径下同样生效。
func (h *Handler) ExportReport(c *gin.Context) {
	var req ExportReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.Range == "" {
		req.Range = "7d"
	}
	input := req.toQueryInput()

	if h.QueueClient.Enabled() {
		payload := queue.ReportExportPayload{Range: req.Range}
		if input.From != nil {
			payload.From = input.From.Format(time.RFC3339)
		}
		if input.To != nil {
			payload.To = input.To.Format(time.RFC3339)
		}
		if err := h.QueueClient.EnqueueReportExport(payload); err != nil {
			respondError(c, response.CodeInternal, "error.report_export_failed", err)
			return
		}
		response.Success(c, gin.H{"queued": true})
		return
	}

	path, err := h.ExportService.ExportSalesReport(c.Request.Context(), input)
	if err != nil {
		respondError(c, response.CodeInternal, "error.report_export_failed", err)
		return
	}
	response.Success(c, gin.H{"queued": false, "path": path})
}
