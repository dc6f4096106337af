package admin

import (
	"github.com/sellerdesk/internal/http/response"
	"github.com/sellerdesk/internal/queue"

	"github.com/gin-gonic/gin"
)

// MediaCleanupRequest 媒体清理任务请求
type MediaCleanupRequest struct {
	OlderThanDays int `json:"older_than_days"`
}

// EnqueueMediaCleanup 提交上传媒体清理任务
// 请求体可省略，older_than_days 为 0 时由消费端按 30 天处理。
func (h *Handler) EnqueueMediaCleanup(c *gin.Context) {
	var req MediaCleanupRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}
	if req.OlderThanDays < 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if !h.QueueClient.Enabled() {
		respondError(c, response.CodeBadRequest, "error.queue_disabled", nil)
		return
	}

	payload := queue.MediaCleanupPayload{OlderThanDays: req.OlderThanDays}
	if err := h.QueueClient.EnqueueMediaCleanup(payload); err != nil {
		respondError(c, response.CodeInternal, "error.media_cleanup_failed", err)
		return
	}
	response.Success(c, gin.H{"queued": true, "older_than_days": req.OlderThanDays})
}
