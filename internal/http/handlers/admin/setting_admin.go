package admin

import (
	"github.com/sellerdesk/internal/constants"
	"github.com/sellerdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

var settingKeyWhitelist = map[string]struct{}{
	constants.SettingKeyCommissionRate:    {},
	constants.SettingKeyLowStockThreshold: {},
}

// GetSetting 获取设置项
func (h *Handler) GetSetting(c *gin.Context) {
	key := c.Param("key")
	if _, ok := settingKeyWhitelist[key]; !ok {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}

	value, err := h.SettingService.GetByKey(key)
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"key": key, "value": value})
}

// UpdateSettingRequest 更新设置请求
type UpdateSettingRequest struct {
	Value map[string]interface{} `json:"value" binding:"required"`
}

// UpdateSetting 更新设置项
func (h *Handler) UpdateSetting(c *gin.Context) {
	key := c.Param("key")
	if _, ok := settingKeyWhitelist[key]; !ok {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	value, err := h.SettingService.Update(key, req.Value)
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_save_failed", err)
		return
	}
	response.Success(c, gin.H{"key": key, "value": value})
}
