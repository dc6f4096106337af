package admin

import (
	"github.com/sellerdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传单个文件
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	scene := c.DefaultPostForm("scene", "common")

	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), err)
		return
	}
	response.Success(c, gin.H{"url": url})
}

// UploadBatch 批量上传文件
// 单个文件失败不影响其余文件，逐个返回结果。
func (h *Handler) UploadBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	scene := c.DefaultPostForm("scene", "common")

	results := h.UploadService.SaveBatch(files, scene)
	succeeded := 0
	for _, result := range results {
		if result.Error == "" {
			succeeded++
		}
	}
	response.Success(c, gin.H{
		"results":   results,
		"total":     len(results),
		"succeeded": succeeded,
	})
}
