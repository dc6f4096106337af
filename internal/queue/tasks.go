package queue

import (
	"encoding/json"

	"github.com/sellerdesk/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskReportExport 销售报表导出任务
	TaskReportExport = constants.TaskReportExport
	// TaskMediaCleanup 上传媒体清理任务
	TaskMediaCleanup = constants.TaskMediaCleanup
)

// ReportExportPayload 销售报表导出任务载荷
type ReportExportPayload struct {
	Range string `json:"range"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

// MediaCleanupPayload 上传媒体清理任务载荷
type MediaCleanupPayload struct {
	OlderThanDays int `json:"older_than_days"`
}

// NewReportExportTask 创建报表导出任务
func NewReportExportTask(payload ReportExportPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportExport, body), nil
}

// NewMediaCleanupTask 创建媒体清理任务
func NewMediaCleanupTask(payload MediaCleanupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMediaCleanup, body), nil
}
