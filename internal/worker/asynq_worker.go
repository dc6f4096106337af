package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/sellerdesk/internal/logger"
	"github.com/sellerdesk/internal/provider"
	"github.com/sellerdesk/internal/queue"
	"github.com/sellerdesk/internal/service"

	"github.com/hibiken/asynq"
)

const uploadBaseDir = "uploads"

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskReportExport, c.handleReportExport)
	mux.HandleFunc(queue.TaskMediaCleanup, c.handleMediaCleanup)
}

func (c *Consumer) handleReportExport(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_report_export_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ReportExportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_report_export_unmarshal_failed", "error", err)
		return err
	}
	if c.ExportService == nil {
		logger.Warnw("worker_report_export_skip_export_service_nil", "range", payload.Range)
		return nil
	}

	input := service.ReportQueryInput{Range: payload.Range}
	if from, err := time.Parse(time.RFC3339, payload.From); err == nil {
		input.From = &from
	}
	if to, err := time.Parse(time.RFC3339, payload.To); err == nil {
		input.To = &to
	}

	path, err := c.ExportService.ExportSalesReport(ctx, input)
	if err != nil {
		logger.Warnw("worker_report_export_failed", "range", payload.Range, "error", err)
		return err
	}
	logger.Infow("worker_report_export_done", "range", payload.Range, "path", path)
	return nil
}

func (c *Consumer) handleMediaCleanup(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_media_cleanup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.MediaCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_media_cleanup_unmarshal_failed", "error", err)
		return err
	}
	olderThan := payload.OlderThanDays
	if olderThan <= 0 {
		olderThan = 30
	}
	cutoff := time.Now().AddDate(0, 0, -olderThan)

	removed, err := cleanupMediaFiles(uploadBaseDir, cutoff)
	if err != nil {
		logger.Warnw("worker_media_cleanup_walk_failed", "error", err)
		return err
	}
	logger.Infow("worker_media_cleanup_done", "older_than_days", olderThan, "removed", removed)
	return nil
}

func cleanupMediaFiles(baseDir string, cutoff time.Time) (int, error) {
	removed := 0
	err := filepath.Walk(baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if rmErr := os.Remove(path); rmErr != nil {
				logger.Warnw("worker_media_cleanup_remove_failed", "path", path, "error", rmErr)
				return nil
			}
			removed++
		}
		return nil
	})
	return removed, err
}
