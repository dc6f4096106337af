package admin

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/sellerdesk/internal/config"
	"github.com/sellerdesk/internal/http/response"
	"github.com/sellerdesk/internal/provider"
	"github.com/sellerdesk/internal/queue"

	"github.com/gin-gonic/gin"
)

func newMaintenanceTestHandler(t *testing.T, queueEnabled bool) *Handler {
	t.Helper()
	client, err := queue.NewClient(&config.QueueConfig{Enabled: queueEnabled})
	if err != nil {
		t.Fatalf("new queue client: %v", err)
	}
	return New(&provider.Container{QueueClient: client})
}

func performMediaCleanup(t *testing.T, h *Handler, body string) response.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/admin/maintenance/media-cleanup", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.EnqueueMediaCleanup(c)

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return resp
}

func TestEnqueueMediaCleanupQueueDisabled(t *testing.T) {
	h := newMaintenanceTestHandler(t, false)
	resp := performMediaCleanup(t, h, `{"older_than_days":60}`)
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code want %d got %d", response.CodeBadRequest, resp.StatusCode)
	}
}

func TestEnqueueMediaCleanupRejectsNegativeDays(t *testing.T) {
	h := newMaintenanceTestHandler(t, false)
	resp := performMediaCleanup(t, h, `{"older_than_days":-1}`)
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code want %d got %d", response.CodeBadRequest, resp.StatusCode)
	}
}
