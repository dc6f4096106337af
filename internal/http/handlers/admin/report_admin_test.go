package admin

import (
	"testing"
	"time"
)

func TestExportReportRequestToQueryInputCustomRange(t *testing.T) {
	req := ExportReportRequest{
		Range: "custom",
		From:  "2026-08-01",
		To:    "2026-08-20T00:00:00Z",
	}

	input := req.toQueryInput()
	if input.Range != "custom" {
		t.Fatalf("range want custom got %s", input.Range)
	}
	if input.From == nil || input.To == nil {
		t.Fatalf("custom bounds must be carried into the query input, got from=%v to=%v", input.From, input.To)
	}
	wantFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !input.From.Equal(wantFrom) {
		t.Fatalf("from want %v got %v", wantFrom, input.From)
	}
	wantTo := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	if !input.To.Equal(wantTo) {
		t.Fatalf("to want %v got %v", wantTo, input.To)
	}
}

func TestExportReportRequestToQueryInputBlankBounds(t *testing.T) {
	input := ExportReportRequest{Range: "7d"}.toQueryInput()
	if input.From != nil || input.To != nil {
		t.Fatalf("blank bounds should stay nil, got from=%v to=%v", input.From, input.To)
	}

	input = ExportReportRequest{Range: "custom", From: "not-a-date", To: "  "}.toQueryInput()
	if input.From != nil || input.To != nil {
		t.Fatalf("unparseable bounds should stay nil, got from=%v to=%v", input.From, input.To)
	}
}
