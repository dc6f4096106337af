package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

var salesOverviewRows = []string{
	"订单总数", "已支付订单", "已完成订单", "待支付订单", "已取消订单",
	"已支付 GMV", "售出件数", "在售商品数", "低库存 SKU 数",
}

var salesTrendHeaders = []string{"日期", "订单总数", "已支付订单", "已支付 GMV"}

var topProductHeaders = []string{"商品 ID", "商品标题", "已支付订单", "销量", "支付金额"}

// ExportService 销售报表导出服务
// 生成三个工作表（总览 / 趋势 / 排行）的 xlsx 文件并落盘到导出目录。
type ExportService struct {
	reportService *ReportService
	exportDir     string
}

// NewExportService 创建导出服务
func NewExportService(reportService *ReportService, exportDir string) *ExportService {
	if exportDir == "" {
		exportDir = "./exports"
	}
	return &ExportService{
		reportService: reportService,
		exportDir:     exportDir,
	}
}

// ExportSalesReport 导出指定区间的销售报表，返回生成文件的路径。
func (s *ExportService) ExportSalesReport(ctx context.Context, input ReportQueryInput) (string, error) {
	// 导出走实时数据，跳过报表缓存
	input.ForceRefresh = true

	overview, err := s.reportService.Overview(ctx, input)
	if err != nil {
		return "", err
	}
	trends, err := s.reportService.Trends(ctx, input)
	if err != nil {
		return "", err
	}
	rankings, err := s.reportService.TopProducts(ctx, input, 20)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})

	if err := s.writeOverviewSheet(f, boldStyle, overview); err != nil {
		return "", err
	}
	if err := s.writeTrendSheet(f, boldStyle, trends); err != nil {
		return "", err
	}
	if err := s.writeTopProductSheet(f, boldStyle, rankings); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("创建导出目录失败: %w", err)
	}

	filename := fmt.Sprintf("sales_report_%s_%s.xlsx", overview.Range, time.Now().Format("20060102150405"))
	path := filepath.Join(s.exportDir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("保存导出文件失败: %w", err)
	}
	return path, nil
}

func (s *ExportService) writeOverviewSheet(f *excelize.File, headerStyle int, overview *ReportOverviewResponse) error {
	sheet := "总览"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "指标")
	f.SetCellValue(sheet, "B1", "数值")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)

	values := []interface{}{
		overview.KPI.OrdersTotal,
		overview.KPI.PaidOrders,
		overview.KPI.CompletedOrders,
		overview.KPI.PendingPaymentOrders,
		overview.KPI.CanceledOrders,
		overview.KPI.GMVPaid,
		overview.KPI.ItemsSold,
		overview.KPI.ActiveProducts,
		overview.KPI.LowStockVariants,
	}
	for i, name := range salesOverviewRows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), values[i])
	}

	summaryRow := len(salesOverviewRows) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "统计区间")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("%s ~ %s", overview.From, overview.To))

	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "B", 28)
	return nil
}

func (s *ExportService) writeTrendSheet(f *excelize.File, headerStyle int, trends *ReportTrendResponse) error {
	sheet := "趋势"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	for i, h := range salesTrendHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for i, point := range trends.Points {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), point.Day)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), point.OrdersTotal)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), point.OrdersPaid)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), point.GMVPaid)
	}

	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "D", 14)
	return nil
}

func (s *ExportService) writeTopProductSheet(f *excelize.File, headerStyle int, rankings []ReportProductRanking) error {
	sheet := "商品排行"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	for i, h := range topProductHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for i, ranking := range rankings {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), ranking.ProductID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ranking.Title)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), ranking.PaidOrders)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), ranking.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), ranking.PaidAmount)
	}

	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "B", 32)
	f.SetColWidth(sheet, "C", "E", 12)
	return nil
}
