package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/qaidjoharj53/Job-Portal/internal/model"
	"github.com/qaidjoharj53/Job-Portal/internal/repository"
	applogger "github.com/qaidjoharj53/Job-Portal/pkg/logger"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("failed to generate spreadsheet")
)

const exportSheetName = "Applications"

// ExportService 导出业务接口
//
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 与岗位投递列表相同的租户规则：不存在与跨学院不作区分
type ExportService interface {
	// ExportApplications 导出岗位投递为 Excel，返回内容与建议文件名
	ExportApplications(ctx context.Context, caller *Caller, jobID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportApplications 导出岗位投递为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 第 1 行：岗位标题（合并单元格）
//   - 第 2 行：表头 Name | Email | Status | Applied At
//   - 第 3 行起：按投递时间倒序

func (s *exportService) ExportApplications(ctx context.Context, caller *Caller, jobID string) (*bytes.Buffer, string, error) {
	if !caller.can(model.CapReviewApplications) {
		return nil, "", ErrUnauthorized
	}
	log := applogger.FromContext(ctx, s.logger)

	job, err := loadOwnedJob(ctx, s.repo, s.logger, caller, jobID)
	if err != nil {
		return nil, "", err
	}

	apps, err := s.repo.Application.ListByJob(ctx, job.JobID)
	if err != nil {
		log.Error("查询岗位投递失败", zap.String("job_id", job.JobID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheetName)
	if err != nil {
		log.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(exportSheetName, "A", "A", 24)
	f.SetColWidth(exportSheetName, "B", "B", 32)
	f.SetColWidth(exportSheetName, "C", "C", 12)
	f.SetColWidth(exportSheetName, "D", "D", 24)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(exportSheetName, "A1", job.Title)
	f.MergeCell(exportSheetName, "A1", "D1")
	f.SetCellStyle(exportSheetName, "A1", "D1", headerStyle)

	// 表头
	headers := []string{"Name", "Email", "Status", "Applied At"}
	for i, h := range headers {
		f.SetCellValue(exportSheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(exportSheetName, "A2", "D2", headerStyle)

	// 数据行
	row := 3
	for _, app := range apps {
		name, email := "", ""
		if app.Student != nil {
			name, email = app.Student.Name, app.Student.Email
		}
		f.SetCellValue(exportSheetName, cell("A", row), name)
		f.SetCellValue(exportSheetName, cell("B", row), email)
		f.SetCellValue(exportSheetName, cell("C", row), string(app.Status))
		f.SetCellValue(exportSheetName, cell("D", row), formatTime(app.AppliedAt))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		log.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	log.Info("投递导出完成", zap.String("job_id", job.JobID), zap.Int("rows", len(apps)))

	filename := fmt.Sprintf("applications_%s.xlsx", job.JobID)
	return buf, filename, nil
}

// colName 0-based 列索引 → Excel 列名
func colName(index int) string {
	name, _ := excelize.ColumnNumberToName(index + 1)
	return name
}

// cell 列名 + 行号 → 单元格坐标
func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
