package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/qaidjoharj53/Job-Portal/internal/service"
	"github.com/qaidjoharj53/Job-Portal/pkg/response"
)

const (
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	calendarContentType = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器（Excel 导出 + 截止日期日历）
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// ExportApplications 导出岗位投递
// GET /api/v1/jobs/:id/applications/export
func (h *ExportHandler) ExportApplications(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportApplications(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// DeadlineCalendar 本学院岗位截止日期 iCalendar 订阅
// GET /api/v1/calendar/deadlines.ics
func (h *ExportHandler) DeadlineCalendar(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	body, err := h.calendarSvc.DeadlineCalendar(c.Request.Context(), caller)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=deadlines.ics")
	c.Data(http.StatusOK, calendarContentType, []byte(body))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, 10002, "Unauthorized")
	case errors.Is(err, service.ErrJobNotFound):
		response.NotFound(c, 13001, "Job not found or access denied")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 15001, "Failed to generate export")
	default:
		response.InternalError(c, "")
	}
}
