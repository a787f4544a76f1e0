package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qaidjoharj53/Job-Portal/internal/dto"
	"github.com/qaidjoharj53/Job-Portal/internal/service"
	"github.com/qaidjoharj53/Job-Portal/pkg/response"
)

// ApplicationHandler 投递模块 HTTP 处理器
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler 创建 ApplicationHandler
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// Apply 学生投递岗位
// POST /api/v1/jobs/apply
func (h *ApplicationHandler) Apply(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.appSvc.Apply(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.Created(c, result)
}

// ListForJob 管理员查看岗位下的投递
// GET /api/v1/jobs/:id/applications
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	apps, err := h.appSvc.ListForJob(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"applications": apps})
}

// ListMine 学生查看本人投递
// GET /api/v1/applications
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	apps, err := h.appSvc.ListForStudent(c.Request.Context(), caller)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"applications": apps})
}

// UpdateStatus 管理员修改投递状态
// PUT /api/v1/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.appSvc.SetStatus(c.Request.Context(), caller, c.Param("id"), req.Status); err != nil {
		h.handleApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"id": c.Param("id"), "status": req.Status})
}

// handleApplicationError 将投递模块业务错误映射为 HTTP 响应
func (h *ApplicationHandler) handleApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, 10002, "Unauthorized")
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, 10001, validationMessage(err))
	case errors.Is(err, service.ErrApplyJobNotFound):
		response.NotFound(c, 14001, "Job not found")
	case errors.Is(err, service.ErrJobForbidden):
		response.Forbidden(c, 14002, "You can only apply to jobs from your college")
	case errors.Is(err, service.ErrAlreadyApplied):
		response.Conflict(c, 14003, "You have already applied to this job")
	case errors.Is(err, service.ErrJobNotFound):
		response.NotFound(c, 13001, "Job not found or access denied")
	case errors.Is(err, service.ErrApplicationNotFound):
		response.NotFound(c, 14004, "Application not found or access denied")
	default:
		response.InternalError(c, "")
	}
}
