package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qaidjoharj53/Job-Portal/internal/dto"
	"github.com/qaidjoharj53/Job-Portal/internal/service"
	"github.com/qaidjoharj53/Job-Portal/pkg/response"
)

// JobHandler 岗位模块 HTTP 处理器
type JobHandler struct {
	jobSvc service.JobService
}

// NewJobHandler 创建 JobHandler
func NewJobHandler(jobSvc service.JobService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc}
}

// ListJobs 本学院岗位列表
// GET /api/v1/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	jobs, err := h.jobSvc.List(c.Request.Context(), caller)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	response.OK(c, gin.H{"jobs": jobs})
}

// GetJob 岗位详情
// GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	job, err := h.jobSvc.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	response.OK(c, job)
}

// CreateJob 发布岗位（仅管理员）
// POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobSvc.Create(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	response.Created(c, job)
}

// handleJobError 将岗位模块业务错误映射为 HTTP 响应
func (h *JobHandler) handleJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, 10002, "Unauthorized")
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, 10001, validationMessage(err))
	case errors.Is(err, service.ErrJobNotFound):
		response.NotFound(c, 13001, "Job not found or access denied")
	default:
		response.InternalError(c, "")
	}
}
