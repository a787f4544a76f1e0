package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/qaidjoharj53/Job-Portal/internal/dto"
	"github.com/qaidjoharj53/Job-Portal/internal/model"
	"github.com/qaidjoharj53/Job-Portal/internal/repository"
	applogger "github.com/qaidjoharj53/Job-Portal/pkg/logger"
)

// ── 岗位模块业务错误 ──

var (
	// ErrJobNotFound 岗位不存在或不属于调用者学院（两者不作区分）
	ErrJobNotFound = errors.New("job not found or access denied")
)

const (
	jobStatusActive  = "active"
	jobStatusExpired = "expired"
)

// JobService 岗位业务接口
// 所有读写均限定在调用者所属学院内
type JobService interface {
	List(ctx context.Context, caller *Caller) ([]dto.JobResponse, error)
	Get(ctx context.Context, caller *Caller, jobID string) (*dto.JobResponse, error)
	Create(ctx context.Context, caller *Caller, req *dto.CreateJobRequest) (*dto.JobResponse, error)
}

type jobService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewJobService 创建 JobService 实例
func NewJobService(repo *repository.Repository, logger *zap.Logger) JobService {
	return &jobService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *jobService) List(ctx context.Context, caller *Caller) ([]dto.JobResponse, error) {
	if !caller.can(model.CapViewJobs) {
		return nil, ErrUnauthorized
	}

	jobs, err := s.repo.Job.ListByCollege(ctx, caller.CollegeID)
	if err != nil {
		applogger.FromContext(ctx, s.logger).Error("查询岗位列表失败",
			zap.String("college_id", caller.CollegeID), zap.Error(err))
		return nil, err
	}

	return s.annotate(ctx, caller, jobs)
}

// ────────────────────── Get ──────────────────────

func (s *jobService) Get(ctx context.Context, caller *Caller, jobID string) (*dto.JobResponse, error) {
	if !caller.can(model.CapViewJobs) {
		return nil, ErrUnauthorized
	}

	job, err := loadOwnedJob(ctx, s.repo, s.logger, caller, jobID)
	if err != nil {
		return nil, err
	}

	result, err := s.annotate(ctx, caller, []model.Job{*job})
	if err != nil {
		return nil, err
	}
	return &result[0], nil
}

// ────────────────────── Create ──────────────────────

func (s *jobService) Create(ctx context.Context, caller *Caller, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if !caller.can(model.CapPostJob) {
		return nil, ErrUnauthorized
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	location := strings.TrimSpace(req.Location)
	deadlineStr := strings.TrimSpace(req.Deadline)
	if title == "" || description == "" || location == "" || deadlineStr == "" {
		return nil, validationError("Missing required fields")
	}

	jobType := model.JobTypeFullTime
	if t := strings.TrimSpace(req.Type); t != "" {
		jobType = model.JobType(t)
		if !jobType.Valid() {
			return nil, validationError("Invalid job type")
		}
	}

	deadline, err := time.Parse(dateLayout, deadlineStr)
	if err != nil {
		return nil, validationError("Invalid deadline, expected YYYY-MM-DD")
	}

	// college_id / posted_by 只取自调用者身份
	job := &model.Job{
		Title:        title,
		Description:  description,
		Location:     location,
		Type:         jobType,
		Deadline:     deadline,
		SalaryRange:  optionalString(req.SalaryRange),
		Requirements: optionalString(req.Requirements),
		CollegeID:    caller.CollegeID,
		PostedBy:     caller.UserID,
	}
	if err := s.repo.Job.Create(ctx, job); err != nil {
		applogger.FromContext(ctx, s.logger).Error("创建岗位失败",
			zap.String("college_id", caller.CollegeID), zap.Error(err))
		return nil, err
	}

	applogger.FromContext(ctx, s.logger).Info("岗位创建成功",
		zap.String("job_id", job.JobID),
		zap.String("college_id", job.CollegeID),
		zap.String("posted_by", job.PostedBy),
	)

	resp := toJobResponse(job, s.now())
	return &resp, nil
}

// annotate 补充投递数；学生额外补充是否已投递
func (s *jobService) annotate(ctx context.Context, caller *Caller, jobs []model.Job) ([]dto.JobResponse, error) {
	log := applogger.FromContext(ctx, s.logger)

	ids := make([]string, 0, len(jobs))
	for i := range jobs {
		ids = append(ids, jobs[i].JobID)
	}

	counts, err := s.repo.Application.CountByJobs(ctx, ids)
	if err != nil {
		log.Error("统计投递数失败", zap.Error(err))
		return nil, err
	}

	var applied map[string]bool
	if caller.Role == model.RoleStudent {
		applied, err = s.repo.Application.AppliedJobIDs(ctx, caller.UserID, ids)
		if err != nil {
			log.Error("查询已投递岗位失败", zap.String("student_id", caller.UserID), zap.Error(err))
			return nil, err
		}
	}

	now := s.now()
	result := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp := toJobResponse(&jobs[i], now)
		resp.ApplicationsCount = counts[jobs[i].JobID]
		if applied != nil {
			has := applied[jobs[i].JobID]
			resp.HasApplied = &has
		}
		result = append(result, resp)
	}
	return result, nil
}

// loadOwnedJob 读取属于调用者学院的岗位；非法 ID、不存在与跨学院统一返回 ErrJobNotFound
func loadOwnedJob(ctx context.Context, repo *repository.Repository, logger *zap.Logger, caller *Caller, jobID string) (*model.Job, error) {
	if !isUUID(jobID) {
		return nil, ErrJobNotFound
	}
	job, err := repo.Job.GetByIDForCollege(ctx, jobID, caller.CollegeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		applogger.FromContext(ctx, logger).Error("查询岗位失败", zap.String("job_id", jobID), zap.Error(err))
		return nil, err
	}
	return job, nil
}

// ── 转换 ──

func toJobResponse(job *model.Job, now time.Time) dto.JobResponse {
	resp := dto.JobResponse{
		ID:           job.JobID,
		Title:        job.Title,
		Description:  job.Description,
		Location:     job.Location,
		Type:         string(job.Type),
		Deadline:     job.Deadline.Format(dateLayout),
		SalaryRange:  job.SalaryRange,
		Requirements: job.Requirements,
		CollegeID:    job.CollegeID,
		PostedBy:     job.PostedBy,
		CreatedAt:    formatTime(job.CreatedAt),
		Status:       jobStatusExpired,
	}
	if job.IsActive(now) {
		resp.Status = jobStatusActive
	}
	if job.College != nil {
		resp.CollegeName = job.College.Name
	}
	if job.Poster != nil {
		resp.PostedByName = job.Poster.Name
	}
	return resp
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
