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
	pkgerrors "github.com/qaidjoharj53/Job-Portal/pkg/errors"
	applogger "github.com/qaidjoharj53/Job-Portal/pkg/logger"
)

// ── 投递模块业务错误 ──

var (
	ErrJobForbidden        = errors.New("you can only apply to jobs from your college")
	ErrAlreadyApplied      = errors.New("you have already applied to this job")
	ErrApplicationNotFound = errors.New("application not found or access denied")
	// ErrApplyJobNotFound 投递时岗位不存在（区别于跨学院的 ErrJobForbidden）
	ErrApplyJobNotFound = errors.New("job not found")
)

// ApplicationService 投递工作流业务接口
//
// 状态流转不设前置条件：pending / accepted / rejected 之间任意互相覆盖，
// 以最后一次写入为准，不保留历史。
type ApplicationService interface {
	Apply(ctx context.Context, caller *Caller, req *dto.ApplyRequest) (*dto.ApplyResponse, error)
	ListForJob(ctx context.Context, caller *Caller, jobID string) ([]dto.JobApplicationResponse, error)
	ListForStudent(ctx context.Context, caller *Caller) ([]dto.StudentApplicationResponse, error)
	SetStatus(ctx context.Context, caller *Caller, applicationID string, status string) error
}

type applicationService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(repo *repository.Repository, logger *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Apply ──────────────────────

func (s *applicationService) Apply(ctx context.Context, caller *Caller, req *dto.ApplyRequest) (*dto.ApplyResponse, error) {
	if !caller.can(model.CapApply) {
		return nil, ErrUnauthorized
	}
	log := applogger.FromContext(ctx, s.logger)

	jobID := strings.TrimSpace(req.JobID)
	if jobID == "" {
		return nil, validationError("Job ID is required")
	}
	if !isUUID(jobID) {
		return nil, ErrApplyJobNotFound
	}

	job, err := s.repo.Job.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplyJobNotFound
		}
		log.Error("查询岗位失败", zap.String("job_id", jobID), zap.Error(err))
		return nil, err
	}
	if job.CollegeID != caller.CollegeID {
		log.Warn("跨学院投递被拒绝",
			zap.String("job_id", jobID),
			zap.String("student_id", caller.UserID),
		)
		return nil, ErrJobForbidden
	}

	// 预检仅用于给出友好提示，并发下由唯一约束兜底
	exists, err := s.repo.Application.ExistsForJobAndStudent(ctx, jobID, caller.UserID)
	if err != nil {
		log.Error("查询投递记录失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	now := s.now()
	app := &model.Application{
		JobID:     jobID,
		StudentID: caller.UserID,
		Status:    model.ApplicationPending,
		AppliedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Application.Create(ctx, app); err != nil {
		if pkgerrors.IsUniqueViolation(err, repository.ConstraintApplicationUnique) {
			return nil, ErrAlreadyApplied
		}
		log.Error("创建投递失败", zap.String("job_id", jobID), zap.Error(err))
		return nil, err
	}

	log.Info("投递成功",
		zap.String("application_id", app.ApplicationID),
		zap.String("job_id", jobID),
		zap.String("student_id", caller.UserID),
	)

	return &dto.ApplyResponse{
		ID:        app.ApplicationID,
		JobID:     app.JobID,
		Status:    string(app.Status),
		AppliedAt: formatTime(app.AppliedAt),
	}, nil
}

// ────────────────────── ListForJob ──────────────────────

func (s *applicationService) ListForJob(ctx context.Context, caller *Caller, jobID string) ([]dto.JobApplicationResponse, error) {
	if !caller.can(model.CapReviewApplications) {
		return nil, ErrUnauthorized
	}

	if _, err := loadOwnedJob(ctx, s.repo, s.logger, caller, jobID); err != nil {
		return nil, err
	}

	apps, err := s.repo.Application.ListByJob(ctx, jobID)
	if err != nil {
		applogger.FromContext(ctx, s.logger).Error("查询岗位投递失败", zap.String("job_id", jobID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.JobApplicationResponse, 0, len(apps))
	for i := range apps {
		item := dto.JobApplicationResponse{
			ID:        apps[i].ApplicationID,
			Status:    string(apps[i].Status),
			AppliedAt: formatTime(apps[i].AppliedAt),
			StudentID: apps[i].StudentID,
		}
		if apps[i].Student != nil {
			item.StudentName = apps[i].Student.Name
			item.StudentEmail = apps[i].Student.Email
		}
		result = append(result, item)
	}
	return result, nil
}

// ────────────────────── ListForStudent ──────────────────────

func (s *applicationService) ListForStudent(ctx context.Context, caller *Caller) ([]dto.StudentApplicationResponse, error) {
	if !caller.can(model.CapViewOwnApplications) {
		return nil, ErrUnauthorized
	}

	apps, err := s.repo.Application.ListByStudent(ctx, caller.UserID)
	if err != nil {
		applogger.FromContext(ctx, s.logger).Error("查询本人投递失败", zap.String("student_id", caller.UserID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentApplicationResponse, 0, len(apps))
	for i := range apps {
		item := dto.StudentApplicationResponse{
			ID:        apps[i].ApplicationID,
			JobID:     apps[i].JobID,
			Status:    string(apps[i].Status),
			AppliedAt: formatTime(apps[i].AppliedAt),
		}
		if job := apps[i].Job; job != nil {
			item.Title = job.Title
			item.Location = job.Location
			item.Deadline = job.Deadline.Format(dateLayout)
			if job.College != nil {
				item.CollegeName = job.College.Name
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// ────────────────────── SetStatus ──────────────────────

func (s *applicationService) SetStatus(ctx context.Context, caller *Caller, applicationID string, status string) error {
	if !caller.can(model.CapReviewApplications) {
		return ErrUnauthorized
	}

	newStatus := model.ApplicationStatus(strings.TrimSpace(status))
	if !newStatus.Valid() {
		return validationError("Invalid status")
	}
	if !isUUID(applicationID) {
		return ErrApplicationNotFound
	}

	// 归属校验与更新在同一条 UPDATE 中完成
	updated, err := s.repo.Application.UpdateStatusForCollege(ctx, applicationID, caller.CollegeID, newStatus)
	if err != nil {
		applogger.FromContext(ctx, s.logger).Error("更新投递状态失败",
			zap.String("application_id", applicationID), zap.Error(err))
		return err
	}
	if !updated {
		return ErrApplicationNotFound
	}

	applogger.FromContext(ctx, s.logger).Info("投递状态已更新",
		zap.String("application_id", applicationID),
		zap.String("status", string(newStatus)),
		zap.String("admin_id", caller.UserID),
	)
	return nil
}
