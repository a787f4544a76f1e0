package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/qaidjoharj53/Job-Portal/internal/model"
	pkgerrors "github.com/qaidjoharj53/Job-Portal/pkg/errors"
)

// ApplicationRepository 投递数据访问接口
type ApplicationRepository interface {
	// Create 插入投递；(job_id, student_id) 冲突时返回 *pkgerrors.DuplicateKeyError
	Create(ctx context.Context, app *model.Application) error
	ExistsForJobAndStudent(ctx context.Context, jobID, studentID string) (bool, error)
	ListByJob(ctx context.Context, jobID string) ([]model.Application, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Application, error)
	// CountByJobs 批量统计各岗位投递数，避免 N+1 查询
	CountByJobs(ctx context.Context, jobIDs []string) (map[string]int64, error)
	// AppliedJobIDs 返回 jobIDs 中该学生已投递的岗位集合
	AppliedJobIDs(ctx context.Context, studentID string, jobIDs []string) (map[string]bool, error)
	// UpdateStatusForCollege 仅当投递所属岗位属于 collegeID 时更新状态
	// 返回 false 表示投递不存在或不属于该学院（两者不作区分）
	UpdateStatusForCollege(ctx context.Context, id, collegeID string, status model.ApplicationStatus) (bool, error)
}

// applicationRepo ApplicationRepository 的 GORM 实现
type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo 创建 ApplicationRepository 实例
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.Application) error {
	err := r.db.WithContext(ctx).Omit("Job", "Student").Create(app).Error
	return pkgerrors.TranslateDuplicate(err)
}

func (r *applicationRepo) ExistsForJobAndStudent(ctx context.Context, jobID, studentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("job_id = ? AND student_id = ?", jobID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Preload("Job").Preload("Job.College").
		Where("student_id = ?", studentID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepo) CountByJobs(ctx context.Context, jobIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(jobIDs))
	if len(jobIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		JobID string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Select("job_id, COUNT(*) AS count").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.JobID] = row.Count
	}
	return result, nil
}

func (r *applicationRepo) AppliedJobIDs(ctx context.Context, studentID string, jobIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(jobIDs) == 0 {
		return result, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("student_id = ? AND job_id IN ?", studentID, jobIDs).
		Pluck("job_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *applicationRepo) UpdateStatusForCollege(ctx context.Context, id, collegeID string, status model.ApplicationStatus) (bool, error) {
	ownedJobs := r.db.WithContext(ctx).
		Model(&model.Job{}).
		Select("job_id").
		Where("college_id = ?", collegeID)

	result := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("application_id = ? AND job_id IN (?)", id, ownedJobs).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
