package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qaidjoharj53/Job-Portal/internal/model"
)

// JobRepository 岗位数据访问接口
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id string) (*model.Job, error)
	// GetByIDForCollege 仅返回属于 collegeID 的岗位；不存在与跨学院均返回 ErrRecordNotFound
	GetByIDForCollege(ctx context.Context, id, collegeID string) (*model.Job, error)
	// ListByCollege 本学院岗位，按创建时间倒序
	ListByCollege(ctx context.Context, collegeID string) ([]model.Job, error)
}

// jobRepo JobRepository 的 GORM 实现
type jobRepo struct {
	db *gorm.DB
}

// NewJobRepo 创建 JobRepository 实例
func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Omit("College", "Poster").Create(job).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).
		Preload("College").Preload("Poster").
		Where("job_id = ?", id).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) GetByIDForCollege(ctx context.Context, id, collegeID string) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).
		Preload("College").Preload("Poster").
		Where("job_id = ? AND college_id = ?", id, collegeID).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) ListByCollege(ctx context.Context, collegeID string) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).
		Preload("College").Preload("Poster").
		Where("college_id = ?", collegeID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}
