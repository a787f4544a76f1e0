package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qaidjoharj53/Job-Portal/internal/model"
	pkgerrors "github.com/qaidjoharj53/Job-Portal/pkg/errors"
)

// CollegeRepository 学院数据访问接口
type CollegeRepository interface {
	Create(ctx context.Context, college *model.College) error
	GetByID(ctx context.Context, id string) (*model.College, error)
	List(ctx context.Context) ([]model.College, error)
}

// collegeRepo CollegeRepository 的 GORM 实现
type collegeRepo struct {
	db *gorm.DB
}

// NewCollegeRepo 创建 CollegeRepository 实例
func NewCollegeRepo(db *gorm.DB) CollegeRepository {
	return &collegeRepo{db: db}
}

func (r *collegeRepo) Create(ctx context.Context, college *model.College) error {
	return pkgerrors.TranslateDuplicate(r.db.WithContext(ctx).Create(college).Error)
}

func (r *collegeRepo) GetByID(ctx context.Context, id string) (*model.College, error) {
	var college model.College
	err := r.db.WithContext(ctx).
		Where("college_id = ?", id).
		First(&college).Error
	if err != nil {
		return nil, err
	}
	return &college, nil
}

func (r *collegeRepo) List(ctx context.Context) ([]model.College, error) {
	var colleges []model.College
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&colleges).Error
	return colleges, err
}
