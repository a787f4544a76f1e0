package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/qaidjoharj53/Job-Portal/internal/dto"
	"github.com/qaidjoharj53/Job-Portal/internal/model"
	"github.com/qaidjoharj53/Job-Portal/internal/repository"
	applogger "github.com/qaidjoharj53/Job-Portal/pkg/logger"
)

// CollegeService 学院业务接口
type CollegeService interface {
	// List 注册页下拉框使用，无需登录
	List(ctx context.Context) ([]dto.CollegeResponse, error)
}

type collegeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCollegeService 创建 CollegeService 实例
func NewCollegeService(repo *repository.Repository, logger *zap.Logger) CollegeService {
	return &collegeService{repo: repo, logger: logger}
}

func (s *collegeService) List(ctx context.Context) ([]dto.CollegeResponse, error) {
	colleges, err := s.repo.College.List(ctx)
	if err != nil {
		applogger.FromContext(ctx, s.logger).Error("查询学院列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CollegeResponse, 0, len(colleges))
	for i := range colleges {
		result = append(result, *toCollegeResponse(&colleges[i]))
	}
	return result, nil
}

func toCollegeResponse(c *model.College) *dto.CollegeResponse {
	return &dto.CollegeResponse{
		ID:       c.CollegeID,
		Name:     c.Name,
		Email:    c.Email,
		Location: c.Location,
	}
}
