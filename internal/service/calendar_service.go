package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/qaidjoharj53/Job-Portal/internal/model"
	"github.com/qaidjoharj53/Job-Portal/internal/repository"
	applogger "github.com/qaidjoharj53/Job-Portal/pkg/logger"
)

const calendarProductID = "-//Job Portal//Deadlines//EN"

// CalendarService 截止日期日历订阅
type CalendarService interface {
	// DeadlineCalendar 本学院全部岗位的截止日期（RFC 5545，每岗位一个全天事件）
	DeadlineCalendar(ctx context.Context, caller *Caller) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger, now: time.Now}
}

func (s *calendarService) DeadlineCalendar(ctx context.Context, caller *Caller) (string, error) {
	if !caller.can(model.CapViewJobs) {
		return "", ErrUnauthorized
	}

	jobs, err := s.repo.Job.ListByCollege(ctx, caller.CollegeID)
	if err != nil {
		applogger.FromContext(ctx, s.logger).Error("查询岗位列表失败",
			zap.String("college_id", caller.CollegeID), zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName("Job deadlines")

	stamp := s.now().UTC()
	for i := range jobs {
		job := &jobs[i]
		day := time.Date(job.Deadline.Year(), job.Deadline.Month(), job.Deadline.Day(), 0, 0, 0, 0, time.UTC)

		event := cal.AddEvent(job.JobID + "@job-portal")
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("Application deadline: %s", job.Title))
		event.SetLocation(job.Location)
		event.SetDescription(fmt.Sprintf("%s (%s)", job.Title, job.Type))
	}

	return cal.Serialize(), nil
}
