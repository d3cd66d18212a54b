package service

import (
	"context"

	"go.uber.org/zap"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/repository"
)

// DashboardService 管理端首页统计
type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	var (
		resp dto.DashboardResponse
		err  error
	)

	counters := []struct {
		name  string
		count func(context.Context) (int64, error)
		dst   *int64
	}{
		{"lab_rooms", s.repo.LabRoom.CountActive, &resp.LabRooms},
		{"courses", s.repo.Course.CountActive, &resp.Courses},
		{"lab_assistants", s.repo.LabAssistant.CountActive, &resp.LabAssistants},
		{"active_assignments", s.repo.Assignment.CountActive, &resp.ActiveAssignments},
	}
	for _, c := range counters {
		if *c.dst, err = c.count(ctx); err != nil {
			s.logger.Error("统计失败", zap.String("item", c.name), zap.Error(err))
			return nil, storeErr("统计", err)
		}
	}

	return &resp, nil
}
