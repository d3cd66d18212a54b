package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/model"
	"lab-scheduler/internal/repository"
)

// ScheduleQueryService 排课读侧视图
// 每次调用都重新查询并排序，不缓存
type ScheduleQueryService interface {
	// AssistantWeeklySchedule 助教的 active 排课，按星期（周一在前）再按开始时间排序
	AssistantWeeklySchedule(ctx context.Context, labAssistantID string) ([]dto.ScheduleDetailResponse, error)
	// AssistantView 助教本人视图：个人信息 + 周课表
	AssistantView(ctx context.Context, labAssistantID string) (*dto.AssistantScheduleResponse, error)
	// ListAssignments 管理端排课列表，关联实体名称已展开
	ListAssignments(ctx context.Context, req *dto.AssignmentListRequest) ([]dto.ScheduleDetailResponse, error)
}

type scheduleQueryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleQueryService 创建 ScheduleQueryService 实例
func NewScheduleQueryService(repo *repository.Repository, logger *zap.Logger) ScheduleQueryService {
	return &scheduleQueryService{repo: repo, logger: logger}
}

func (s *scheduleQueryService) AssistantWeeklySchedule(ctx context.Context, labAssistantID string) ([]dto.ScheduleDetailResponse, error) {
	labAssistantID = strings.TrimSpace(labAssistantID)
	if labAssistantID == "" {
		return nil, &ValidationError{Field: "lab_assistant_id", Reason: "不能为空"}
	}

	active := model.StatusActive
	list, err := s.repo.Assignment.ListDetailed(ctx, repository.AssignmentFilter{
		Status:         &active,
		LabAssistantID: labAssistantID,
	})
	if err != nil {
		s.logger.Error("查询助教课表失败", zap.String("lab_assistant_id", labAssistantID), zap.Error(err))
		return nil, storeErr("查询助教课表", err)
	}

	return toScheduleDetails(sortWeekly(list)), nil
}

func (s *scheduleQueryService) AssistantView(ctx context.Context, labAssistantID string) (*dto.AssistantScheduleResponse, error) {
	assistant, err := s.repo.LabAssistant.GetActiveByLabAssistantID(ctx, labAssistantID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询助教失败", zap.String("lab_assistant_id", labAssistantID), zap.Error(err))
		}
		return nil, lookupErr("查询助教", entityLabAssistant, labAssistantID, err)
	}

	schedules, err := s.AssistantWeeklySchedule(ctx, labAssistantID)
	if err != nil {
		return nil, err
	}

	return &dto.AssistantScheduleResponse{
		Assistant: *toLabAssistantResponse(assistant),
		Schedules: schedules,
	}, nil
}

func (s *scheduleQueryService) ListAssignments(ctx context.Context, req *dto.AssignmentListRequest) ([]dto.ScheduleDetailResponse, error) {
	var filter repository.AssignmentFilter
	switch req.Status {
	case "", string(model.StatusActive):
		st := model.StatusActive
		filter.Status = &st
	case string(model.StatusInactive):
		st := model.StatusInactive
		filter.Status = &st
	case "all":
	default:
		return nil, &ValidationError{Field: "status", Reason: "取值必须为 active、inactive 或 all"}
	}

	list, err := s.repo.Assignment.ListDetailed(ctx, filter)
	if err != nil {
		s.logger.Error("查询排课列表失败", zap.Error(err))
		return nil, storeErr("查询排课列表", err)
	}

	return toScheduleDetails(sortWeekly(list)), nil
}

// sortWeekly 按星期序号（Monday=0 … Sunday=6）再按 "HH:MM" 字典序排序
// 缺少时间段关联的记录排在最后
func sortWeekly(list []model.ScheduleAssignment) []model.ScheduleAssignment {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].TimeSlot, list[j].TimeSlot
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		if ai, bi := a.DayOfWeek.Index(), b.DayOfWeek.Index(); ai != bi {
			return ai < bi
		}
		return a.StartTime < b.StartTime
	})
	return list
}

func toScheduleDetails(list []model.ScheduleAssignment) []dto.ScheduleDetailResponse {
	result := make([]dto.ScheduleDetailResponse, 0, len(list))
	for i := range list {
		result = append(result, *toScheduleDetail(&list[i]))
	}
	return result
}
