package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/model"
	"lab-scheduler/internal/repository"
)

// ConflictService 冲突检测业务接口
//
// 纯读操作：返回同一时间段内与候选实验室或助教冲突的全部 active 排课，
// 每条记录只出现一次（实验室与助教同时冲突也只算一条）。结果为空即可排。
type ConflictService interface {
	FindConflicts(ctx context.Context, candidate repository.ConflictCandidate, excludeID string) ([]Conflict, error)
	Check(ctx context.Context, req *dto.CheckConflictRequest) (*dto.CheckConflictResponse, error)
}

type conflictService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewConflictService 创建 ConflictService 实例
func NewConflictService(repo *repository.Repository, logger *zap.Logger) ConflictService {
	return &conflictService{repo: repo, logger: logger}
}

func (s *conflictService) FindConflicts(ctx context.Context, candidate repository.ConflictCandidate, excludeID string) ([]Conflict, error) {
	candidate = trimCandidate(candidate)
	excludeID = strings.TrimSpace(excludeID)
	if err := validateCandidate(candidate); err != nil {
		return nil, err
	}
	conflicts, err := detectConflicts(ctx, s.repo.Assignment, candidate, excludeID)
	if err != nil {
		s.logger.Error("冲突检测失败",
			zap.String("lab_room_id", candidate.LabRoomID),
			zap.String("lab_assistant_id", candidate.LabAssistantID),
			zap.String("time_slot_id", candidate.TimeSlotID),
			zap.Error(err),
		)
		return nil, storeErr("冲突检测", err)
	}
	return conflicts, nil
}

func (s *conflictService) Check(ctx context.Context, req *dto.CheckConflictRequest) (*dto.CheckConflictResponse, error) {
	excludeID := ""
	if req.ExcludeAssignmentID != nil {
		excludeID = *req.ExcludeAssignmentID
	}

	conflicts, err := s.FindConflicts(ctx, repository.ConflictCandidate{
		LabRoomID:      req.LabRoomID,
		LabAssistantID: req.LabAssistantID,
		TimeSlotID:     req.TimeSlotID,
	}, excludeID)
	if err != nil {
		return nil, err
	}

	return &dto.CheckConflictResponse{
		HasConflict: len(conflicts) > 0,
		Conflicts:   toConflictEntries(conflicts),
	}, nil
}

// detectConflicts 在给定 AssignmentRepository 上检测冲突（事务内外共用）
func detectConflicts(ctx context.Context, assignments repository.AssignmentRepository, c repository.ConflictCandidate, excludeID string) ([]Conflict, error) {
	found, err := assignments.FindConflicts(ctx, c, excludeID)
	if err != nil {
		return nil, err
	}

	conflicts := make([]Conflict, 0, len(found))
	seen := make(map[string]struct{}, len(found))
	for _, a := range found {
		if a.Status != model.StatusActive || a.TimeSlotID != c.TimeSlotID {
			continue
		}
		if excludeID != "" && a.ScheduleAssignmentID == excludeID {
			continue
		}
		if _, dup := seen[a.ScheduleAssignmentID]; dup {
			continue
		}

		roomHit := a.LabRoomID == c.LabRoomID
		assistantHit := a.LabAssistantID == c.LabAssistantID
		var dim ConflictDimension
		switch {
		case roomHit && assistantHit:
			dim = DimensionRoomAndAssistant
		case roomHit:
			dim = DimensionRoom
		case assistantHit:
			dim = DimensionAssistant
		default:
			continue
		}

		seen[a.ScheduleAssignmentID] = struct{}{}
		conflicts = append(conflicts, Conflict{Assignment: a, Dimension: dim})
	}
	return conflicts, nil
}

func trimCandidate(c repository.ConflictCandidate) repository.ConflictCandidate {
	return repository.ConflictCandidate{
		LabRoomID:      strings.TrimSpace(c.LabRoomID),
		LabAssistantID: strings.TrimSpace(c.LabAssistantID),
		TimeSlotID:     strings.TrimSpace(c.TimeSlotID),
	}
}

func validateCandidate(c repository.ConflictCandidate) error {
	switch {
	case c.LabRoomID == "":
		return &ValidationError{Field: "lab_room_id", Reason: "不能为空"}
	case c.LabAssistantID == "":
		return &ValidationError{Field: "lab_assistant_id", Reason: "不能为空"}
	case c.TimeSlotID == "":
		return &ValidationError{Field: "time_slot_id", Reason: "不能为空"}
	}
	return nil
}

func toConflictEntries(conflicts []Conflict) []dto.ConflictEntryResponse {
	entries := make([]dto.ConflictEntryResponse, 0, len(conflicts))
	for i := range conflicts {
		entries = append(entries, dto.ConflictEntryResponse{
			Assignment: *toAssignmentResponse(&conflicts[i].Assignment),
			Dimension:  string(conflicts[i].Dimension),
		})
	}
	return entries
}
