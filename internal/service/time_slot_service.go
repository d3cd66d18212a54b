package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/model"
	"lab-scheduler/internal/repository"
)

const entityTimeSlot = "时间段"

// TimeSlotService 时间段业务接口
type TimeSlotService interface {
	Create(ctx context.Context, req *dto.CreateTimeSlotRequest, callerID string) (*dto.TimeSlotResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TimeSlotResponse, error)
	List(ctx context.Context, req *dto.TimeSlotListRequest) ([]dto.TimeSlotResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTimeSlotRequest, callerID string) (*dto.TimeSlotResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type timeSlotService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimeSlotService 创建 TimeSlotService 实例
func NewTimeSlotService(repo *repository.Repository, logger *zap.Logger) TimeSlotService {
	return &timeSlotService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *timeSlotService) Create(ctx context.Context, req *dto.CreateTimeSlotRequest, callerID string) (*dto.TimeSlotResponse, error) {
	slot := &model.TimeSlot{
		DayOfWeek: model.DayOfWeek(req.DayOfWeek),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		SlotType:  model.SlotLab,
		Status:    model.StatusActive,
	}
	if req.SlotType != "" {
		slot.SlotType = model.SlotType(req.SlotType)
	}
	if err := validateTimeSlot(slot); err != nil {
		return nil, err
	}
	slot.CreatedBy = &callerID
	slot.UpdatedBy = &callerID

	if err := s.repo.TimeSlot.Create(ctx, slot); err != nil {
		s.logger.Error("创建时间段失败", zap.Error(err))
		return nil, storeErr("创建时间段", err)
	}

	return toTimeSlotResponse(slot), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *timeSlotService) GetByID(ctx context.Context, id string) (*dto.TimeSlotResponse, error) {
	slot, err := s.repo.TimeSlot.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询时间段失败", zap.String("id", id), zap.Error(err))
		}
		return nil, lookupErr("查询时间段", entityTimeSlot, id, err)
	}

	return toTimeSlotResponse(slot), nil
}

// ────────────────────── List ──────────────────────

func (s *timeSlotService) List(ctx context.Context, req *dto.TimeSlotListRequest) ([]dto.TimeSlotResponse, error) {
	var day *model.DayOfWeek
	if req.DayOfWeek != "" {
		d := model.DayOfWeek(req.DayOfWeek)
		if !d.Valid() {
			return nil, &ValidationError{Field: "day_of_week", Reason: "非法的星期"}
		}
		day = &d
	}

	slots, err := s.repo.TimeSlot.List(ctx, req.IncludeInactive, day)
	if err != nil {
		s.logger.Error("列出时间段失败", zap.Error(err))
		return nil, storeErr("列出时间段", err)
	}

	result := make([]dto.TimeSlotResponse, 0, len(slots))
	for i := range slots {
		result = append(result, *toTimeSlotResponse(&slots[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *timeSlotService) Update(ctx context.Context, id string, req *dto.UpdateTimeSlotRequest, callerID string) (*dto.TimeSlotResponse, error) {
	slot, err := s.repo.TimeSlot.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("查询时间段", entityTimeSlot, id, err)
	}

	if req.DayOfWeek != nil {
		slot.DayOfWeek = model.DayOfWeek(*req.DayOfWeek)
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if req.SlotType != nil {
		slot.SlotType = model.SlotType(*req.SlotType)
	}
	if err := validateTimeSlot(slot); err != nil {
		return nil, err
	}

	slot.UpdatedBy = &callerID

	if err := s.repo.TimeSlot.Update(ctx, slot); err != nil {
		s.logger.Error("更新时间段失败", zap.String("id", id), zap.Error(err))
		return nil, storeErr("更新时间段", err)
	}

	return toTimeSlotResponse(slot), nil
}

// ────────────────────── Delete ──────────────────────

func (s *timeSlotService) Delete(ctx context.Context, id string, callerID string) error {
	slot, err := s.repo.TimeSlot.GetByID(ctx, id)
	if err != nil {
		return lookupErr("查询时间段", entityTimeSlot, id, err)
	}
	if !slot.Status.IsActive() {
		return nil
	}

	if err := s.repo.TimeSlot.Retire(ctx, id, callerID); err != nil {
		s.logger.Error("停用时间段失败", zap.String("id", id), zap.Error(err))
		return storeErr("停用时间段", err)
	}

	return nil
}

// ── 内部辅助方法 ──

// validateTimeSlot 星期、类型为封闭枚举；时间为 "HH:MM" 且开始早于结束
func validateTimeSlot(slot *model.TimeSlot) error {
	switch {
	case !slot.DayOfWeek.Valid():
		return &ValidationError{Field: "day_of_week", Reason: "非法的星期"}
	case !model.ValidClock(slot.StartTime):
		return &ValidationError{Field: "start_time", Reason: "格式必须为 HH:MM"}
	case !model.ValidClock(slot.EndTime):
		return &ValidationError{Field: "end_time", Reason: "格式必须为 HH:MM"}
	case slot.StartTime >= slot.EndTime:
		return &ValidationError{Field: "end_time", Reason: "结束时间必须晚于开始时间"}
	case !slot.SlotType.Valid():
		return &ValidationError{Field: "slot_type", Reason: "取值必须为 Lab、Lecture 或 Tutorial"}
	}
	return nil
}

func toTimeSlotResponse(slot *model.TimeSlot) *dto.TimeSlotResponse {
	return &dto.TimeSlotResponse{
		ID:        slot.TimeSlotID,
		DayOfWeek: string(slot.DayOfWeek),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		SlotType:  string(slot.SlotType),
		Status:    string(slot.Status),
		IsActive:  slot.Status.IsActive(),
		CreatedAt: formatTime(slot.CreatedAt),
		UpdatedAt: formatTime(slot.UpdatedAt),
	}
}
