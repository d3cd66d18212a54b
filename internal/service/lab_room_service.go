package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/model"
	"lab-scheduler/internal/repository"
)

const entityLabRoom = "实验室"

// LabRoomService 实验室业务接口
type LabRoomService interface {
	Create(ctx context.Context, req *dto.CreateLabRoomRequest, callerID string) (*dto.LabRoomResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LabRoomResponse, error)
	List(ctx context.Context, req *dto.ListRequest) ([]dto.LabRoomResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateLabRoomRequest, callerID string) (*dto.LabRoomResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type labRoomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLabRoomService 创建 LabRoomService 实例
func NewLabRoomService(repo *repository.Repository, logger *zap.Logger) LabRoomService {
	return &labRoomService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *labRoomService) Create(ctx context.Context, req *dto.CreateLabRoomRequest, callerID string) (*dto.LabRoomResponse, error) {
	room := &model.LabRoom{
		Name:      strings.TrimSpace(req.Name),
		Capacity:  req.Capacity,
		Location:  strings.TrimSpace(req.Location),
		Equipment: model.NewStringSet(req.Equipment...),
		Status:    model.StatusActive,
	}
	if err := validateLabRoom(room); err != nil {
		return nil, err
	}
	room.CreatedBy = &callerID
	room.UpdatedBy = &callerID

	if err := s.repo.LabRoom.Create(ctx, room); err != nil {
		s.logger.Error("创建实验室失败", zap.Error(err))
		return nil, storeErr("创建实验室", err)
	}

	return toLabRoomResponse(room), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *labRoomService) GetByID(ctx context.Context, id string) (*dto.LabRoomResponse, error) {
	room, err := s.repo.LabRoom.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询实验室失败", zap.String("id", id), zap.Error(err))
		}
		return nil, lookupErr("查询实验室", entityLabRoom, id, err)
	}
	return toLabRoomResponse(room), nil
}

// ────────────────────── List ──────────────────────

func (s *labRoomService) List(ctx context.Context, req *dto.ListRequest) ([]dto.LabRoomResponse, error) {
	rooms, err := s.repo.LabRoom.List(ctx, req.IncludeInactive)
	if err != nil {
		s.logger.Error("列出实验室失败", zap.Error(err))
		return nil, storeErr("列出实验室", err)
	}

	result := make([]dto.LabRoomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, *toLabRoomResponse(&rooms[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *labRoomService) Update(ctx context.Context, id string, req *dto.UpdateLabRoomRequest, callerID string) (*dto.LabRoomResponse, error) {
	room, err := s.repo.LabRoom.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("查询实验室", entityLabRoom, id, err)
	}

	if req.Name != nil {
		room.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Location != nil {
		room.Location = strings.TrimSpace(*req.Location)
	}
	if req.Equipment != nil {
		room.Equipment = model.NewStringSet(*req.Equipment...)
	}
	if err := validateLabRoom(room); err != nil {
		return nil, err
	}
	room.UpdatedBy = &callerID

	if err := s.repo.LabRoom.Update(ctx, room); err != nil {
		s.logger.Error("更新实验室失败", zap.String("id", id), zap.Error(err))
		return nil, storeErr("更新实验室", err)
	}
	return toLabRoomResponse(room), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 软删除：置为 inactive，已停用时直接成功
func (s *labRoomService) Delete(ctx context.Context, id string, callerID string) error {
	room, err := s.repo.LabRoom.GetByID(ctx, id)
	if err != nil {
		return lookupErr("查询实验室", entityLabRoom, id, err)
	}
	if !room.Status.IsActive() {
		return nil
	}

	if err := s.repo.LabRoom.Retire(ctx, id, callerID); err != nil {
		s.logger.Error("停用实验室失败", zap.String("id", id), zap.Error(err))
		return storeErr("停用实验室", err)
	}
	return nil
}

// ── 内部辅助方法 ──

func validateLabRoom(room *model.LabRoom) error {
	if room.Name == "" {
		return &ValidationError{Field: "name", Reason: "不能为空"}
	}
	if room.Capacity <= 0 {
		return &ValidationError{Field: "capacity", Reason: "必须为正整数"}
	}
	return nil
}

func toLabRoomResponse(room *model.LabRoom) *dto.LabRoomResponse {
	equipment := []string(room.Equipment)
	if equipment == nil {
		equipment = []string{}
	}
	return &dto.LabRoomResponse{
		ID:        room.LabRoomID,
		Name:      room.Name,
		Capacity:  room.Capacity,
		Location:  room.Location,
		Equipment: equipment,
		Status:    string(room.Status),
		IsActive:  room.Status.IsActive(),
		CreatedAt: formatTime(room.CreatedAt),
		UpdatedAt: formatTime(room.UpdatedAt),
	}
}
