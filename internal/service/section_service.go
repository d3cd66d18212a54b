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

const (
	entitySection = "教学班"
	entityGroup   = "分组"
)

// SectionService 教学班与分组业务接口
type SectionService interface {
	Create(ctx context.Context, req *dto.CreateSectionRequest, callerID string) (*dto.SectionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SectionResponse, error)
	List(ctx context.Context, req *dto.ListRequest) ([]dto.SectionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSectionRequest, callerID string) (*dto.SectionResponse, error)
	Delete(ctx context.Context, id string, callerID string) error

	CreateGroup(ctx context.Context, sectionID string, req *dto.CreateGroupRequest, callerID string) (*dto.GroupResponse, error)
	ListGroups(ctx context.Context, sectionID string, req *dto.ListRequest) ([]dto.GroupResponse, error)
	UpdateGroup(ctx context.Context, id string, req *dto.UpdateGroupRequest, callerID string) (*dto.GroupResponse, error)
	DeleteGroup(ctx context.Context, id string, callerID string) error
}

type sectionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSectionService 创建 SectionService 实例
func NewSectionService(repo *repository.Repository, logger *zap.Logger) SectionService {
	return &sectionService{repo: repo, logger: logger}
}

// ────────────────────── Section ──────────────────────

func (s *sectionService) Create(ctx context.Context, req *dto.CreateSectionRequest, callerID string) (*dto.SectionResponse, error) {
	section := &model.Section{
		Name:       strings.TrimSpace(req.Name),
		Year:       req.Year,
		Department: strings.TrimSpace(req.Department),
		Capacity:   req.Capacity,
		Status:     model.StatusActive,
	}
	if err := validateSection(section); err != nil {
		return nil, err
	}
	section.CreatedBy = &callerID
	section.UpdatedBy = &callerID

	if err := s.repo.Section.Create(ctx, section); err != nil {
		s.logger.Error("创建教学班失败", zap.Error(err))
		return nil, storeErr("创建教学班", err)
	}
	return toSectionResponse(section), nil
}

func (s *sectionService) GetByID(ctx context.Context, id string) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询教学班失败", zap.String("id", id), zap.Error(err))
		}
		return nil, lookupErr("查询教学班", entitySection, id, err)
	}
	return toSectionResponse(section), nil
}

func (s *sectionService) List(ctx context.Context, req *dto.ListRequest) ([]dto.SectionResponse, error) {
	sections, err := s.repo.Section.List(ctx, req.IncludeInactive)
	if err != nil {
		s.logger.Error("列出教学班失败", zap.Error(err))
		return nil, storeErr("列出教学班", err)
	}

	result := make([]dto.SectionResponse, 0, len(sections))
	for i := range sections {
		result = append(result, *toSectionResponse(&sections[i]))
	}
	return result, nil
}

func (s *sectionService) Update(ctx context.Context, id string, req *dto.UpdateSectionRequest, callerID string) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("查询教学班", entitySection, id, err)
	}

	if req.Name != nil {
		section.Name = strings.TrimSpace(*req.Name)
	}
	if req.Year != nil {
		section.Year = *req.Year
	}
	if req.Department != nil {
		section.Department = strings.TrimSpace(*req.Department)
	}
	if req.Capacity != nil {
		section.Capacity = *req.Capacity
	}
	if err := validateSection(section); err != nil {
		return nil, err
	}
	section.UpdatedBy = &callerID

	if err := s.repo.Section.Update(ctx, section); err != nil {
		s.logger.Error("更新教学班失败", zap.String("id", id), zap.Error(err))
		return nil, storeErr("更新教学班", err)
	}
	return toSectionResponse(section), nil
}

// Delete 停用教学班；其下分组保持原状态，已排课记录不受影响
func (s *sectionService) Delete(ctx context.Context, id string, callerID string) error {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		return lookupErr("查询教学班", entitySection, id, err)
	}
	if !section.Status.IsActive() {
		return nil
	}

	if err := s.repo.Section.Retire(ctx, id, callerID); err != nil {
		s.logger.Error("停用教学班失败", zap.String("id", id), zap.Error(err))
		return storeErr("停用教学班", err)
	}
	return nil
}

// ────────────────────── Group ──────────────────────

func (s *sectionService) CreateGroup(ctx context.Context, sectionID string, req *dto.CreateGroupRequest, callerID string) (*dto.GroupResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, sectionID)
	if err != nil {
		return nil, lookupErr("查询教学班", entitySection, sectionID, err)
	}
	if !section.Status.IsActive() {
		return nil, &ValidationError{Field: "section_id", Reason: "教学班已停用"}
	}

	group := &model.Group{
		Name:      strings.TrimSpace(req.Name),
		SectionID: sectionID,
		Capacity:  req.Capacity,
		Status:    model.StatusActive,
	}
	if err := validateGroup(group); err != nil {
		return nil, err
	}
	group.CreatedBy = &callerID
	group.UpdatedBy = &callerID

	if err := s.repo.Group.Create(ctx, group); err != nil {
		s.logger.Error("创建分组失败", zap.String("section_id", sectionID), zap.Error(err))
		return nil, storeErr("创建分组", err)
	}
	return toGroupResponse(group), nil
}

func (s *sectionService) ListGroups(ctx context.Context, sectionID string, req *dto.ListRequest) ([]dto.GroupResponse, error) {
	if _, err := s.repo.Section.GetByID(ctx, sectionID); err != nil {
		return nil, lookupErr("查询教学班", entitySection, sectionID, err)
	}

	groups, err := s.repo.Group.ListBySection(ctx, sectionID, req.IncludeInactive)
	if err != nil {
		s.logger.Error("列出分组失败", zap.String("section_id", sectionID), zap.Error(err))
		return nil, storeErr("列出分组", err)
	}

	result := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		result = append(result, *toGroupResponse(&groups[i]))
	}
	return result, nil
}

func (s *sectionService) UpdateGroup(ctx context.Context, id string, req *dto.UpdateGroupRequest, callerID string) (*dto.GroupResponse, error) {
	group, err := s.repo.Group.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("查询分组", entityGroup, id, err)
	}

	if req.Name != nil {
		group.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		group.Capacity = *req.Capacity
	}
	if err := validateGroup(group); err != nil {
		return nil, err
	}
	group.UpdatedBy = &callerID

	if err := s.repo.Group.Update(ctx, group); err != nil {
		s.logger.Error("更新分组失败", zap.String("id", id), zap.Error(err))
		return nil, storeErr("更新分组", err)
	}
	return toGroupResponse(group), nil
}

func (s *sectionService) DeleteGroup(ctx context.Context, id string, callerID string) error {
	group, err := s.repo.Group.GetByID(ctx, id)
	if err != nil {
		return lookupErr("查询分组", entityGroup, id, err)
	}
	if !group.Status.IsActive() {
		return nil
	}

	if err := s.repo.Group.Retire(ctx, id, callerID); err != nil {
		s.logger.Error("停用分组失败", zap.String("id", id), zap.Error(err))
		return storeErr("停用分组", err)
	}
	return nil
}

// ── 内部辅助方法 ──

func validateSection(s *model.Section) error {
	switch {
	case s.Name == "":
		return &ValidationError{Field: "name", Reason: "不能为空"}
	case s.Year < 1 || s.Year > 5:
		return &ValidationError{Field: "year", Reason: "必须在 1-5 之间"}
	case s.Capacity <= 0:
		return &ValidationError{Field: "capacity", Reason: "必须为正整数"}
	}
	return nil
}

func validateGroup(g *model.Group) error {
	if g.Name == "" {
		return &ValidationError{Field: "name", Reason: "不能为空"}
	}
	if g.Capacity <= 0 {
		return &ValidationError{Field: "capacity", Reason: "必须为正整数"}
	}
	return nil
}

func toSectionResponse(s *model.Section) *dto.SectionResponse {
	groups := make([]dto.GroupResponse, 0, len(s.Groups))
	for i := range s.Groups {
		groups = append(groups, *toGroupResponse(&s.Groups[i]))
	}
	return &dto.SectionResponse{
		ID:         s.SectionID,
		Name:       s.Name,
		Year:       s.Year,
		Department: s.Department,
		Capacity:   s.Capacity,
		Status:     string(s.Status),
		IsActive:   s.Status.IsActive(),
		Groups:     groups,
		CreatedAt:  formatTime(s.CreatedAt),
		UpdatedAt:  formatTime(s.UpdatedAt),
	}
}

func toGroupResponse(g *model.Group) *dto.GroupResponse {
	return &dto.GroupResponse{
		ID:        g.GroupID,
		Name:      g.Name,
		SectionID: g.SectionID,
		Capacity:  g.Capacity,
		Status:    string(g.Status),
		IsActive:  g.Status.IsActive(),
	}
}
