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

const entityCourse = "课程"

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	List(ctx context.Context, req *dto.ListRequest) ([]dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course := &model.Course{
		Code:        strings.TrimSpace(req.Code),
		Name:        strings.TrimSpace(req.Name),
		Department:  strings.TrimSpace(req.Department),
		Credits:     req.Credits,
		Year:        req.Year,
		Section:     strings.TrimSpace(req.Section),
		Batch:       strings.TrimSpace(req.Batch),
		StudentType: model.StudentRegular,
		Status:      model.StatusActive,
	}
	if req.StudentType != "" {
		course.StudentType = model.StudentType(req.StudentType)
	}
	if err := validateCourse(course); err != nil {
		return nil, err
	}
	course.CreatedBy = &callerID
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, storeErr("创建课程", err)
	}
	return toCourseResponse(course), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		}
		return nil, lookupErr("查询课程", entityCourse, id, err)
	}
	return toCourseResponse(course), nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, req *dto.ListRequest) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx, req.IncludeInactive)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, storeErr("列出课程", err)
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("查询课程", entityCourse, id, err)
	}

	if req.Code != nil {
		course.Code = strings.TrimSpace(*req.Code)
	}
	if req.Name != nil {
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.Department != nil {
		course.Department = strings.TrimSpace(*req.Department)
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.Year != nil {
		course.Year = *req.Year
	}
	if req.Section != nil {
		course.Section = strings.TrimSpace(*req.Section)
	}
	if req.Batch != nil {
		course.Batch = strings.TrimSpace(*req.Batch)
	}
	if req.StudentType != nil {
		course.StudentType = model.StudentType(*req.StudentType)
	}
	if err := validateCourse(course); err != nil {
		return nil, err
	}
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", id), zap.Error(err))
		return nil, storeErr("更新课程", err)
	}
	return toCourseResponse(course), nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string, callerID string) error {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		return lookupErr("查询课程", entityCourse, id, err)
	}
	if !course.Status.IsActive() {
		return nil
	}

	if err := s.repo.Course.Retire(ctx, id, callerID); err != nil {
		s.logger.Error("停用课程失败", zap.String("id", id), zap.Error(err))
		return storeErr("停用课程", err)
	}
	return nil
}

// ── 内部辅助方法 ──

func validateCourse(c *model.Course) error {
	switch {
	case c.Code == "":
		return &ValidationError{Field: "code", Reason: "不能为空"}
	case c.Name == "":
		return &ValidationError{Field: "name", Reason: "不能为空"}
	case c.Credits < 1 || c.Credits > 6:
		return &ValidationError{Field: "credits", Reason: "必须在 1-6 之间"}
	case c.Year < 1 || c.Year > 5:
		return &ValidationError{Field: "year", Reason: "必须在 1-5 之间"}
	case !c.StudentType.Valid():
		return &ValidationError{Field: "student_type", Reason: "取值必须为 regular 或 extension"}
	}
	return nil
}

func toCourseResponse(c *model.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:          c.CourseID,
		Code:        c.Code,
		Name:        c.Name,
		Department:  c.Department,
		Credits:     c.Credits,
		Year:        c.Year,
		Section:     c.Section,
		Batch:       c.Batch,
		StudentType: string(c.StudentType),
		Status:      string(c.Status),
		IsActive:    c.Status.IsActive(),
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}
