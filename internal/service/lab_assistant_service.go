package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/model"
	"lab-scheduler/internal/repository"
	pkgerrors "lab-scheduler/pkg/errors"
)

const (
	entityLabAssistant = "实验助教"
	minPasswordLength  = 6
)

// ErrIDAllocExhausted 工号分配多次撞号仍未成功
var ErrIDAllocExhausted = errors.New("助教工号分配重试耗尽")

// LabAssistantService 实验助教业务接口
type LabAssistantService interface {
	Create(ctx context.Context, req *dto.CreateLabAssistantRequest, callerID string) (*dto.LabAssistantResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LabAssistantResponse, error)
	List(ctx context.Context, req *dto.ListRequest) ([]dto.LabAssistantResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateLabAssistantRequest, callerID string) (*dto.LabAssistantResponse, error)
	ResetPassword(ctx context.Context, id string, req *dto.ResetPasswordRequest, callerID string) error
	// ChangePassword 助教修改本人密码，需校验旧密码
	ChangePassword(ctx context.Context, labAssistantID string, req *dto.ChangePasswordRequest) error
	Delete(ctx context.Context, id string, callerID string) error
	// NextID 预览当前会分配的工号，不占号
	NextID(ctx context.Context) (*dto.NextLabAssistantIDResponse, error)
}

type labAssistantService struct {
	repo        *repository.Repository
	logger      *zap.Logger
	maxAttempts int
	hashCost    int
	now         func() time.Time
}

// NewLabAssistantService 创建 LabAssistantService 实例
// maxAttempts 为工号撞号时的最大尝试次数
func NewLabAssistantService(repo *repository.Repository, logger *zap.Logger, maxAttempts int) LabAssistantService {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &labAssistantService{
		repo:        repo,
		logger:      logger,
		maxAttempts: maxAttempts,
		hashCost:    bcrypt.DefaultCost,
		now:         time.Now,
	}
}

// ────────────────────── Create ──────────────────────

func (s *labAssistantService) Create(ctx context.Context, req *dto.CreateLabAssistantRequest, callerID string) (*dto.LabAssistantResponse, error) {
	a := &model.LabAssistant{
		Username:   strings.TrimSpace(req.Username),
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      strings.TrimSpace(req.Email),
		Department: strings.TrimSpace(req.Department),
		Status:     model.StatusActive,
	}
	if err := validateLabAssistant(a); err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, &ValidationError{Field: "password", Reason: fmt.Sprintf("长度不能少于 %d 位", minPasswordLength)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}
	a.PasswordHash = string(hash)
	a.CreatedBy = &callerID
	a.UpdatedBy = &callerID

	if explicit := strings.TrimSpace(req.LabAssistantID); explicit != "" {
		err = s.createWithExplicitID(ctx, a, explicit)
	} else {
		err = s.createWithAllocatedID(ctx, a)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("助教已创建",
		zap.String("id", a.AssistantID),
		zap.String("lab_assistant_id", a.LabAssistantID),
	)
	return toLabAssistantResponse(a), nil
}

// createWithExplicitID 工号由管理员指定；与任何历史工号（含已停用）重复均拒绝
func (s *labAssistantService) createWithExplicitID(ctx context.Context, a *model.LabAssistant, id string) error {
	taken, err := s.repo.LabAssistant.ExistsLabAssistantID(ctx, id)
	if err != nil {
		s.logger.Error("检查助教工号失败", zap.String("lab_assistant_id", id), zap.Error(err))
		return storeErr("创建助教", err)
	}
	if taken {
		return &ValidationError{Field: "lab_assistant_id", Reason: "工号已被占用"}
	}

	a.LabAssistantID = id
	if err := s.repo.LabAssistant.Create(ctx, a); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return &ValidationError{Field: "lab_assistant_id", Reason: "工号已被占用"}
		}
		s.logger.Error("创建助教失败", zap.Error(err))
		return storeErr("创建助教", err)
	}
	return nil
}

// createWithAllocatedID 自动分配工号；撞号（并发分配）时以新的最大序号重试
func (s *labAssistantService) createWithAllocatedID(ctx context.Context, a *model.LabAssistant) error {
	year := s.now().Year()
	prefix := LabAssistantIDPrefix(year)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		existing, err := s.repo.LabAssistant.ListLabAssistantIDs(ctx, prefix)
		if err != nil {
			s.logger.Error("读取助教工号失败", zap.Error(err))
			return storeErr("分配助教工号", err)
		}

		a.LabAssistantID = NextLabAssistantID(existing, year)
		err = s.repo.LabAssistant.Create(ctx, a)
		if err == nil {
			return nil
		}
		if !pkgerrors.IsUniqueViolation(err) {
			s.logger.Error("创建助教失败", zap.Error(err))
			return storeErr("创建助教", err)
		}

		s.logger.Warn("助教工号冲突，重新分配",
			zap.String("lab_assistant_id", a.LabAssistantID),
			zap.Int("attempt", attempt),
		)
		a.AssistantID = ""
	}

	return storeErr("分配助教工号", ErrIDAllocExhausted)
}

// ────────────────────── NextID ──────────────────────

func (s *labAssistantService) NextID(ctx context.Context) (*dto.NextLabAssistantIDResponse, error) {
	year := s.now().Year()
	existing, err := s.repo.LabAssistant.ListLabAssistantIDs(ctx, LabAssistantIDPrefix(year))
	if err != nil {
		s.logger.Error("读取助教工号失败", zap.Error(err))
		return nil, storeErr("预览助教工号", err)
	}
	return &dto.NextLabAssistantIDResponse{LabAssistantID: NextLabAssistantID(existing, year)}, nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *labAssistantService) GetByID(ctx context.Context, id string) (*dto.LabAssistantResponse, error) {
	a, err := s.repo.LabAssistant.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询助教失败", zap.String("id", id), zap.Error(err))
		}
		return nil, lookupErr("查询助教", entityLabAssistant, id, err)
	}
	return toLabAssistantResponse(a), nil
}

func (s *labAssistantService) List(ctx context.Context, req *dto.ListRequest) ([]dto.LabAssistantResponse, error) {
	list, err := s.repo.LabAssistant.List(ctx, req.IncludeInactive)
	if err != nil {
		s.logger.Error("列出助教失败", zap.Error(err))
		return nil, storeErr("列出助教", err)
	}

	result := make([]dto.LabAssistantResponse, 0, len(list))
	for i := range list {
		result = append(result, *toLabAssistantResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *labAssistantService) Update(ctx context.Context, id string, req *dto.UpdateLabAssistantRequest, callerID string) (*dto.LabAssistantResponse, error) {
	a, err := s.repo.LabAssistant.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("查询助教", entityLabAssistant, id, err)
	}

	if req.Username != nil {
		a.Username = strings.TrimSpace(*req.Username)
	}
	if req.FirstName != nil {
		a.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		a.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		a.Email = strings.TrimSpace(*req.Email)
	}
	if req.Department != nil {
		a.Department = strings.TrimSpace(*req.Department)
	}
	if err := validateLabAssistant(a); err != nil {
		return nil, err
	}
	a.UpdatedBy = &callerID

	if err := s.repo.LabAssistant.Update(ctx, a); err != nil {
		s.logger.Error("更新助教失败", zap.String("id", id), zap.Error(err))
		return nil, storeErr("更新助教", err)
	}
	return toLabAssistantResponse(a), nil
}

// ────────────────────── ResetPassword ──────────────────────

func (s *labAssistantService) ResetPassword(ctx context.Context, id string, req *dto.ResetPasswordRequest, callerID string) error {
	if len(req.Password) < minPasswordLength {
		return &ValidationError{Field: "password", Reason: fmt.Sprintf("长度不能少于 %d 位", minPasswordLength)}
	}
	if _, err := s.repo.LabAssistant.GetByID(ctx, id); err != nil {
		return lookupErr("查询助教", entityLabAssistant, id, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}

	if err := s.repo.LabAssistant.UpdatePassword(ctx, id, string(hash), callerID); err != nil {
		s.logger.Error("重置助教密码失败", zap.String("id", id), zap.Error(err))
		return storeErr("重置助教密码", err)
	}
	s.logger.Info("助教密码已重置", zap.String("id", id), zap.String("by", callerID))
	return nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *labAssistantService) ChangePassword(ctx context.Context, labAssistantID string, req *dto.ChangePasswordRequest) error {
	labAssistantID = strings.TrimSpace(labAssistantID)
	a, err := s.repo.LabAssistant.GetActiveByLabAssistantID(ctx, labAssistantID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询助教失败", zap.String("lab_assistant_id", labAssistantID), zap.Error(err))
		}
		return lookupErr("修改密码", entityLabAssistant, labAssistantID, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.OldPassword)); err != nil {
		return &ValidationError{Field: "old_password", Reason: "旧密码错误"}
	}
	if len(req.NewPassword) < minPasswordLength {
		return &ValidationError{Field: "new_password", Reason: fmt.Sprintf("长度不能少于 %d 位", minPasswordLength)}
	}
	if req.NewPassword == req.OldPassword {
		return &ValidationError{Field: "new_password", Reason: "新密码不能与旧密码相同"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}

	if err := s.repo.LabAssistant.UpdatePassword(ctx, a.AssistantID, string(hash), labAssistantID); err != nil {
		s.logger.Error("修改助教密码失败", zap.String("lab_assistant_id", labAssistantID), zap.Error(err))
		return storeErr("修改密码", err)
	}
	s.logger.Info("助教已修改密码", zap.String("lab_assistant_id", labAssistantID))
	return nil
}

// ────────────────────── Delete ──────────────────────

// Delete 停用助教；其工号不会被重新分配
func (s *labAssistantService) Delete(ctx context.Context, id string, callerID string) error {
	a, err := s.repo.LabAssistant.GetByID(ctx, id)
	if err != nil {
		return lookupErr("查询助教", entityLabAssistant, id, err)
	}
	if !a.Status.IsActive() {
		return nil
	}

	if err := s.repo.LabAssistant.Retire(ctx, id, callerID); err != nil {
		s.logger.Error("停用助教失败", zap.String("id", id), zap.Error(err))
		return storeErr("停用助教", err)
	}
	return nil
}

// ── 内部辅助方法 ──

func validateLabAssistant(a *model.LabAssistant) error {
	switch {
	case a.FirstName == "":
		return &ValidationError{Field: "first_name", Reason: "不能为空"}
	case a.LastName == "":
		return &ValidationError{Field: "last_name", Reason: "不能为空"}
	case a.Email == "" || !strings.Contains(a.Email, "@"):
		return &ValidationError{Field: "email", Reason: "邮箱格式不正确"}
	}
	return nil
}

func toLabAssistantResponse(a *model.LabAssistant) *dto.LabAssistantResponse {
	return &dto.LabAssistantResponse{
		ID:             a.AssistantID,
		LabAssistantID: a.LabAssistantID,
		Username:       a.Username,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		FullName:       a.FullName(),
		Email:          a.Email,
		Department:     a.Department,
		Status:         string(a.Status),
		IsActive:       a.Status.IsActive(),
		CreatedAt:      formatTime(a.CreatedAt),
		UpdatedAt:      formatTime(a.UpdatedAt),
	}
}
