package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lab-scheduler/internal/dto"
	"lab-scheduler/internal/model"
	"lab-scheduler/internal/repository"
	pkgerrors "lab-scheduler/pkg/errors"
)

const entityAssignment = "排课记录"

// AssignmentService 排课写入业务接口
//
// 创建与更新的「校验 → 冲突检测 → 写入」在同一个 SERIALIZABLE 事务中完成，
// 并由 (lab_room_id, time_slot_id)、(lab_assistant_id, time_slot_id) 两个
// active 部分唯一索引兜底：并发写入中只有一方能提交，另一方重读后得到 ConflictError。
type AssignmentService interface {
	Create(ctx context.Context, req *dto.AssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	Update(ctx context.Context, id string, req *dto.AssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	// Retire active → inactive；已是 inactive 时直接成功
	Retire(ctx context.Context, id string, callerID string) error
	GetByID(ctx context.Context, id string) (*dto.ScheduleDetailResponse, error)
}

type assignmentService struct {
	repo        *repository.Repository
	logger      *zap.Logger
	maxAttempts int
}

// NewAssignmentService 创建 AssignmentService 实例
// maxAttempts 为事务冲突（40001 / 乐观锁）的最大尝试次数
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger, maxAttempts int) AssignmentService {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &assignmentService{repo: repo, logger: logger, maxAttempts: maxAttempts}
}

// ────────────────────── Create ──────────────────────

func (s *assignmentService) Create(ctx context.Context, req *dto.AssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	req, cand, err := normalizeAssignment(req)
	if err != nil {
		return nil, err
	}

	var created *model.ScheduleAssignment
	err = s.commit(ctx, "创建排课", &cand, "", func(tx *repository.Repository) error {
		if err := validateReferences(ctx, tx, req); err != nil {
			return err
		}

		conflicts, err := detectConflicts(ctx, tx.Assignment, cand, "")
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &ConflictError{Conflicts: conflicts}
		}

		a := &model.ScheduleAssignment{
			CourseID:       req.CourseID,
			SectionID:      req.SectionID,
			GroupID:        req.GroupID,
			LabRoomID:      cand.LabRoomID,
			LabAssistantID: cand.LabAssistantID,
			TimeSlotID:     cand.TimeSlotID,
			Status:         model.StatusActive,
		}
		a.CreatedBy = &callerID
		a.UpdatedBy = &callerID

		if err := tx.Assignment.Create(ctx, a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("排课已创建",
		zap.String("id", created.ScheduleAssignmentID),
		zap.String("lab_room_id", created.LabRoomID),
		zap.String("lab_assistant_id", created.LabAssistantID),
		zap.String("time_slot_id", created.TimeSlotID),
	)
	return toAssignmentResponse(created), nil
}

// ────────────────────── Update ──────────────────────

func (s *assignmentService) Update(ctx context.Context, id string, req *dto.AssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	req, cand, err := normalizeAssignment(req)
	if err != nil {
		return nil, err
	}

	var updated *model.ScheduleAssignment
	err = s.commit(ctx, "更新排课", &cand, id, func(tx *repository.Repository) error {
		a, err := tx.Assignment.LockByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: entityAssignment, ID: id}
			}
			return err
		}
		// 不存在 inactive → active 的转换，重新启用需新建排课
		if a.Status != model.StatusActive {
			return &ValidationError{Field: "status", Reason: "已下线的排课记录不可修改，请新建排课"}
		}

		if err := validateReferences(ctx, tx, req); err != nil {
			return err
		}

		conflicts, err := detectConflicts(ctx, tx.Assignment, cand, a.ScheduleAssignmentID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &ConflictError{Conflicts: conflicts}
		}

		a.CourseID = req.CourseID
		a.SectionID = req.SectionID
		a.GroupID = req.GroupID
		a.LabRoomID = cand.LabRoomID
		a.LabAssistantID = cand.LabAssistantID
		a.TimeSlotID = cand.TimeSlotID
		a.UpdatedBy = &callerID

		if err := tx.Assignment.Update(ctx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("排课已更新", zap.String("id", id), zap.Int("version", updated.Version))
	return toAssignmentResponse(updated), nil
}

// ────────────────────── Retire ──────────────────────

func (s *assignmentService) Retire(ctx context.Context, id string, callerID string) error {
	retired := false
	err := s.commit(ctx, "下线排课", nil, "", func(tx *repository.Repository) error {
		a, err := tx.Assignment.LockByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: entityAssignment, ID: id}
			}
			return err
		}
		if a.Status == model.StatusInactive {
			return nil
		}
		if err := tx.Assignment.Retire(ctx, a, callerID); err != nil {
			return err
		}
		retired = true
		return nil
	})
	if err != nil {
		return err
	}

	if retired {
		s.logger.Info("排课已下线", zap.String("id", id))
	}
	return nil
}

// ────────────────────── GetByID ──────────────────────

func (s *assignmentService) GetByID(ctx context.Context, id string) (*dto.ScheduleDetailResponse, error) {
	a, err := s.repo.Assignment.GetDetailByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询排课失败", zap.String("id", id), zap.Error(err))
		}
		return nil, lookupErr("查询排课", entityAssignment, id, err)
	}
	return toScheduleDetail(a), nil
}

// ── 事务提交与重试 ──

// commit 以 SERIALIZABLE 事务执行 fn，并按错误类别处理：
//   - 业务错误（校验 / 冲突 / 不存在）原样返回
//   - 唯一约束冲突：并发写入已抢先提交，重新读取冲突集并返回 ConflictError；
//     重读为空（对方已回滚或下线）则重试
//   - 序列化失败、死锁、乐观锁：重试
//   - 其余错误或重试耗尽：StoreError
func (s *assignmentService) commit(ctx context.Context, op string, cand *repository.ConflictCandidate, excludeID string, fn func(tx *repository.Repository) error) error {
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err := s.repo.Transaction(ctx, fn)
		if err == nil {
			return nil
		}
		if isDomainError(err) {
			return err
		}

		switch {
		case pkgerrors.IsUniqueViolation(err) && cand != nil:
			conflicts, rerr := detectConflicts(ctx, s.repo.Assignment, *cand, excludeID)
			if rerr != nil {
				s.logger.Error("冲突重读失败", zap.String("op", op), zap.Error(rerr))
				return storeErr(op, rerr)
			}
			if len(conflicts) > 0 {
				return &ConflictError{Conflicts: conflicts}
			}
		case pkgerrors.IsRetryable(err):
		default:
			s.logger.Error("排课事务失败", zap.String("op", op), zap.Error(err))
			return storeErr(op, err)
		}

		lastErr = err
		if ctx.Err() != nil {
			return storeErr(op, ctx.Err())
		}
		s.logger.Warn("排课事务冲突，准备重试",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}

	s.logger.Error("排课事务重试耗尽", zap.String("op", op), zap.Int("attempts", s.maxAttempts), zap.Error(lastErr))
	return storeErr(op, fmt.Errorf("重试 %d 次后仍失败: %w", s.maxAttempts, lastErr))
}

// ── 引用校验 ──

// normalizeAssignment 去除各 id 首尾空白，返回副本与冲突候选；之后的查询与写入只使用副本
func normalizeAssignment(req *dto.AssignmentRequest) (*dto.AssignmentRequest, repository.ConflictCandidate, error) {
	in := &dto.AssignmentRequest{
		CourseID:       strings.TrimSpace(req.CourseID),
		SectionID:      strings.TrimSpace(req.SectionID),
		GroupID:        normalizeGroupID(req.GroupID),
		LabRoomID:      strings.TrimSpace(req.LabRoomID),
		LabAssistantID: strings.TrimSpace(req.LabAssistantID),
		TimeSlotID:     strings.TrimSpace(req.TimeSlotID),
	}
	c := repository.ConflictCandidate{
		LabRoomID:      in.LabRoomID,
		LabAssistantID: in.LabAssistantID,
		TimeSlotID:     in.TimeSlotID,
	}
	if in.CourseID == "" {
		return in, c, &ValidationError{Field: "course_id", Reason: "不能为空"}
	}
	if in.SectionID == "" {
		return in, c, &ValidationError{Field: "section_id", Reason: "不能为空"}
	}
	return in, c, validateCandidate(c)
}

// validateReferences 引用的实体必须存在且为 active；分组必须属于所选教学班
// req 须已经过 normalizeAssignment
func validateReferences(ctx context.Context, tx *repository.Repository, req *dto.AssignmentRequest) error {
	course, err := tx.Course.GetByID(ctx, req.CourseID)
	if err := refErr("course_id", "课程", course != nil && course.Status.IsActive(), err); err != nil {
		return err
	}

	section, err := tx.Section.GetByID(ctx, req.SectionID)
	if err := refErr("section_id", "教学班", section != nil && section.Status.IsActive(), err); err != nil {
		return err
	}

	if groupID := req.GroupID; groupID != nil {
		group, err := tx.Group.GetByID(ctx, *groupID)
		if err := refErr("group_id", "分组", group != nil && group.Status.IsActive(), err); err != nil {
			return err
		}
		if group.SectionID != req.SectionID {
			return &ValidationError{Field: "group_id", Reason: "分组不属于所选教学班"}
		}
	}

	room, err := tx.LabRoom.GetByID(ctx, req.LabRoomID)
	if err := refErr("lab_room_id", "实验室", room != nil && room.Status.IsActive(), err); err != nil {
		return err
	}

	slot, err := tx.TimeSlot.GetByID(ctx, req.TimeSlotID)
	if err := refErr("time_slot_id", "时间段", slot != nil && slot.Status.IsActive(), err); err != nil {
		return err
	}

	_, err = tx.LabAssistant.GetActiveByLabAssistantID(ctx, req.LabAssistantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ValidationError{Field: "lab_assistant_id", Reason: "助教不存在或已停用"}
		}
		return err
	}

	return nil
}

// refErr 查询错误中 RecordNotFound 视为校验错误，其余原样返回交给事务层处理
func refErr(field, entity string, active bool, err error) error {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ValidationError{Field: field, Reason: entity + "不存在"}
		}
		return err
	}
	if !active {
		return &ValidationError{Field: field, Reason: entity + "已停用"}
	}
	return nil
}

func normalizeGroupID(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}

// ── 响应转换 ──

func toAssignmentResponse(a *model.ScheduleAssignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:             a.ScheduleAssignmentID,
		CourseID:       a.CourseID,
		SectionID:      a.SectionID,
		GroupID:        a.GroupID,
		LabRoomID:      a.LabRoomID,
		LabAssistantID: a.LabAssistantID,
		TimeSlotID:     a.TimeSlotID,
		Status:         string(a.Status),
		Version:        a.Version,
		CreatedAt:      formatTime(a.CreatedAt),
		UpdatedAt:      formatTime(a.UpdatedAt),
	}
}

func toScheduleDetail(a *model.ScheduleAssignment) *dto.ScheduleDetailResponse {
	resp := &dto.ScheduleDetailResponse{
		ID:      a.ScheduleAssignmentID,
		Status:  string(a.Status),
		Version: a.Version,
		LabAssistant: &dto.LabAssistantBrief{
			LabAssistantID: a.LabAssistantID,
		},
	}
	if a.Course != nil {
		resp.Course = &dto.CourseBrief{ID: a.Course.CourseID, Code: a.Course.Code, Name: a.Course.Name}
	}
	if a.Section != nil {
		resp.Section = &dto.SectionBrief{ID: a.Section.SectionID, Name: a.Section.Name}
	}
	if a.Group != nil {
		resp.Group = &dto.GroupBrief{ID: a.Group.GroupID, Name: a.Group.Name}
	}
	if a.LabRoom != nil {
		resp.LabRoom = &dto.LabRoomBrief{ID: a.LabRoom.LabRoomID, Name: a.LabRoom.Name, Location: a.LabRoom.Location}
	}
	if a.LabAssistant != nil {
		resp.LabAssistant.FullName = a.LabAssistant.FullName()
		resp.LabAssistant.Email = a.LabAssistant.Email
	}
	if a.TimeSlot != nil {
		resp.TimeSlot = &dto.TimeSlotBrief{
			ID:        a.TimeSlot.TimeSlotID,
			DayOfWeek: string(a.TimeSlot.DayOfWeek),
			StartTime: a.TimeSlot.StartTime,
			EndTime:   a.TimeSlot.EndTime,
			SlotType:  string(a.TimeSlot.SlotType),
		}
	}
	return resp
}
