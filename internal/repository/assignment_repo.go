package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lab-scheduler/internal/model"
	pkgerrors "lab-scheduler/pkg/errors"
)

// ConflictCandidate 待检测的（实验室, 助教, 时间段）三元组
type ConflictCandidate struct {
	LabRoomID      string
	LabAssistantID string
	TimeSlotID     string
}

// AssignmentFilter 排课列表过滤条件
type AssignmentFilter struct {
	Status         *model.Status
	LabAssistantID string
}

// AssignmentRepository 排课记录数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, a *model.ScheduleAssignment) error
	GetByID(ctx context.Context, id string) (*model.ScheduleAssignment, error)
	// LockByID 事务内读取并锁定记录（SELECT ... FOR UPDATE）
	LockByID(ctx context.Context, id string) (*model.ScheduleAssignment, error)
	// GetDetailByID 查询并预加载课程、教学班、分组、实验室、助教、时间段
	GetDetailByID(ctx context.Context, id string) (*model.ScheduleAssignment, error)
	// FindConflicts 同一时间段内与候选实验室或助教冲突的 active 记录；excludeID 非空时排除该记录
	FindConflicts(ctx context.Context, c ConflictCandidate, excludeID string) ([]model.ScheduleAssignment, error)
	// Update 乐观锁更新资源字段，version 不匹配返回 ErrOptimisticLock
	Update(ctx context.Context, a *model.ScheduleAssignment) error
	// Retire 乐观锁将记录置为 inactive
	Retire(ctx context.Context, a *model.ScheduleAssignment, updatedBy string) error
	ListDetailed(ctx context.Context, filter AssignmentFilter) ([]model.ScheduleAssignment, error)
	CountActive(ctx context.Context) (int64, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

// ────────────────────── 写入 ──────────────────────

func (r *assignmentRepo) Create(ctx context.Context, a *model.ScheduleAssignment) error {
	return r.db.WithContext(ctx).
		Omit("Course", "Section", "Group", "LabRoom", "LabAssistant", "TimeSlot").
		Create(a).Error
}

func (r *assignmentRepo) Update(ctx context.Context, a *model.ScheduleAssignment) error {
	oldVersion := a.Version
	result := r.db.WithContext(ctx).
		Model(&model.ScheduleAssignment{}).
		Where("schedule_assignment_id = ? AND version = ?", a.ScheduleAssignmentID, oldVersion).
		Updates(map[string]interface{}{
			"course_id":        a.CourseID,
			"section_id":       a.SectionID,
			"group_id":         a.GroupID,
			"lab_room_id":      a.LabRoomID,
			"lab_assistant_id": a.LabAssistantID,
			"time_slot_id":     a.TimeSlotID,
			"updated_by":       a.UpdatedBy,
			"updated_at":       gorm.Expr("NOW()"),
			"version":          oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	a.Version = oldVersion + 1
	return nil
}

func (r *assignmentRepo) Retire(ctx context.Context, a *model.ScheduleAssignment, updatedBy string) error {
	oldVersion := a.Version
	result := r.db.WithContext(ctx).
		Model(&model.ScheduleAssignment{}).
		Where("schedule_assignment_id = ? AND version = ?", a.ScheduleAssignmentID, oldVersion).
		Updates(map[string]interface{}{
			"status":     model.StatusInactive,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	a.Status = model.StatusInactive
	a.Version = oldVersion + 1
	return nil
}

// ────────────────────── 查询 ──────────────────────

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.ScheduleAssignment, error) {
	var a model.ScheduleAssignment
	err := r.db.WithContext(ctx).Where("schedule_assignment_id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) LockByID(ctx context.Context, id string) (*model.ScheduleAssignment, error) {
	var a model.ScheduleAssignment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("schedule_assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) GetDetailByID(ctx context.Context, id string) (*model.ScheduleAssignment, error) {
	var a model.ScheduleAssignment
	err := withDetails(r.db.WithContext(ctx)).
		Where("schedule_assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) FindConflicts(ctx context.Context, c ConflictCandidate, excludeID string) ([]model.ScheduleAssignment, error) {
	var list []model.ScheduleAssignment
	db := r.db.WithContext(ctx).
		Where("status = ? AND time_slot_id = ?", model.StatusActive, c.TimeSlotID).
		Where("(lab_room_id = ? OR lab_assistant_id = ?)", c.LabRoomID, c.LabAssistantID)
	if excludeID != "" {
		db = db.Where("schedule_assignment_id <> ?", excludeID)
	}
	err := db.Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *assignmentRepo) ListDetailed(ctx context.Context, filter AssignmentFilter) ([]model.ScheduleAssignment, error) {
	var list []model.ScheduleAssignment
	db := withDetails(r.db.WithContext(ctx))
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.LabAssistantID != "" {
		db = db.Where("lab_assistant_id = ?", filter.LabAssistantID)
	}
	err := db.Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *assignmentRepo) CountActive(ctx context.Context) (int64, error) {
	return countActive(ctx, r.db, &model.ScheduleAssignment{})
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Course").
		Preload("Section").
		Preload("Group").
		Preload("LabRoom").
		Preload("LabAssistant").
		Preload("TimeSlot")
}
