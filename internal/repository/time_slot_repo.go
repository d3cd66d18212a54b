package repository

import (
	"context"

	"gorm.io/gorm"

	"lab-scheduler/internal/model"
)

// TimeSlotRepository 时间段数据访问接口
type TimeSlotRepository interface {
	Create(ctx context.Context, slot *model.TimeSlot) error
	GetByID(ctx context.Context, id string) (*model.TimeSlot, error)
	List(ctx context.Context, includeInactive bool, dayOfWeek *model.DayOfWeek) ([]model.TimeSlot, error)
	Update(ctx context.Context, slot *model.TimeSlot) error
	Retire(ctx context.Context, id string, updatedBy string) error
}

type timeSlotRepo struct {
	db *gorm.DB
}

// NewTimeSlotRepo 创建 TimeSlotRepository 实例
func NewTimeSlotRepo(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepo{db: db}
}

func (r *timeSlotRepo) Create(ctx context.Context, slot *model.TimeSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *timeSlotRepo) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	err := r.db.WithContext(ctx).Where("time_slot_id = ?", id).First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// List 按周内顺序、开始时间排序
func (r *timeSlotRepo) List(ctx context.Context, includeInactive bool, dayOfWeek *model.DayOfWeek) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	db := r.db.WithContext(ctx)

	if !includeInactive {
		db = db.Where("status = ?", model.StatusActive)
	}
	if dayOfWeek != nil {
		db = db.Where("day_of_week = ?", *dayOfWeek)
	}

	err := db.Order(dayOrderExpr + ", start_time ASC").Find(&slots).Error
	return slots, err
}

func (r *timeSlotRepo) Update(ctx context.Context, slot *model.TimeSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *timeSlotRepo) Retire(ctx context.Context, id string, updatedBy string) error {
	return retire(ctx, r.db, &model.TimeSlot{}, "time_slot_id", id, updatedBy)
}

// dayOrderExpr 星期按 Monday..Sunday 排序，而非字典序
const dayOrderExpr = "array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday']::varchar[], day_of_week)"
